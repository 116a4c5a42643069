package history

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FisherYu0112/Aix-DB/internal/api"
)

func TestRowViewFallbacks(t *testing.T) {
	t.Parallel()

	full := RowViewOf(api.Record{ChatID: "1", Question: "monthly revenue?", Key: "rev", CreateTime: "2025-03-01 09:30"})
	require.Equal(t, "monthly revenue?", full.Label)
	require.Equal(t, "2025-03-01 09:30", full.Timestamp)

	keyed := RowViewOf(api.Record{ChatID: "2", Key: "orders-import"})
	require.Equal(t, "orders-import", keyed.Label)
	require.Equal(t, "-", keyed.Timestamp)

	bare := RowViewOf(api.Record{ChatID: "3"})
	require.Equal(t, "Untitled", bare.Label)
	require.Equal(t, "-", bare.Timestamp)
}

func TestModeViews(t *testing.T) {
	t.Parallel()

	for _, m := range Modes() {
		view := ModeViewOf(m)
		require.NotEmpty(t, view.Icon)
		require.NotEmpty(t, view.Label)
	}
	require.Equal(t, "General QA", ModeViewOf(ModeUnset).Label, "unset renders as the default pipeline")
	require.Equal(t, "Database QA", ModeViewOf(ModeDatabaseQA).Label)
}

func TestRankRecords(t *testing.T) {
	t.Parallel()

	recs := []api.Record{
		{ChatID: "1", Question: "quarterly sales report"},
		{ChatID: "2", Question: "weather tomorrow"},
		{ChatID: "3", Question: "sales by region"},
		{ChatID: "4", Question: "sale"},
	}

	ranked := RankRecords(recs, "sales")
	require.NotEmpty(t, ranked)
	for _, r := range ranked {
		require.NotEqual(t, "2", r.ChatID, "unrelated record should be dropped")
	}
	// substring hits come first
	require.Contains(t, []string{"1", "3"}, ranked[0].ChatID)

	require.Equal(t, recs, RankRecords(recs, "  "), "blank query leaves order untouched")
	require.Empty(t, RankRecords(nil, "sales"))
}
