package history

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FisherYu0112/Aix-DB/internal/api"
)

func records(ids ...string) []api.Record {
	out := make([]api.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, api.Record{ChatID: id, Question: "q-" + id, CreateTime: "2025-01-01 10:00"})
	}
	return out
}

func TestOpenIssuesInitialFetch(t *testing.T) {
	t.Parallel()

	p := NewPager(8, nil)
	require.False(t, p.Visible())

	req := p.Open()
	require.True(t, p.Visible())
	require.True(t, p.Loading())
	require.Equal(t, 1, req.Page)
	require.Equal(t, 8, req.PageSize)
}

func TestApplyEmptyPage(t *testing.T) {
	t.Parallel()

	p := NewPager(8, nil)
	req := p.Open()

	ok := p.Apply(req.Seq, api.QueryResult{Records: nil, TotalCount: 0, TotalPages: 0}, nil)
	require.True(t, ok)
	require.Empty(t, p.Rows())
	require.Zero(t, p.Total())
	require.Zero(t, p.PageCount())
	require.False(t, p.Loading())
}

func TestApplyFailureAbsorbed(t *testing.T) {
	t.Parallel()

	p := NewPager(8, nil)
	req := p.Open()
	require.True(t, p.Apply(req.Seq, api.QueryResult{Records: records("a", "b"), TotalCount: 2, TotalPages: 1}, nil))
	p.Select([]string{"a"})

	req = p.Refresh()
	require.True(t, p.Apply(req.Seq, api.QueryResult{}, errors.New("connection refused")))
	require.Empty(t, p.Rows())
	require.Zero(t, p.Total())
	require.Zero(t, p.PageCount())
	require.Empty(t, p.Selected())
	require.False(t, p.Loading())
}

func TestSetPageSizeResetsPage(t *testing.T) {
	t.Parallel()

	p := NewPager(8, nil)
	p.Open()
	req := p.SetPage(3)
	require.Equal(t, 3, req.Page)

	req = p.SetPageSize(20)
	require.Equal(t, 1, req.Page)
	require.Equal(t, 20, req.PageSize)
	require.Equal(t, 1, p.Page())
	require.Equal(t, 20, p.PageSize())
}

func TestRefreshKeepsPage(t *testing.T) {
	t.Parallel()

	p := NewPager(8, nil)
	p.Open()
	p.SetPage(2)

	req := p.Refresh()
	require.Equal(t, 2, req.Page)
}

func TestSelectReplacesWholesale(t *testing.T) {
	t.Parallel()

	p := NewPager(8, nil)
	req := p.Open()
	require.True(t, p.Apply(req.Seq, api.QueryResult{Records: records("a", "b", "c"), TotalCount: 3, TotalPages: 1}, nil))

	p.Select([]string{"a", "b"})
	require.Equal(t, []string{"a", "b"}, p.Selected())

	p.Select([]string{"c"})
	require.Equal(t, []string{"c"}, p.Selected())
	require.False(t, p.IsSelected("a"))
}

func TestDeleteSelectedEmptyIsNoop(t *testing.T) {
	t.Parallel()

	p := NewPager(8, nil)
	ids, ok := p.DeleteSelected()
	require.False(t, ok)
	require.Nil(t, ids)
}

func TestDeleteSelectedReturnsSelection(t *testing.T) {
	t.Parallel()

	p := NewPager(8, nil)
	req := p.Open()
	require.True(t, p.Apply(req.Seq, api.QueryResult{Records: records("a", "b"), TotalCount: 2, TotalPages: 1}, nil))
	p.Select([]string{"b", "a"})

	ids, ok := p.DeleteSelected()
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, ids)
}

func TestSelectionIntersectedOnFetch(t *testing.T) {
	t.Parallel()

	p := NewPager(8, nil)
	req := p.Open()
	require.True(t, p.Apply(req.Seq, api.QueryResult{Records: records("a", "b", "c"), TotalCount: 3, TotalPages: 1}, nil))
	p.Select([]string{"a", "c"})

	req = p.Refresh()
	require.True(t, p.Apply(req.Seq, api.QueryResult{Records: records("b", "c"), TotalCount: 2, TotalPages: 1}, nil))
	require.Equal(t, []string{"c"}, p.Selected())
}

func TestStaleResponseIgnored(t *testing.T) {
	t.Parallel()

	p := NewPager(8, nil)
	first := p.Open()
	second := p.SetPage(2)

	// The slow first page resolves after the second was issued.
	require.False(t, p.Apply(first.Seq, api.QueryResult{Records: records("old"), TotalCount: 1, TotalPages: 1}, nil))
	require.Empty(t, p.Rows())
	require.True(t, p.Loading(), "newer fetch still in flight")

	require.True(t, p.Apply(second.Seq, api.QueryResult{Records: records("new"), TotalCount: 9, TotalPages: 2}, nil))
	require.Len(t, p.Rows(), 1)
	require.Equal(t, "new", p.Rows()[0].ChatID)
	require.False(t, p.Loading())
}

func TestCloseClearsCachedState(t *testing.T) {
	t.Parallel()

	p := NewPager(8, nil)
	req := p.Open()
	require.True(t, p.Apply(req.Seq, api.QueryResult{Records: records("a"), TotalCount: 1, TotalPages: 1}, nil))
	p.SetPage(4)

	p.Close()
	require.False(t, p.Visible())
	require.Equal(t, 1, p.Page())
	require.Empty(t, p.Rows())
	require.Zero(t, p.Total())
	require.Zero(t, p.PageCount())
	require.False(t, p.Loading())
}

func TestCloseInvalidatesInFlightFetch(t *testing.T) {
	t.Parallel()

	p := NewPager(8, nil)
	req := p.Open()
	p.Close()

	require.False(t, p.Apply(req.Seq, api.QueryResult{Records: records("late"), TotalCount: 1, TotalPages: 1}, nil))
	require.Empty(t, p.Rows())
}

func TestReopenAfterCloseStartsAtPageOne(t *testing.T) {
	t.Parallel()

	p := NewPager(8, nil)
	p.Open()
	p.SetPage(3)
	p.Close()

	req := p.Open()
	require.Equal(t, 1, req.Page)
}
