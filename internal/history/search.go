package history

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/FisherYu0112/Aix-DB/internal/api"
)

// minSimilarity is the cutoff below which a non-substring match is dropped
// from filter results.
const minSimilarity = 0.3

// RankRecords orders the records of the current page by how well their
// display label matches query, best first. Substring hits rank ahead of
// fuzzy hits; records below the similarity cutoff are dropped. An empty
// query returns the input unchanged.
func RankRecords(records []api.Record, query string) []api.Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}
	type scored struct {
		rec   api.Record
		score float64
	}
	var out []scored
	for _, r := range records {
		label := strings.ToLower(RowViewOf(r).Label)
		score := similarity(label, q)
		if strings.Contains(label, q) {
			score = 1
		}
		if score < minSimilarity {
			continue
		}
		out = append(out, scored{rec: r, score: score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })
	ranked := make([]api.Record, len(out))
	for i, s := range out {
		ranked[i] = s.rec
	}
	return ranked
}

func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
