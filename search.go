package nexus

import "context"

// SearchMode selects the result-filtering strategy for a search.
type SearchMode string

// Search modes. SearchDocs biases results toward technical and
// documentation sources; SearchGeneral preserves provider order.
const (
	SearchGeneral SearchMode = "general"
	SearchDocs    SearchMode = "docs"
)

// ValidSearchMode reports whether s names a known search mode.
func ValidSearchMode(s string) bool {
	switch SearchMode(s) {
	case SearchGeneral, SearchDocs:
		return true
	}
	return false
}

// Result represents a single raw search hit from a provider.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// RankedResult is a Result annotated with its URL classification.
// Ordering within the returned slice is the externally visible ranking.
type RankedResult struct {
	Result

	// Technical reports whether the result URL matched the marker set.
	Technical bool
}

// Searcher returns raw search results for a query.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// Bounds for the max_results input. Out-of-range values are clamped,
// never rejected.
const (
	MinResults = 1
	MaxResults = 20
)

// ClampMaxResults forces n into the inclusive [MinResults, MaxResults] range.
func ClampMaxResults(n int) int {
	if n < MinResults {
		return MinResults
	}
	if n > MaxResults {
		return MaxResults
	}
	return n
}

// FilterAndRank post-processes raw search results for the given mode.
//
// In docs mode the results are stably partitioned: every technical
// result comes before every non-technical one, and relative order
// within each partition is the original provider order. Non-technical
// results only back-fill up to maxResults. In general mode provider
// order is preserved. maxResults is clamped into [MinResults, MaxResults].
// An empty input is a valid empty output, not an error.
func FilterAndRank(results []Result, mode SearchMode, maxResults int, markers MarkerSet) []RankedResult {
	maxResults = ClampMaxResults(maxResults)

	ranked := make([]RankedResult, 0, len(results))
	for _, r := range results {
		ranked = append(ranked, RankedResult{
			Result:    r,
			Technical: markers.Classify(r.URL).Technical,
		})
	}

	if mode == SearchDocs {
		partitioned := make([]RankedResult, 0, len(ranked))
		for _, r := range ranked {
			if r.Technical {
				partitioned = append(partitioned, r)
			}
		}
		for _, r := range ranked {
			if !r.Technical {
				partitioned = append(partitioned, r)
			}
		}
		ranked = partitioned
	}

	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}
