package library

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// Search returns the videos whose name fuzzy-matches query, best match first.
// An empty query returns videos unchanged.
func Search(query string, videos []*Video) []*Video {
	if query == "" {
		return videos
	}

	names := lo.Map(videos, func(v *Video, _ int) string {
		return v.Name
	})

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) *Video {
		return videos[r.OriginalIndex]
	})
}
