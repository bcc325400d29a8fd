package services

import (
	"sort"

	"bestrate/models"
)

// Rank orders scored items by descending score. Items with equal scores
// keep their relative order. The input slice is left untouched.
func Rank(scored []*models.ScoredItem) *models.Ranking {
	items := make([]*models.ScoredItem, len(scored))
	copy(items, scored)

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	return &models.Ranking{Items: items}
}

// Items returns the underlying Items of a ranking in ranked order, so a
// ranking can be scored again.
func Items(r *models.Ranking) []*models.Item {
	out := make([]*models.Item, r.Len())
	for i, s := range r.Items {
		it := s.Item
		out[i] = &it
	}
	return out
}
