package menu

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// BestMatchIndex returns the item best matching query: an exact label,
// then a prefix, then a substring, then the closest fuzzy match. Dividers
// never match. It returns -1 when nothing does.
func BestMatchIndex(items []Item, query string) int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return -1
	}
	lower := strings.ToLower(trimmed)
	for i := range items {
		if items[i].Focusable() && strings.EqualFold(items[i].Text, trimmed) {
			return i
		}
	}
	for i := range items {
		if items[i].Focusable() && strings.HasPrefix(strings.ToLower(items[i].Text), lower) {
			return i
		}
	}
	for i := range items {
		if items[i].Focusable() && strings.Contains(strings.ToLower(items[i].Text), lower) {
			return i
		}
	}
	labels := make([]string, 0, len(items))
	index := make([]int, 0, len(items))
	for i := range items {
		if !items[i].Focusable() {
			continue
		}
		labels = append(labels, items[i].Text)
		index = append(index, i)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	return index[best.OriginalIndex]
}
