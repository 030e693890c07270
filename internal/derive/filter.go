package derive

import "slices"

// Tagged is any record carrying a tag id list.
type Tagged interface {
	TagList() []string
}

// FilterByTags keeps the items carrying at least one of the selected tag ids
// (OR semantics). An empty selection returns the input unchanged.
func FilterByTags[T Tagged](items []T, selected []string) []T {
	if len(selected) == 0 {
		return items
	}
	var matched []T
	for _, item := range items {
		for _, id := range item.TagList() {
			if slices.Contains(selected, id) {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched
}
