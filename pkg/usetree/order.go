package usetree

// Keys returns the group keys in rendering order, which is the order of first appearance
func Keys(groups []*Group) []GroupKey {
	keys := make([]GroupKey, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	return keys
}

// NeedsBlankLine reports whether a blank line separates two consecutive groups.
// Groups of the same origin that differ only in visibility or leading colon stay adjacent.
func NeedsBlankLine(prev, next GroupKey) bool {
	return prev.Category != next.Category
}
