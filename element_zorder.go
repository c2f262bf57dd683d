package cells

import "sort"

// paintOrder returns children in back-to-front paint order: ascending
// z_index, document order as the tiebreak. The result is a fresh slice;
// e.children itself (and its document order, used for tab order) is
// never mutated.
func paintOrder(children []*Element) []*Element {
	ordered := make([]*Element, len(children))
	copy(ordered, children)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].style.ZIndex < ordered[j].style.ZIndex
	})
	return ordered
}

// hitOrder returns children in reverse paint order (top-first), so a
// higher z_index, or a later-declared sibling at the same z_index, is
// hit-tested before the ones it was painted over.
func hitOrder(children []*Element) []*Element {
	ordered := paintOrder(children)
	for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
		ordered[i], ordered[j] = ordered[j], ordered[i]
	}
	return ordered
}
