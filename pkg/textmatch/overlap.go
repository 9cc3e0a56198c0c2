package textmatch

import (
	"slices"
	"sort"
)

// resolveOverlaps orders raw matches by start and sweeps them once, comparing
// the current span with its successor:
//   - equal spans merge their keys
//   - a successor inside the current span is dropped
//   - a current span inside its successor is replaced by it
//   - a successor starting inside the current span is dropped
//
// Otherwise the current span is final.
func resolveOverlaps(raw []ExactMatch) []ExactMatch {
	if len(raw) == 0 {
		return nil
	}
	sort.SliceStable(raw, func(a, b int) bool {
		return raw[a].Start < raw[b].Start
	})

	resolved := make([]ExactMatch, 0, len(raw))
	cur := raw[0]
	for _, next := range raw[1:] {
		switch {
		case cur.Start == next.Start && cur.End == next.End:
			cur.Keys = mergeKeys(cur.Keys, next.Keys)
		case cur.Start <= next.Start && cur.End >= next.End:
		case cur.Start >= next.Start && cur.End <= next.End:
			cur = next
		case cur.Start <= next.Start && next.Start <= cur.End:
		default:
			resolved = append(resolved, cur)
			cur = next
		}
	}
	return append(resolved, cur)
}

func mergeKeys(a, b []int) []int {
	merged := append(slices.Clone(a), b...)
	slices.Sort(merged)
	return slices.Compact(merged)
}
