package index

import "sort"

// FilterArcs resolves a 1-based arc selection against the index. An empty
// selection means all arcs. Selected arcs come back in index order with
// duplicates collapsed; indices that do not exist are returned separately
// so the caller can report them.
func FilterArcs(all []Arc, want []int) (selected []Arc, unknown []int) {
	if len(want) == 0 {
		return all, nil
	}

	for _, n := range dedupe(want) {
		if n < 1 || n > len(all) {
			unknown = append(unknown, n)
			continue
		}
		selected = append(selected, all[n-1])
	}
	return selected, unknown
}

// FilterChapters resolves a 1-based chapter selection within one arc,
// with the same semantics as FilterArcs.
func FilterChapters(arc Arc, want []int) (selected []Chapter, unknown []int) {
	if len(want) == 0 {
		return arc.Chapters, nil
	}

	for _, n := range dedupe(want) {
		if n < 1 || n > len(arc.Chapters) {
			unknown = append(unknown, n)
			continue
		}
		selected = append(selected, arc.Chapters[n-1])
	}
	return selected, unknown
}

func dedupe(nums []int) []int {
	out := make([]int, 0, len(nums))
	seen := map[int]bool{}
	for _, n := range nums {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
