package index

import (
	"reflect"
	"testing"
)

func testArcs(n int) []Arc {
	arcs := make([]Arc, n)
	for i := range arcs {
		arcs[i] = Arc{Number: i + 1, Title: "Arc"}
	}
	return arcs
}

func TestFilterArcs(t *testing.T) {
	all := testArcs(5)

	cases := []struct {
		name        string
		want        []int
		expect      []int // arc numbers
		expectOdd   []int // unknown
	}{
		{"empty selects all", nil, []int{1, 2, 3, 4, 5}, nil},
		{"subset in index order", []int{4, 2}, []int{2, 4}, nil},
		{"duplicates collapse", []int{2, 2, 2}, []int{2}, nil},
		{"unknown reported", []int{2, 9, 0}, []int{2}, []int{0, 9}},
		{"all unknown", []int{7, 8}, nil, []int{7, 8}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			selected, unknown := FilterArcs(all, tc.want)
			var nums []int
			for _, a := range selected {
				nums = append(nums, a.Number)
			}
			if !reflect.DeepEqual(nums, tc.expect) {
				t.Errorf("selected %v, want %v", nums, tc.expect)
			}
			if !reflect.DeepEqual(unknown, tc.expectOdd) {
				t.Errorf("unknown %v, want %v", unknown, tc.expectOdd)
			}
		})
	}
}

func TestFilterChapters_SkipsMiddleChapter(t *testing.T) {
	arc := Arc{Number: 2, Title: "Insinuation", Chapters: []Chapter{
		{Number: 1, Title: "2.1"},
		{Number: 2, Title: "2.2"},
		{Number: 3, Title: "2.3"},
	}}

	selected, unknown := FilterChapters(arc, []int{3, 1})
	if len(unknown) != 0 {
		t.Fatalf("unexpected unknown chapters: %v", unknown)
	}
	if len(selected) != 2 || selected[0].Number != 1 || selected[1].Number != 3 {
		t.Fatalf("expected chapters 1 and 3 in ascending order, got %+v", selected)
	}
}

func TestFilterChapters_EmptySelectsAll(t *testing.T) {
	arc := Arc{Chapters: []Chapter{{Number: 1}, {Number: 2}}}
	selected, _ := FilterChapters(arc, nil)
	if len(selected) != 2 {
		t.Fatalf("expected all chapters, got %d", len(selected))
	}
}
