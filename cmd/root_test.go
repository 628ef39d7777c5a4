package cmd

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

func selectionCmd(t *testing.T, changed ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{}
	c.Flags().IntSliceP("arc", "a", nil, "")
	c.Flags().IntSliceP("chapter", "c", nil, "")
	for _, name := range changed {
		if err := c.Flags().Set(name, "1"); err != nil {
			t.Fatal(err)
		}
	}
	return c
}

func resetSelection() {
	flagArcs = nil
	flagChapters = nil
}

func TestFoldSelectionArgs_ChaptersWin(t *testing.T) {
	defer resetSelection()
	flagArcs = []int{2}
	flagChapters = []int{1}

	// `pervade -a 2 -c 1 3`: the trailing 3 belongs to the chapter list
	if err := foldSelectionArgs(selectionCmd(t, "arc", "chapter"), []string{"3"}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(flagChapters, []int{1, 3}) {
		t.Errorf("chapters = %v, want [1 3]", flagChapters)
	}
	if !reflect.DeepEqual(flagArcs, []int{2}) {
		t.Errorf("arcs = %v, want [2]", flagArcs)
	}
}

func TestFoldSelectionArgs_ArcsWhenNoChapterFlag(t *testing.T) {
	defer resetSelection()
	flagArcs = []int{2}

	if err := foldSelectionArgs(selectionCmd(t, "arc"), []string{"5", "7"}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(flagArcs, []int{2, 5, 7}) {
		t.Errorf("arcs = %v, want [2 5 7]", flagArcs)
	}
}

func TestFoldSelectionArgs_Rejections(t *testing.T) {
	defer resetSelection()

	if err := foldSelectionArgs(selectionCmd(t), []string{"3"}); err == nil {
		t.Error("bare args without -a/-c must be rejected")
	}
	if err := foldSelectionArgs(selectionCmd(t, "arc"), []string{"three"}); err == nil {
		t.Error("non-integer args must be rejected")
	}
}

func TestCountDistinct(t *testing.T) {
	if got := countDistinct([]int{2, 2, 2}); got != 1 {
		t.Errorf("countDistinct = %d, want 1", got)
	}
	if got := countDistinct(nil); got != 0 {
		t.Errorf("countDistinct(nil) = %d, want 0", got)
	}
}

func TestHuman(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{3 << 20, "3.00 MB"},
	}
	for _, tc := range cases {
		if got := human(tc.in); got != tc.want {
			t.Errorf("human(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
