package transform

import (
	"strings"
	"testing"
)

func mdBody(t *testing.T, body string) string {
	t.Helper()
	out, err := Chapter(chapterDoc(t, body), chapterURL, FormatMarkdown)
	if err != nil {
		t.Fatalf("Chapter: %v", err)
	}
	return out
}

func TestMarkdown_Emphasis(t *testing.T) {
	out := mdBody(t, `<p>Hello <strong>brave</strong> <em>new</em> world</p>`)

	if !strings.Contains(out, "**brave**") {
		t.Errorf("bold not converted: %q", out)
	}
	if !strings.Contains(out, "*new*") {
		t.Errorf("italic not converted: %q", out)
	}
}

func TestMarkdown_NoiseRemoved(t *testing.T) {
	out := mdBody(t, `
		<p><a href="#">Last Chapter</a></p>
		<script>track();</script>
		<p>Body text<del> removed edit</del></p>
		<div class="sharedaddy">Share this</div>`)

	for _, gone := range []string{"Last Chapter", "track()", "removed edit", "Share this"} {
		if strings.Contains(out, gone) {
			t.Errorf("noise %q survived: %q", gone, out)
		}
	}
	if !strings.Contains(out, "Body text") {
		t.Errorf("narrative lost: %q", out)
	}
}

func TestCleanMarkdown(t *testing.T) {
	in := "a   \n\n\n\n\nb\t\n\n"
	want := "a\n\nb"
	if got := cleanMarkdown(in); got != want {
		t.Errorf("cleanMarkdown(%q) = %q, want %q", in, got, want)
	}
}
