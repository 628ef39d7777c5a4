package writer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zoetrophy/pervade/internal/transform"
)

func sampleDocs() []Document {
	return []Document{
		{
			ArcNumber: 1, ArcTitle: "Arc 1: Gestation",
			ChapterNumber: 1, ChapterTitle: "1.1",
			SourceURL: "https://parahumans.wordpress.com/1-1/",
			Body:      "{\\pard\\sl360\\slmult1\\qj\\fi360 First chapter body.\\par}\n",
		},
		{
			ArcNumber: 1, ArcTitle: "Arc 1: Gestation",
			ChapterNumber: 2, ChapterTitle: "1.2",
			SourceURL: "https://parahumans.wordpress.com/1-2/",
			Body:      "{\\pard\\sl360\\slmult1\\qj\\fi360 Second chapter body.\\par}\n",
		},
	}
}

func TestWriteArc_PerChapterFiles(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, transform.FormatRTF, false)

	paths, n, err := w.WriteArc("Arc 1: Gestation", sampleDocs())
	if err != nil {
		t.Fatalf("WriteArc: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 files, got %d", len(paths))
	}
	if n <= 0 {
		t.Errorf("expected positive byte count, got %d", n)
	}

	wantNames := []string{"01-01 1.1.rtf", "01-02 1.2.rtf"}
	for i, p := range paths {
		if filepath.Base(p) != wantNames[i] {
			t.Errorf("file %d named %q, want %q", i, filepath.Base(p), wantNames[i])
		}
		b, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("reading %s: %v", p, err)
		}
		content := string(b)
		if !strings.HasPrefix(content, "{\\rtf1") {
			t.Errorf("%s missing RTF header", p)
		}
		if !strings.HasSuffix(content, "}") {
			t.Errorf("%s not closed", p)
		}
		// the arc title page opens the first chapter file only
		hasTitlePage := strings.Contains(content, "JOHN McCRAE")
		if i == 0 && !hasTitlePage {
			t.Errorf("%s missing arc title page", p)
		}
		if i > 0 && hasTitlePage {
			t.Errorf("%s repeats the arc title page", p)
		}
	}
}

func TestWriteArc_JoinedFile(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, transform.FormatRTF, true)

	paths, _, err := w.WriteArc("Arc 1: Gestation", sampleDocs())
	if err != nil {
		t.Fatalf("WriteArc: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("join mode must produce exactly 1 file, got %d", len(paths))
	}
	if got := filepath.Base(paths[0]); got != "Arc 1 - Gestation.rtf" {
		t.Errorf("joined file named %q", got)
	}

	b, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	content := string(b)

	first := strings.Index(content, "First chapter body.")
	second := strings.Index(content, "Second chapter body.")
	if first < 0 || second < 0 || second < first {
		t.Errorf("chapters missing or out of order (first=%d second=%d)", first, second)
	}
	for _, want := range []string{"JOHN McCRAE", "WILDBOW", "END OF ARC 1"} {
		if !strings.Contains(content, want) {
			t.Errorf("joined envelope missing %q", want)
		}
	}
}

func TestWriteArc_MarkdownSingle(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, transform.FormatMarkdown, false)

	docs := []Document{{
		ArcNumber: 2, ArcTitle: "Insinuation",
		ChapterNumber: 3, ChapterTitle: "2.3",
		SourceURL: "https://parahumans.wordpress.com/2-3/",
		Body:      "Taylor walked home.",
	}}

	paths, _, err := w.WriteArc("Insinuation", docs)
	if err != nil {
		t.Fatalf("WriteArc: %v", err)
	}
	if filepath.Base(paths[0]) != "02-03 2.3.md" {
		t.Errorf("unexpected name %q", filepath.Base(paths[0]))
	}

	b, _ := os.ReadFile(paths[0])
	content := string(b)
	for _, want := range []string{"---\ntitle: ", "source_url: https://parahumans.wordpress.com/2-3/", "# 2.3", "Taylor walked home."} {
		if !strings.Contains(content, want) {
			t.Errorf("markdown output missing %q:\n%s", want, content)
		}
	}
	// identical reruns must produce identical bytes; no timestamps allowed
	if strings.Contains(content, "date") {
		t.Errorf("markdown frontmatter carries a date: %s", content)
	}
}

func TestWriteArc_Idempotent(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, transform.FormatRTF, true)

	paths, _, err := w.WriteArc("Arc 1: Gestation", sampleDocs())
	if err != nil {
		t.Fatal(err)
	}
	first, _ := os.ReadFile(paths[0])

	if _, _, err := w.WriteArc("Arc 1: Gestation", sampleDocs()); err != nil {
		t.Fatal(err)
	}
	second, _ := os.ReadFile(paths[0])

	if string(first) != string(second) {
		t.Error("identical runs produced different bytes")
	}
}

func TestWriteArc_UnwritableDir(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "does", "not", "exist"), transform.FormatRTF, false)
	if _, _, err := w.WriteArc("Arc 1: Gestation", sampleDocs()); err == nil {
		t.Fatal("expected write error for missing directory")
	}
}

func TestWriteArc_NoDocuments(t *testing.T) {
	w := New(t.TempDir(), transform.FormatRTF, true)
	paths, n, err := w.WriteArc("Arc 1: Gestation", nil)
	if err != nil || len(paths) != 0 || n != 0 {
		t.Errorf("empty arc should be a no-op, got paths=%v n=%d err=%v", paths, n, err)
	}
}

func TestSanitizeTitle(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Arc 1: Gestation", "Arc 1 - Gestation"},
		{"a/b\\c", "a-b-c"},
		{"what?", "what-"},
		{"plain title", "plain title"},
	}
	for _, tc := range cases {
		if got := sanitizeTitle(tc.in); got != tc.want {
			t.Errorf("sanitizeTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
