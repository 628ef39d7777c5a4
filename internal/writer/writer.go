// Package writer turns transformed chapter bodies into files on disk,
// one per chapter or one joined file per arc, wrapping each body in the
// target dialect's document envelope.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Zoetrophy/pervade/internal/transform"
)

// Document is one transformed chapter ready to be written. It only lives
// for the duration of the arc that produced it.
type Document struct {
	ArcNumber     int
	ArcTitle      string
	ChapterNumber int
	ChapterTitle  string
	SourceURL     string
	Body          string
}

type Writer struct {
	OutputDir string
	Format    transform.Format
	Join      bool
}

func New(outputDir string, format transform.Format, join bool) *Writer {
	return &Writer{OutputDir: outputDir, Format: format, Join: join}
}

// WriteArc writes all of one arc's documents, either one file per chapter
// or a single joined arc file, and returns the paths written and the byte
// count. The first write failure aborts the rest of the arc.
func (w *Writer) WriteArc(arcTitle string, docs []Document) ([]string, int64, error) {
	if len(docs) == 0 {
		return nil, 0, nil
	}

	if w.Join {
		path := filepath.Join(w.OutputDir, arcFileName(arcTitle, w.Format.Ext()))
		content := w.renderJoined(arcTitle, docs)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return nil, 0, fmt.Errorf("writing %s: %w", path, err)
		}
		return []string{path}, int64(len(content)), nil
	}

	var paths []string
	var bytes int64
	for i, d := range docs {
		path := filepath.Join(w.OutputDir, chapterFileName(d, w.Format.Ext()))
		content := w.renderSingle(d, i == 0)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return paths, bytes, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
		bytes += int64(len(content))
	}
	return paths, bytes, nil
}

func (w *Writer) renderSingle(d Document, firstOfArc bool) string {
	if w.Format == transform.FormatMarkdown {
		return markdownSingle(d)
	}
	return rtfSingle(d, firstOfArc)
}

func (w *Writer) renderJoined(arcTitle string, docs []Document) string {
	if w.Format == transform.FormatMarkdown {
		return markdownJoined(arcTitle, docs)
	}
	return rtfJoined(arcTitle, docs)
}

func chapterFileName(d Document, ext string) string {
	return fmt.Sprintf("%02d-%02d %s.%s", d.ArcNumber, d.ChapterNumber, sanitizeTitle(d.ChapterTitle), ext)
}

func arcFileName(arcTitle, ext string) string {
	return sanitizeTitle(arcTitle) + "." + ext
}

// sanitizeTitle keeps titles readable while dropping the characters that
// break paths. Colons become " -" so "Arc 1: Gestation" stays legible.
func sanitizeTitle(s string) string {
	s = strings.ReplaceAll(s, ":", " -")
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
