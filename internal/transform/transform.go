// Package transform turns a fetched chapter page into a document body
// fragment in the target dialect. It isolates the narrative content,
// drops the navigation and sharing chrome WordPress wraps around it, and
// rewrites the inline markup that survives. Formatting is best-effort:
// unknown or malformed tags contribute their visible text and nothing
// else, they never fail the transform.
package transform

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Format selects the output markup dialect.
type Format string

const (
	FormatRTF      Format = "rtf"
	FormatMarkdown Format = "md"
)

// ParseFormat validates a format name from a flag or config file.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rtf":
		return FormatRTF, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown format %q (want rtf or md)", s)
}

// Ext returns the file extension for the dialect.
func (f Format) Ext() string {
	if f == FormatMarkdown {
		return "md"
	}
	return "rtf"
}

// noiseSelectors are elements removed from the content area before any
// rendering: scripts, styles, struck-through text, and the share/like
// blocks wordpress.com appends below the chapter body.
const noiseSelectors = "script, style, noscript, del, .sharedaddy, .wpcnt, #jp-post-flair, .post-navigation, .comments-area"

// Chapter extracts the narrative body of a chapter page and renders it in
// the requested dialect. The result is a self-contained fragment; the
// writer adds the document envelope around it.
func Chapter(page *goquery.Document, sourceURL string, format Format) (string, error) {
	content := page.Find(".entry-content").First()
	if content.Length() == 0 {
		return "", fmt.Errorf("no entry-content block in chapter page")
	}

	content.Find(noiseSelectors).Remove()
	content.Find("p").Each(func(_ int, p *goquery.Selection) {
		if isNavigation(p.Text()) {
			p.Remove()
		}
	})

	if format == FormatMarkdown {
		return renderMarkdown(content, sourceURL)
	}
	return renderRTF(content), nil
}

// navPhrases match the "Last Chapter" / "Next Chapter" link paragraphs at
// the top and bottom of every chapter, in every combination they appear in.
var navPhrases = map[string]bool{
	"lastchapter":                true,
	"nextchapter":                true,
	"lastchapternextchapter":     true,
	"nextchapterlastchapter":     true,
	"lastchapternextchapterline": true,
	"nextchapterlastchapterline": true,
}

func isNavigation(text string) bool {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return navPhrases[b.String()]
}
