package index

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// Chapter is one installment of an arc, numbered 1-based within it.
type Chapter struct {
	Number int
	Title  string
	URL    string
}

// Arc is a named group of sequential chapters, numbered 1-based by its
// position on the table-of-contents page.
type Arc struct {
	Number   int
	Title    string
	Chapters []Chapter
}

// SeriesIndex is the ordered list of arcs scraped from the live
// table-of-contents page. It is rebuilt on every run and never persisted.
type SeriesIndex struct {
	Arcs []Arc
}

// Chapters returns the total chapter count across all arcs.
func (s *SeriesIndex) Chapters() int {
	n := 0
	for _, a := range s.Arcs {
		n += len(a.Chapters)
	}
	return n
}

// Parse extracts the series index from a table-of-contents page.
//
// The page body lives in a single .entry-content block. Inside it, bold
// headings open arcs and anchor links under the current heading become
// chapters. The markup is hand-edited and messy, so a few heading quirks
// are tolerated: headings starting with a digit are navigation noise, a
// single-character heading is a split fragment joined onto the next one,
// and a heading containing a newline only contributes its first line.
// Epilogue headings ("E.") do not open a new arc; their chapter links
// fall under the final arc instead.
func Parse(doc *goquery.Document, pageURL string) (*SeriesIndex, error) {
	content := doc.Find(".entry-content").First()
	if content.Length() == 0 {
		return nil, fmt.Errorf("no entry-content block in table of contents page")
	}

	idx := &SeriesIndex{}
	prefix := ""
	seen := map[string]bool{}

	content.Find("strong, b, a[href]").Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "a" {
			addChapter(idx, s, pageURL, seen)
			return
		}

		heading := strings.TrimSpace(s.Text())
		if heading == "" {
			return
		}
		if i := strings.IndexByte(heading, '\n'); i >= 0 {
			heading = strings.TrimSpace(heading[:i])
		}
		if startsWithDigit(heading) {
			return
		}
		if prefix == "" && len([]rune(heading)) == 1 {
			prefix = heading
			return
		}
		heading = prefix + heading
		prefix = ""
		if strings.HasPrefix(heading, "E.") {
			return
		}
		idx.Arcs = append(idx.Arcs, Arc{Title: heading})
	})

	dropEmptyArcs(idx)
	if len(idx.Arcs) == 0 {
		return nil, fmt.Errorf("no arcs found in table of contents page")
	}
	return idx, nil
}

func addChapter(idx *SeriesIndex, a *goquery.Selection, pageURL string, seen map[string]bool) {
	title := strings.TrimSpace(a.Text())
	if !looksLikeChapter(title) || len(idx.Arcs) == 0 {
		return
	}

	href, _ := a.Attr("href")
	u := resolveURL(pageURL, href)
	if u == "" || seen[u] {
		return
	}
	seen[u] = true

	arc := &idx.Arcs[len(idx.Arcs)-1]
	arc.Chapters = append(arc.Chapters, Chapter{
		Number: len(arc.Chapters) + 1,
		Title:  title,
		URL:    u,
	})
}

// looksLikeChapter reports whether an anchor's text is a chapter entry.
// Chapter links on the real page start with the arc number ("1.1",
// "2.3", ...); epilogue chapters start with "E". Anything else under an
// arc heading is donation links and other noise.
func looksLikeChapter(text string) bool {
	if text == "" {
		return false
	}
	r := []rune(text)[0]
	return unicode.IsDigit(r) || r == 'E'
}

func startsWithDigit(s string) bool {
	if s == "" {
		return false
	}
	return unicode.IsDigit([]rune(s)[0])
}

// dropEmptyArcs removes false-positive headings (bold text with no chapter
// links under it) and renumbers the rest.
func dropEmptyArcs(idx *SeriesIndex) {
	kept := idx.Arcs[:0]
	for _, a := range idx.Arcs {
		if len(a.Chapters) == 0 {
			continue
		}
		a.Number = len(kept) + 1
		kept = append(kept, a)
	}
	idx.Arcs = kept
}

func resolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if u.IsAbs() {
		return u.String()
	}
	// Some chapter links are scheme-less absolute URLs.
	if u.Host == "" && strings.Contains(href, ".") && !strings.HasPrefix(href, "/") {
		if withScheme, err := url.Parse("https://" + href); err == nil && withScheme.Host != "" {
			return withScheme.String()
		}
	}

	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	return b.ResolveReference(u).String()
}
