package writer

import (
	"fmt"
	"strings"

	"github.com/Zoetrophy/pervade/internal/transform"
)

// RTF envelope pieces. Sizes are half-points, margins and indents twips.
const (
	rtfHeader = "{\\rtf1\\deflang1033\\plain\\fs28\\widowctrl\\hyphauto\\ftnbj" +
		"\\margt2160\\margb2160\\margl1440\\margr1440 " +
		"{\\fonttbl {\\f0 Times New Roman;}{\\f1 Arial;}{\\f2 Courier;}}\n"

	authorName     = "JOHN McCRAE"
	authorNickname = "WILDBOW"
)

// rtfBlankRunningHeads clears all header/footer slots before the first
// section. Some RTF readers render stale running heads on the first page
// without this.
const rtfBlankRunningHeads = "{\\headerl\\pard\\par}\n" +
	"{\\headerr\\pard\\par}\n" +
	"{\\headerf\\pard\\par}\n" +
	"{\\footerl\\pard\\par}\n" +
	"{\\footerr\\pard\\par}\n" +
	"{\\footerf\\pard\\par}\n"

// rtfSingle wraps one chapter body as a standalone document. The first
// chapter file of an arc also carries the arc title page, so a shelf of
// per-chapter files still opens on the arc cover.
func rtfSingle(d Document, titlePage bool) string {
	var b strings.Builder
	b.WriteString(rtfHeader)
	b.WriteString(rtfBlankRunningHeads)
	b.WriteString("\\sectd")
	if titlePage {
		b.WriteString(rtfTitlePage(d.ArcTitle))
		b.WriteString(rtfRunningHeads(d.ArcTitle, d.ChapterTitle))
		b.WriteString("\\sect\\sectd\n")
		b.WriteString("{\\pard\\page\\par}\n")
	} else {
		b.WriteString("\n")
		b.WriteString(rtfRunningHeads(d.ArcTitle, d.ChapterTitle))
	}
	b.WriteString(rtfChapterHeading(d.ChapterTitle))
	b.WriteString(d.Body)
	b.WriteString("{\\pard\\page\\par}\n}")
	return b.String()
}

// rtfJoined wraps all of an arc's chapters as one document: title page,
// then one section per chapter with its own running heads, then an
// end-of-arc page.
func rtfJoined(arcTitle string, docs []Document) string {
	var b strings.Builder
	b.WriteString(rtfHeader)
	b.WriteString(rtfBlankRunningHeads)
	b.WriteString("\\sectd")
	b.WriteString(rtfTitlePage(arcTitle))

	for _, d := range docs {
		b.WriteString(rtfRunningHeads(arcTitle, d.ChapterTitle))
		b.WriteString("\\sect\\sectd\n")
		b.WriteString("{\\pard\\page\\par}\n")
		b.WriteString(rtfChapterHeading(d.ChapterTitle))
		b.WriteString(d.Body)
	}

	b.WriteString(rtfBlankRunningHeads)
	b.WriteString("\\sect\\sectd")
	b.WriteString("{\\pard\\page\\par}\n")
	fmt.Fprintf(&b, "{\\pard\\qc\\f2\\b END OF %s\\b0\\par}\n}", transform.EscapeRTF(strings.ToUpper(arcTitle)))
	return b.String()
}

func rtfTitlePage(arcTitle string) string {
	var b strings.Builder
	b.WriteString("{\\pard\\sa180\\qc\\fs36\\par}\n")
	fmt.Fprintf(&b, "{\\pard\\sa180\\qc\\fs72\\f1\\b %s\\b0\\par}\n", transform.EscapeRTF(strings.ToUpper(arcTitle)))
	fmt.Fprintf(&b, "{\\pard\\sa180\\qc\\fs36\\f1%s\\par}\n", strings.Repeat("\\line", 20))
	fmt.Fprintf(&b, "{\\pard\\sa120\\qc\\fs42\\f1\\b %s\\b0\\par}\n", authorName)
	fmt.Fprintf(&b, "{\\pard\\sa0\\qc\\fs28\\f1\\b %s\\b0\\par}\n", authorNickname)
	b.WriteString("{\\pard\\qc\\page\\fs24\\f1 This page left intentionally blank.\\par}\n")
	return b.String()
}

// rtfRunningHeads sets the section's running headers (arc title left,
// chapter title right) and page-number footers.
func rtfRunningHeads(arcTitle, chapterTitle string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "{\\headerl\\pard\\ql\\fs28\\f1\\line\\line %s\\par}\n",
		transform.EscapeRTF(strings.ToUpper(arcTitle)))
	fmt.Fprintf(&b, "{\\headerr\\pard\\qr\\fs28\\f1\\line\\line CHAPTER %s\\par}\n",
		transform.EscapeRTF(strings.ToUpper(chapterTitle)))
	b.WriteString("{\\headerf\\pard\\qc\\par}\n")
	b.WriteString("{\\footerl\\pard\\ql\\fs28\\line\\chpgn\\par}\n")
	b.WriteString("{\\footerr\\pard\\qr\\fs28\\line\\chpgn\\par}\n")
	b.WriteString("{\\footerf\\pard\\qc\\fs28\\line\\par}\n")
	return b.String()
}

// rtfChapterHeading prints the chapter title. A parenthesized part, as in
// "Interlude 2 (Donation Bonus)", becomes a smaller subtitle line.
func rtfChapterHeading(chapterTitle string) string {
	main, sub := splitTitle(chapterTitle)
	if sub == "" {
		return fmt.Sprintf("{\\pard\\sa480\\qc\\fs56\\f2\\b %s\\b0\\par}\n", transform.EscapeRTF(main))
	}
	return fmt.Sprintf("{\\pard\\sa120\\qc\\fs56\\f2\\b %s\\b0\\par}\n", transform.EscapeRTF(main)) +
		fmt.Sprintf("{\\pard\\sa480\\qc\\fs28\\f2\\b %s\\b0\\par}\n", transform.EscapeRTF(sub))
}

func splitTitle(title string) (main, sub string) {
	open := strings.IndexByte(title, '(')
	if open < 0 {
		return strings.TrimSpace(title), ""
	}
	main = strings.TrimSpace(title[:open])
	sub = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(title[open+1:]), ")"))
	if main == "" {
		return sub, ""
	}
	return main, sub
}
