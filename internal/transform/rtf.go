package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	rtfParagraphPrefix = `{\pard\sl360\slmult1`
	rtfParagraphSuffix = "\\par}\n"
	rtfFirstLineIndent = 360
	rtfBlockInset      = 1080

	// Centered dashes standing in for a <hr> scene divider.
	rtfSceneBreak = "{\\pard\\sl360\\slmult1\\qc \\emdash\\emdash\\emdash\\par}\n"
)

// renderRTF walks the chapter paragraphs in document order and emits one
// RTF paragraph group per <p>. Body text is justified with a first-line
// indent; paragraphs carrying inline CSS keep their alignment and block
// inset instead.
func renderRTF(content *goquery.Selection) string {
	var b strings.Builder
	content.Find("p, hr").Each(func(_ int, sel *goquery.Selection) {
		if goquery.NodeName(sel) == "hr" {
			b.WriteString(rtfSceneBreak)
			return
		}
		b.WriteString(renderRTFParagraph(sel))
	})
	return b.String()
}

func renderRTFParagraph(p *goquery.Selection) string {
	var body strings.Builder
	for _, n := range p.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walkInline(c, &body)
		}
	}

	text := body.String()
	if !strings.HasPrefix(text, "\\") {
		text = " " + text
	}

	prefix := rtfParagraphPrefix
	style, _ := p.Attr("style")
	css := parseInlineCSS(style)
	if len(css) == 0 {
		prefix += `\qj\fi` + strconv.Itoa(rtfFirstLineIndent)
	} else {
		switch css["text-align"] {
		case "":
		case "left":
			prefix += `\ql`
		case "right":
			prefix += `\qr`
		default:
			prefix += `\qc`
		}
		if _, ok := css["padding-left"]; ok {
			prefix += fmt.Sprintf(`\li%d\ri%d`, rtfBlockInset, rtfBlockInset)
		}
	}

	return prefix + text + rtfParagraphSuffix
}

// walkInline renders one node of the paragraph tree. Emphasis maps to RTF
// toggles, line breaks to \line, and anything unrecognized contributes
// only its text content.
func walkInline(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(EscapeRTF(n.Data))
	case html.ElementNode:
		switch n.Data {
		case "em", "i":
			wrapInline(n, b, `\i `, `\i0 `)
		case "strong", "b":
			wrapInline(n, b, `\b `, `\b0 `)
		case "u":
			wrapInline(n, b, `\ul `, `\ul0 `)
		case "span":
			if underlined(n) {
				wrapInline(n, b, `\ul `, `\ul0 `)
			} else {
				walkChildren(n, b)
			}
		case "br":
			b.WriteString("\\line\n")
		case "del", "script", "style":
			// struck-through corrections and stray code never reach the page
		default:
			walkChildren(n, b)
		}
	}
}

func wrapInline(n *html.Node, b *strings.Builder, opening, closing string) {
	b.WriteString(opening)
	walkChildren(n, b)
	b.WriteString(closing)
}

func walkChildren(n *html.Node, b *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkInline(c, b)
	}
}

func underlined(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key != "style" {
			continue
		}
		if deco, ok := parseInlineCSS(a.Val)["text-decoration"]; ok {
			return strings.Contains(deco, "underline")
		}
	}
	return false
}

// parseInlineCSS splits a style attribute into property/value pairs.
// Malformed declarations are dropped.
func parseInlineCSS(style string) map[string]string {
	css := map[string]string{}
	for _, decl := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		val = strings.TrimSpace(val)
		if prop != "" && val != "" {
			css[prop] = val
		}
	}
	return css
}

// EscapeRTF renders a text run as 7-bit RTF. Typographic punctuation gets
// its control word, other non-ASCII runes fall back to \uN with a "?"
// substitute for readers without Unicode support.
func EscapeRTF(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '{':
			b.WriteString(`\{`)
		case '}':
			b.WriteString(`\}`)
		case '\u00a0':
			b.WriteString(`\~`)
		case '\u2013':
			b.WriteString(`\endash `)
		case '\u2014':
			b.WriteString(`\emdash `)
		case '\u2018':
			b.WriteString(`\lquote `)
		case '\u2019':
			b.WriteString(`\rquote `)
		case '\u201c':
			b.WriteString(`\ldblquote `)
		case '\u201d':
			b.WriteString(`\rdblquote `)
		case '\u2026':
			b.WriteString("...")
		case '\u25a0':
			b.WriteString(`\bullet `)
		case '\n', '\r', '\t':
			b.WriteByte(' ')
		default:
			if r < 0x80 {
				b.WriteRune(r)
			} else {
				writeUnicodeEscape(&b, r)
			}
		}
	}
	return b.String()
}

func writeUnicodeEscape(b *strings.Builder, r rune) {
	if r > 0xFFFF {
		// outside the basic plane; \uN cannot express it
		b.WriteByte('?')
		return
	}
	v := int32(r)
	if v > 32767 {
		v -= 65536
	}
	fmt.Fprintf(b, `\u%d?`, v)
}
