package transform

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
)

// removeTags are stripped entirely by the markdown converter; the DOM-level
// noise removal already ran, this is the safety net inside the converter.
var removeTags = []string{"nav", "script", "style", "noscript", "iframe", "del"}

var multiBlankLines = regexp.MustCompile(`\n{3,}`)

func renderMarkdown(content *goquery.Selection, sourceURL string) (string, error) {
	fragment, err := content.Html()
	if err != nil {
		return "", fmt.Errorf("serializing chapter body: %w", err)
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	for _, tag := range removeTags {
		conv.Register.TagType(tag, converter.TagTypeRemove, converter.PriorityStandard)
	}

	md, err := conv.ConvertString(fragment, converter.WithDomain(domainFromURL(sourceURL)))
	if err != nil {
		return "", fmt.Errorf("html-to-markdown conversion: %w", err)
	}

	return cleanMarkdown(md), nil
}

// cleanMarkdown normalizes whitespace: at most one blank line between
// paragraphs, no trailing spaces, no leading/trailing blank lines.
func cleanMarkdown(md string) string {
	md = multiBlankLines.ReplaceAllString(md, "\n\n")

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	md = strings.Join(lines, "\n")

	return strings.TrimSpace(md)
}

func domainFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
