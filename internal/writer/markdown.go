package writer

import (
	"fmt"
	"strings"
)

// Markdown envelope: YAML frontmatter plus heading structure. No
// timestamps go into the frontmatter so identical runs produce identical
// bytes.

func markdownSingle(d Document) string {
	var b strings.Builder
	b.WriteString(frontmatter(d.ChapterTitle, d.ArcTitle, d.SourceURL))
	fmt.Fprintf(&b, "# %s\n\n", d.ChapterTitle)
	b.WriteString(d.Body)
	b.WriteString("\n")
	return b.String()
}

func markdownJoined(arcTitle string, docs []Document) string {
	var b strings.Builder
	b.WriteString(frontmatter(arcTitle, "", ""))
	fmt.Fprintf(&b, "# %s\n\n", arcTitle)

	for _, d := range docs {
		fmt.Fprintf(&b, "## %s\n\n", d.ChapterTitle)
		fmt.Fprintf(&b, "*Source: %s*\n\n", d.SourceURL)
		b.WriteString(d.Body)
		b.WriteString("\n\n---\n\n")
	}

	out := b.String()
	return strings.TrimSuffix(out, "---\n\n")
}

func frontmatter(title, arc, sourceURL string) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", escapeYAML(title))
	if arc != "" {
		fmt.Fprintf(&b, "arc: %s\n", escapeYAML(arc))
	}
	if sourceURL != "" {
		fmt.Fprintf(&b, "source_url: %s\n", sourceURL)
	}
	b.WriteString("---\n\n")
	return b.String()
}

// escapeYAML quotes a scalar when it contains characters that could break
// YAML parsing.
func escapeYAML(s string) string {
	if s == "" {
		return `""`
	}
	needsQuoting := strings.ContainsAny(s, `:#"'{}[]|>&*!%@`+"`") ||
		strings.HasPrefix(s, " ") ||
		strings.HasPrefix(s, "-")
	if needsQuoting {
		escaped := strings.ReplaceAll(s, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)
		return `"` + escaped + `"`
	}
	return s
}
