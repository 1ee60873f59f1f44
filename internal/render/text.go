package render

import (
	"strings"

	"github.com/dgallion1/markerstub/internal/doctree"
)

// MarkdownHeading is the first line of marker.md.
const MarkdownHeading = "# Marker Output"

// Markdown renders blocks as a heading followed by one "- [type] text" item per block.
func Markdown(blocks []doctree.Block) string {
	var sb strings.Builder
	sb.WriteString(MarkdownHeading)
	sb.WriteString("\n")
	for _, b := range blocks {
		sb.WriteString("\n- [")
		sb.WriteString(b.Type.String())
		sb.WriteString("] ")
		sb.WriteString(b.Text)
	}
	return strings.TrimSpace(sb.String()) + "\n"
}

// HTML renders blocks as a bare unordered list. Block text is inserted verbatim, without
// escaping, so markup in the source line ends up in the document.
func HTML(blocks []doctree.Block) string {
	var sb strings.Builder
	sb.WriteString("<html><body><ul>")
	for _, b := range blocks {
		sb.WriteString(`<li data-type="`)
		sb.WriteString(b.Type.String())
		sb.WriteString(`" data-id="`)
		sb.WriteString(b.ID)
		sb.WriteString(`">`)
		sb.WriteString(b.Text)
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul></body></html>\n")
	return sb.String()
}

// SummaryLine renders the run summary as one sorted-key JSON line with a trailing newline.
func SummaryLine(s doctree.Summary) ([]byte, error) {
	line, err := Inline(map[string]any{
		"blocks":  s.Blocks,
		"engine":  s.Engine,
		"images":  s.Images,
		"use_llm": s.UseLLM,
		"version": s.Version,
	})
	if err != nil {
		return nil, err
	}
	return append(line, '\n'), nil
}
