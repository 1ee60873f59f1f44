package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/markerstub/internal/doctree"
)

var _ Parser = (*TextParser)(nil)

// TextParser treats every non-blank line of a plain text file as one block on its own page.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader) ([]doctree.Block, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	if !utf8.Valid(src) {
		return nil, ErrInvalidUTF8
	}

	lines := NonBlankLines(string(src))
	blocks := make([]doctree.Block, 0, len(lines))
	for i, line := range lines {
		blocks = append(blocks, doctree.Block{
			ID:            doctree.BlockID(i),
			Page:          i + 1,
			Type:          Classify(line),
			Text:          line,
			BBox:          doctree.BBox,
			ContentSHA256: doctree.ContentHashHex([]byte(line)),
		})
	}
	return blocks, nil
}

// NonBlankLines splits src into lines, strips each one and drops those left empty.
func NonBlankLines(src string) []string {
	var out []string
	for _, line := range SplitLines(src) {
		line = strings.TrimFunc(line, isSpace)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// SplitLines breaks src on every line boundary, treating "\r\n" as one boundary.
// A trailing boundary does not produce an empty final line.
func SplitLines(src string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		if !isLineBoundary(r) {
			i += size
			continue
		}
		lines = append(lines, src[start:i])
		i += size
		if r == '\r' && i < len(src) && src[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(src) {
		lines = append(lines, src[start:])
	}
	return lines
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// isSpace extends unicode.IsSpace with the ASCII separator controls, which also count as
// whitespace when stripping.
func isSpace(r rune) bool {
	if r >= '\x1c' && r <= '\x1f' {
		return true
	}
	return unicode.IsSpace(r)
}

// ParseBytes is a convenience wrapper for in-memory sources.
func (p *TextParser) ParseBytes(src []byte) ([]doctree.Block, error) {
	return p.Parse(bytes.NewReader(src))
}
