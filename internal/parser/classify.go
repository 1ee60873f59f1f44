package parser

import (
	"strings"

	"github.com/dgallion1/markerstub/internal/doctree"
)

// Classify assigns a block type to a stripped line. The first matching rule wins.
func Classify(line string) doctree.BlockType {
	switch {
	case strings.ContainsAny(line, "|\t") || strings.Contains(strings.ToLower(line), "table"):
		return doctree.TypeTable
	case strings.HasPrefix(line, "!["):
		return doctree.TypeFigure
	case strings.HasPrefix(line, "```"):
		return doctree.TypeCode
	default:
		return doctree.TypeText
	}
}
