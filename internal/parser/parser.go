package parser

import (
	"errors"
	"io"

	"github.com/dgallion1/markerstub/internal/doctree"
)

// ErrInvalidUTF8 is returned when the input is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("input is not valid utf-8")

// Parser converts raw document bytes into an ordered block sequence.
type Parser interface {
	Parse(r io.Reader) ([]doctree.Block, error)
}
