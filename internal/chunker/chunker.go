package chunker

import (
	"strings"

	"github.com/dgallion1/markerstub/internal/doctree"
)

// FromBlocks projects each block onto a chunk, preserving order and index.
// The result is never nil so an empty document still serializes as [].
func FromBlocks(blocks []doctree.Block) []doctree.Chunk {
	chunks := make([]doctree.Chunk, 0, len(blocks))
	for i, b := range blocks {
		chunks = append(chunks, doctree.Chunk{
			ChunkID:       doctree.ChunkID(i),
			Page:          b.Page,
			Type:          b.Type,
			Text:          b.Text,
			ContentSHA256: b.ContentSHA256,
		})
	}
	return chunks
}

// BlockIDFor returns the id of the block a chunk was projected from.
func BlockIDFor(c doctree.Chunk) string {
	return "b-" + strings.TrimPrefix(c.ChunkID, "chunk-")
}
