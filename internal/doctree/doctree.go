package doctree

import (
	"encoding/json"
	"fmt"
)

const (
	// Version is the artifact schema version written into marker.json and the run summary.
	Version = "marker-stub-1.0.0"
	// Engine names the backend that produced the artifacts.
	Engine = "marker-stub"
)

// BBox is the placeholder bounding box carried by every block.
var BBox = [4]int{0, 0, 100, 20}

// BlockType is the category assigned to a block by the line classifier.
type BlockType int

const (
	TypeText BlockType = iota
	TypeTable
	TypeFigure
	TypeCode
)

var blockTypeNames = [...]string{
	TypeText:   "text",
	TypeTable:  "table",
	TypeFigure: "figure",
	TypeCode:   "code",
}

func (t BlockType) String() string {
	if t < 0 || int(t) >= len(blockTypeNames) {
		return fmt.Sprintf("BlockType(%d)", int(t))
	}
	return blockTypeNames[t]
}

// ParseBlockType maps a type name back to its BlockType.
func ParseBlockType(s string) (BlockType, error) {
	for i, name := range blockTypeNames {
		if name == s {
			return BlockType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown block type %q", s)
}

func (t BlockType) MarshalJSON() ([]byte, error) {
	if t < 0 || int(t) >= len(blockTypeNames) {
		return nil, fmt.Errorf("marshal block type: invalid value %d", int(t))
	}
	return json.Marshal(blockTypeNames[t])
}

func (t *BlockType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseBlockType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Block is one classified non-blank input line. Field order is the marker.json key order.
type Block struct {
	ID            string    `json:"id"`
	Page          int       `json:"page"`
	Type          BlockType `json:"type"`
	Text          string    `json:"text"`
	BBox          [4]int    `json:"bbox"`
	ContentSHA256 string    `json:"content_sha256"`
}

// Chunk is the retrieval-facing projection of a Block.
type Chunk struct {
	ChunkID       string    `json:"chunk_id"`
	Page          int       `json:"page"`
	Type          BlockType `json:"type"`
	Text          string    `json:"text"`
	ContentSHA256 string    `json:"content_sha256"`
}

// Meta is the metadata section of marker.json.
type Meta struct {
	Engine    string `json:"engine"`
	UseLLM    int    `json:"use_llm"`
	LineCount int    `json:"line_count"`
}

// Document is the marker.json envelope.
type Document struct {
	Version string  `json:"version"`
	Meta    Meta    `json:"meta"`
	Blocks  []Block `json:"blocks"`
}

// NewDocument wraps blocks in the marker.json envelope.
func NewDocument(blocks []Block, useLLM int) *Document {
	if blocks == nil {
		blocks = []Block{}
	}
	return &Document{
		Version: Version,
		Meta: Meta{
			Engine:    Engine,
			UseLLM:    useLLM,
			LineCount: len(blocks),
		},
		Blocks: blocks,
	}
}

// Summary is the one-line run report printed to stdout.
type Summary struct {
	Blocks  int    `json:"blocks"`
	Engine  string `json:"engine"`
	Images  int    `json:"images"`
	UseLLM  int    `json:"use_llm"`
	Version string `json:"version"`
}

// BlockID formats the id of the block at index i.
func BlockID(i int) string {
	return fmt.Sprintf("b-%03d", i)
}

// ChunkID formats the id of the chunk at index i.
func ChunkID(i int) string {
	return fmt.Sprintf("chunk-%03d", i)
}
