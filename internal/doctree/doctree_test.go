package doctree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockType_Names(t *testing.T) {
	assert.Equal(t, "text", TypeText.String())
	assert.Equal(t, "table", TypeTable.String())
	assert.Equal(t, "figure", TypeFigure.String())
	assert.Equal(t, "code", TypeCode.String())
	assert.Equal(t, "BlockType(9)", BlockType(9).String())
}

func TestBlockType_JSON(t *testing.T) {
	out, err := json.Marshal(TypeFigure)
	require.NoError(t, err)
	assert.Equal(t, `"figure"`, string(out))

	var bt BlockType
	require.NoError(t, json.Unmarshal([]byte(`"code"`), &bt))
	assert.Equal(t, TypeCode, bt)

	assert.Error(t, json.Unmarshal([]byte(`"paragraph"`), &bt))
	_, err = json.Marshal(BlockType(-1))
	assert.Error(t, err)
}

func TestIDs(t *testing.T) {
	assert.Equal(t, "b-000", BlockID(0))
	assert.Equal(t, "b-042", BlockID(42))
	assert.Equal(t, "chunk-007", ChunkID(7))
	assert.Equal(t, "chunk-1234", ChunkID(1234))
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(nil, 0)
	assert.Equal(t, Version, doc.Version)
	assert.Equal(t, Engine, doc.Meta.Engine)
	assert.Equal(t, 0, doc.Meta.LineCount)
	assert.NotNil(t, doc.Blocks)

	doc = NewDocument([]Block{{ID: "b-000"}, {ID: "b-001"}}, 1)
	assert.Equal(t, 2, doc.Meta.LineCount)
	assert.Equal(t, 1, doc.Meta.UseLLM)
}

func TestContentHashHex(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", ContentHashHex(nil))
}
