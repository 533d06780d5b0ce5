package elements

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`[
  {"type": "Title", "element_id": "a1", "text": "Quarterly Report", "metadata": {"category_depth": 0, "page_number": 1}},
  {"type": "NarrativeText", "element_id": "a2", "text": "Revenue grew.", "metadata": {"parent_id": "a1"}},
  {"type": "Table", "element_id": "a3", "text": [{"x": 0, "y": 0, "w": 1, "h": 1, "content": "Q1"}]}
]`)

	els, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, els, 3)

	assert.Equal(t, "Title", els[0].Type)
	assert.Equal(t, "Quarterly Report", els[0].Text)
	require.NotNil(t, els[0].Metadata.CategoryDepth)
	assert.Equal(t, 0, *els[0].Metadata.CategoryDepth)
	assert.Nil(t, els[1].Metadata.CategoryDepth)
	assert.Equal(t, "a1", els[1].Metadata.ParentID)

	assert.Empty(t, els[2].Text)
	require.Len(t, els[2].Cells, 1)
	assert.Equal(t, "Q1", els[2].Cells[0].Content)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json`},
		{"object instead of list", `{"type": "Title"}`},
		{"text of wrong type", `[{"type": "Title", "text": 42}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"type": "Title", "text": "Hello"}]`), 0o644))

	els, err := Load(path)
	require.NoError(t, err)
	require.Len(t, els, 1)
	assert.Equal(t, "Hello", els[0].Text)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestText(t *testing.T) {
	els := []Element{
		{Type: "Title", Text: "Heading"},
		{Type: "Image", Text: "  "},
		{Type: "NarrativeText", Text: "Body text."},
	}

	assert.Equal(t, "Heading\n\nBody text.", Text(els))
	assert.Empty(t, Text(nil))
}
