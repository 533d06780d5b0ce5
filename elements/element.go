// Package elements reads partitioned document output: a JSON list of typed
// elements, each carrying text and metadata.
package elements

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Element types with special handling.
const (
	TypeTable = "Table"
)

// Metadata holds the element metadata fields the scorers read.
type Metadata struct {
	Filename      string `json:"filename,omitempty"`
	FileDirectory string `json:"file_directory,omitempty"`
	PageNumber    *int   `json:"page_number,omitempty"`
	CategoryDepth *int   `json:"category_depth,omitempty"`
	ParentID      string `json:"parent_id,omitempty"`
	TextAsHTML    string `json:"text_as_html,omitempty"`
}

// Element is a single extracted document element.
//
// Gold table-structure files reuse the element layout but store a cell list in
// "text"; those cells land in Cells and Text stays empty.
type Element struct {
	Type      string   `json:"type"`
	ElementID string   `json:"element_id,omitempty"`
	Text      string   `json:"text"`
	Cells     []Cell   `json:"-"`
	Metadata  Metadata `json:"metadata"`
}

// UnmarshalJSON accepts "text" either as a string or as a list of cells.
func (e *Element) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type      string          `json:"type"`
		ElementID string          `json:"element_id"`
		Text      json.RawMessage `json:"text"`
		Metadata  Metadata        `json:"metadata"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = Element{
		Type:      raw.Type,
		ElementID: raw.ElementID,
		Metadata:  raw.Metadata,
	}

	text := strings.TrimSpace(string(raw.Text))
	switch {
	case text == "" || text == "null":
	case strings.HasPrefix(text, "["):
		if err := json.Unmarshal(raw.Text, &e.Cells); err != nil {
			return fmt.Errorf("element %q: decoding cells: %w", raw.ElementID, err)
		}
	default:
		if err := json.Unmarshal(raw.Text, &e.Text); err != nil {
			return fmt.Errorf("element %q: decoding text: %w", raw.ElementID, err)
		}
	}

	return nil
}

// Parse decodes a JSON element list.
func Parse(data []byte) ([]Element, error) {
	var els []Element
	if err := json.Unmarshal(data, &els); err != nil {
		return nil, fmt.Errorf("parsing elements: %w", err)
	}
	return els, nil
}

// Load reads and decodes the element list stored at path.
func Load(path string) ([]Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	els, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return els, nil
}

// Text renders elements as plain text: non-empty element texts separated by a
// blank line.
func Text(els []Element) string {
	parts := make([]string, 0, len(els))
	for _, el := range els {
		if strings.TrimSpace(el.Text) == "" {
			continue
		}
		parts = append(parts, el.Text)
	}
	return strings.Join(parts, "\n\n")
}
