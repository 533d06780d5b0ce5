package elements

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Span limits applied to HTML tables, matching what browsers render.
const (
	maxColSpan = 1000
	maxRowSpan = 65534
)

// ErrInvalidCell reports a cell placed outside the table grid.
var ErrInvalidCell = errors.New("elements: invalid table cell")

// Cell is one table cell positioned on the table grid.
type Cell struct {
	Col     int    `json:"x"`
	Row     int    `json:"y"`
	ColSpan int    `json:"w"`
	RowSpan int    `json:"h"`
	Content string `json:"content"`
}

// Validate reports an error matching ErrInvalidCell when the cell has a
// negative coordinate.
func (c Cell) Validate() error {
	if c.Col < 0 || c.Row < 0 {
		return fmt.Errorf("%w: x=%d y=%d", ErrInvalidCell, c.Col, c.Row)
	}
	return nil
}

// Table is a grid of cells.
type Table struct {
	Cells []Cell
}

// NewTable builds a table from cells, defaulting missing spans to 1 and
// ordering cells by row, then column.
func NewTable(cells []Cell) Table {
	out := make([]Cell, len(cells))
	for i, c := range cells {
		if c.ColSpan < 1 {
			c.ColSpan = 1
		}
		if c.RowSpan < 1 {
			c.RowSpan = 1
		}
		out[i] = c
	}
	slices.SortStableFunc(out, func(a, b Cell) int {
		if a.Row != b.Row {
			return cmp.Compare(a.Row, b.Row)
		}
		return cmp.Compare(a.Col, b.Col)
	})
	return Table{Cells: out}
}

// Rows returns the number of grid rows covered by the table.
func (t Table) Rows() int {
	n := 0
	for _, c := range t.Cells {
		n = max(n, c.Row+c.RowSpan)
	}
	return n
}

// Cols returns the number of grid columns covered by the table.
func (t Table) Cols() int {
	n := 0
	for _, c := range t.Cells {
		n = max(n, c.Col+c.ColSpan)
	}
	return n
}

// Text flattens the table to its cell contents in reading order.
func (t Table) Text() string {
	parts := make([]string, 0, len(t.Cells))
	for _, c := range t.Cells {
		if c.Content != "" {
			parts = append(parts, c.Content)
		}
	}
	return strings.Join(parts, " ")
}

// RowTexts returns, per row index, the contents of the cells starting on that row.
func (t Table) RowTexts() []string {
	return t.lineTexts(t.Rows(), func(c Cell) int { return c.Row })
}

// ColumnTexts returns, per column index, the contents of the cells starting in
// that column, top to bottom.
func (t Table) ColumnTexts() []string {
	return t.lineTexts(t.Cols(), func(c Cell) int { return c.Col })
}

func (t Table) lineTexts(n int, index func(Cell) int) []string {
	lines := make([][]string, n)
	for _, c := range t.Cells {
		if c.Content == "" {
			continue
		}
		i := index(c)
		if i < 0 || i >= n {
			continue
		}
		lines[i] = append(lines[i], c.Content)
	}

	out := make([]string, n)
	for i, parts := range lines {
		out[i] = strings.Join(parts, " ")
	}
	return out
}

// Tables extracts every table element. Cell lists are used as given; otherwise
// the HTML rendering in metadata.text_as_html is parsed.
func Tables(els []Element) ([]Table, error) {
	var tables []Table
	for _, el := range els {
		if el.Type != TypeTable {
			continue
		}

		switch {
		case len(el.Cells) > 0:
			for _, c := range el.Cells {
				if err := c.Validate(); err != nil {
					return nil, fmt.Errorf("element %q: %w", el.ElementID, err)
				}
			}
			tables = append(tables, NewTable(el.Cells))
		case el.Metadata.TextAsHTML != "":
			t, err := ParseHTMLTable(el.Metadata.TextAsHTML)
			if err != nil {
				return nil, fmt.Errorf("element %q: %w", el.ElementID, err)
			}
			tables = append(tables, t)
		}
	}
	return tables, nil
}

// LoadTables reads an element list and returns its tables.
func LoadTables(path string) ([]Table, error) {
	els, err := Load(path)
	if err != nil {
		return nil, err
	}

	tables, err := Tables(els)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tables, nil
}

// ParseHTMLTable converts an HTML table into grid cells. Row and column spans
// are honoured: slots covered by an earlier span are skipped. Spans are capped
// at maxColSpan and maxRowSpan, and a row span never reaches past the last row.
func ParseHTMLTable(markup string) (Table, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return Table{}, fmt.Errorf("parse html table: %w", err)
	}

	var rows []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			rows = append(rows, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	type slot struct{ row, col int }
	occupied := make(map[slot]bool)

	var cells []Cell
	for r, tr := range rows {
		col := 0
		for td := tr.FirstChild; td != nil; td = td.NextSibling {
			if td.Type != html.ElementNode || (td.DataAtom != atom.Td && td.DataAtom != atom.Th) {
				continue
			}
			for occupied[slot{r, col}] {
				col++
			}

			rowSpan := min(spanAttr(td, "rowspan", maxRowSpan), len(rows)-r)
			colSpan := spanAttr(td, "colspan", maxColSpan)
			// the current row is passed by col, only the rows below need marking
			for i := 1; i < rowSpan; i++ {
				for j := 0; j < colSpan; j++ {
					occupied[slot{r + i, col + j}] = true
				}
			}

			cells = append(cells, Cell{
				Col:     col,
				Row:     r,
				ColSpan: colSpan,
				RowSpan: rowSpan,
				Content: nodeText(td),
			})
			col += colSpan
		}
	}

	return NewTable(cells), nil
}

func spanAttr(n *html.Node, key string, limit int) int {
	for _, a := range n.Attr {
		if a.Key != key {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(a.Val))
		if err != nil || v < 1 {
			return 1
		}
		return min(v, limit)
	}
	return 1
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
