package note

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/docforge/pkg/widget"
)

// Table is tabular data with an optional caption and label.
type Table struct {
	Columns []string
	Rows    [][]string
	Caption string
	Label   string
}

// NewTable builds a Table from rows of arbitrary values, formatted with %v.
func NewTable(columns []string, rows [][]any, caption string, label ...string) Table {
	t := Table{Columns: columns, Caption: caption}
	if len(label) > 0 {
		t.Label = label[0]
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatCell(v)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// TableFromRecords builds a Table from one map per row. Columns default to
// the sorted union of the record keys; missing values render empty.
func TableFromRecords(records []map[string]any, caption string, columns ...string) Table {
	if len(columns) == 0 {
		seen := map[string]bool{}
		for _, rec := range records {
			for k := range rec {
				if !seen[k] {
					seen[k] = true
					columns = append(columns, k)
				}
			}
		}
		sort.Strings(columns)
	}

	t := Table{Columns: columns, Caption: caption}
	for _, rec := range records {
		cells := make([]string, len(columns))
		for i, col := range columns {
			if v, ok := rec[col]; ok {
				cells[i] = formatCell(v)
			}
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// WithLabel returns a copy of t labelled for cross-references.
func (t Table) WithLabel(label string) Table {
	t.Label = label
	return t
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}

// width is the number of columns the table spans.
func (t Table) width() int {
	w := len(t.Columns)
	for _, row := range t.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// RenderMarkdown renders a pipe table followed by a pandoc caption line.
// The caption line is omitted when there is neither caption nor label.
func (t Table) RenderMarkdown(RenderContext) (string, error) {
	width := t.width()
	var b strings.Builder

	writeRow(&b, padRow(t.Columns, width))
	sep := make([]string, width)
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&b, sep)
	for _, row := range t.Rows {
		writeRow(&b, padRow(row, width))
	}

	out := strings.TrimRight(b.String(), "\n")
	if caption := t.captionLine(); caption != "" {
		out += "\n\n" + caption
	}
	return out, nil
}

func (t Table) captionLine() string {
	parts := make([]string, 0, 2)
	if t.Caption != "" {
		parts = append(parts, t.Caption)
	}
	if t.Label != "" {
		parts = append(parts, labelSuffix(t.Label))
	}
	if len(parts) == 0 {
		return ""
	}
	return ": " + strings.Join(parts, " ")
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, cell := range cells {
		b.WriteString(" ")
		b.WriteString(escapeCell(cell))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

// escapeCell keeps a cell on one line and its pipes literal.
func escapeCell(cell string) string {
	cell = strings.ReplaceAll(cell, "|", `\|`)
	cell = strings.ReplaceAll(cell, "\r\n", " ")
	return strings.ReplaceAll(cell, "\n", " ")
}

func (t Table) RenderWidget(host widget.Host) error {
	width := t.width()
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = padRow(row, width)
	}
	return host.Table(padRow(t.Columns, width), rows, t.Caption)
}
