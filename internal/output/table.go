package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableStyle defines the style for table output.
type TableStyle struct {
	// Border is the border style.
	Border lipgloss.Border

	// Markdown drops the top and bottom border lines, so the table is
	// valid Markdown when Border is lipgloss.MarkdownBorder.
	Markdown bool

	// BorderColor is the color for borders.
	BorderColor lipgloss.Color

	// HeaderStyle is the style for header cells.
	HeaderStyle lipgloss.Style

	// CellStyle is the style for regular cells.
	CellStyle lipgloss.Style
}

// DefaultTableStyle returns the default table style for terminals.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		Border:      lipgloss.NormalBorder(),
		BorderColor: ColorDimGray,
		HeaderStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		CellStyle:   lipgloss.NewStyle(),
	}
}

// MarkdownTableStyle returns an unstyled style producing a Markdown table.
func MarkdownTableStyle() TableStyle {
	return TableStyle{
		Border:      lipgloss.MarkdownBorder(),
		Markdown:    true,
		HeaderStyle: lipgloss.NewStyle().Padding(0, 1),
		CellStyle:   lipgloss.NewStyle().Padding(0, 1),
	}
}

// Table represents a styled table.
type Table struct {
	headers []string
	rows    [][]string
	style   TableStyle
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		style:   DefaultTableStyle(),
	}
}

// NewMarkdownTable creates a table rendered as Markdown.
func NewMarkdownTable(headers ...string) *Table {
	return NewTable(headers...).SetStyle(MarkdownTableStyle())
}

// Row adds a row to the table.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// SetStyle sets the table style.
func (t *Table) SetStyle(style TableStyle) *Table {
	t.style = style
	return t
}

// String renders the table as a string.
func (t *Table) String() string {
	tbl := table.New().
		Border(t.style.Border).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.style.HeaderStyle
			}
			return t.style.CellStyle
		})
	if t.style.Markdown {
		tbl = tbl.BorderTop(false).BorderBottom(false)
	} else {
		tbl = tbl.BorderStyle(lipgloss.NewStyle().Foreground(t.style.BorderColor))
	}

	for _, row := range t.rows {
		tbl.Row(row...)
	}

	return tbl.String()
}
