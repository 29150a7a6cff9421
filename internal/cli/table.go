package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders static rows with columns sized to their widest cell.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Empty is shown instead of the table when there are no rows.
	Empty string
}

func NewTable(title string, headers ...string) *Table {
	return &Table{Title: title, Headers: headers}
}

func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

func (t *Table) String() string {
	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(titleStyle.Render(t.Title))
		sb.WriteString("\n")
	}
	if len(t.Rows) == 0 {
		if t.Empty != "" {
			sb.WriteString(mutedStyle.Render(t.Empty))
			sb.WriteString("\n")
		}
		return sb.String()
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	// padding is part of the rendered width
	for i := range widths {
		widths[i] += 2
	}

	sep := mutedStyle.Render("│")
	for i, h := range t.Headers {
		sb.WriteString(headerStyle.Width(widths[i]).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(sep)
		}
	}
	sb.WriteString("\n")
	for i, w := range widths {
		sb.WriteString(mutedStyle.Render(strings.Repeat("─", w)))
		if i < len(widths)-1 {
			sb.WriteString(mutedStyle.Render("┼"))
		}
	}
	sb.WriteString("\n")

	for _, row := range t.Rows {
		for i := range t.Headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			sb.WriteString(cellStyle.Width(widths[i]).Render(cell))
			if i < len(t.Headers)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
