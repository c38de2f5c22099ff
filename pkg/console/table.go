package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gojira/gojira/pkg/render"
)

// Table draws rows under headers. Placeholder rows are printed beneath the
// table since they span every column.
func Table(headers []string, rows []render.Row) string {
	var (
		data         [][]string
		styles       [][]render.Style
		placeholders []string
	)
	for _, r := range rows {
		if r.IsPlaceholder() {
			placeholders = append(placeholders, r[0].Text)
			continue
		}
		texts := make([]string, len(headers))
		rowStyles := make([]render.Style, len(headers))
		for i, c := range r {
			if i >= len(headers) {
				break
			}
			texts[i] = c.Text
			rowStyles[i] = c.Style
		}
		data = append(data, texts)
		styles = append(styles, rowStyles)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(BorderStyle).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			if row < 0 || row >= len(styles) || col >= len(styles[row]) {
				return CellStyle
			}
			return cellStyle(styles[row][col])
		})

	var sb strings.Builder
	sb.WriteString(t.Render())
	for _, p := range placeholders {
		sb.WriteString("\n")
		sb.WriteString(PlaceholderStyle.Render(" " + p))
	}
	return sb.String()
}
