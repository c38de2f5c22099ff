// Package console prints gojira output: tables, status lines, markdown and JSON.
package console

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gojira/gojira/pkg/render"
)

// Minimal color palette
var (
	DimColor     = lipgloss.Color("#6c6c6c")
	TextColor    = lipgloss.Color("#e0e0e0")
	AccentColor  = lipgloss.Color("#7aa2f7")
	ErrorColor   = lipgloss.Color("#f7768e")
	SuccessColor = lipgloss.Color("#9ece6a")
	KeyColor     = lipgloss.Color("#e0af68")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Foreground(DimColor)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(DimColor).
				Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	InfoStyle = lipgloss.NewStyle().
			Foreground(AccentColor)
)

// cellStyle maps a render style to a colour.
func cellStyle(s render.Style) lipgloss.Style {
	switch s {
	case render.StyleKey:
		return CellStyle.Foreground(KeyColor)
	case render.StyleLow:
		return CellStyle.Foreground(SuccessColor)
	case render.StyleSevere:
		return CellStyle.Foreground(ErrorColor)
	default:
		return CellStyle
	}
}
