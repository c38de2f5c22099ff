package console

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/tidwall/pretty"
)

// Markdown renders md for the terminal, returning md unchanged on failure.
func Markdown(md string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}

	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// JSON indents raw JSON and optionally colorizes it.
func JSON(raw []byte, color bool) string {
	out := pretty.Pretty(raw)
	if color {
		out = pretty.Color(out, nil)
	}
	return strings.TrimRight(string(out), "\n")
}
