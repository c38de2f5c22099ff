package console

import (
	"fmt"
	"io"

	"github.com/gojira/gojira/pkg/render"
)

// Printer writes styled output to a stream.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter writes to w. Color controls JSON highlighting; lipgloss
// detects terminal capabilities on its own.
func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

func (p *Printer) Writer() io.Writer {
	return p.w
}

func (p *Printer) Println(s string) {
	fmt.Fprintln(p.w, s)
}

func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.w, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.w, InfoStyle.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Table(headers []string, rows []render.Row) {
	fmt.Fprintln(p.w, Table(headers, rows))
}

func (p *Printer) Markdown(md string) {
	fmt.Fprintln(p.w, Markdown(md))
}

func (p *Printer) JSON(raw []byte) {
	fmt.Fprintln(p.w, JSON(raw, p.color))
}
