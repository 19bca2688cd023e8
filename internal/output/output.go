package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds lipgloss styles for human-readable output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Dim     lipgloss.Style
	Title   lipgloss.Style
}

// Printer writes styled lines. Colors are only used on a terminal.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	styles Styles
}

// NewPrinter creates a Printer writing to w. Warnings go to w too until
// WithStderr is called.
func NewPrinter(w io.Writer, isTTY bool) *Printer {
	styles := Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
	}
	if !isTTY {
		plain := lipgloss.NewStyle()
		styles = Styles{Error: plain, Success: plain, Warning: plain, Bold: plain, Dim: plain, Title: plain}
	}
	return &Printer{w: w, errW: w, styles: styles}
}

// WithStderr sends warnings to a separate writer.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// Writer returns the main output writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Title prints a heading line.
func (p *Printer) Title(format string, args ...any) {
	fmt.Fprintln(p.w, p.styles.Title.Render(fmt.Sprintf(format, args...)))
}

// Success prints a line in the success style.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, p.styles.Success.Render(fmt.Sprintf(format, args...)))
}

// Failure prints a line in the error style on the main writer. Use it for
// per-item failures that belong in the run transcript.
func (p *Printer) Failure(format string, args ...any) {
	fmt.Fprintln(p.w, p.styles.Error.Render(fmt.Sprintf(format, args...)))
}

// Heading prints a bold line.
func (p *Printer) Heading(format string, args ...any) {
	fmt.Fprintln(p.w, p.styles.Bold.Render(fmt.Sprintf(format, args...)))
}

// Dim prints a de-emphasized line.
func (p *Printer) Dim(format string, args ...any) {
	fmt.Fprintln(p.w, p.styles.Dim.Render(fmt.Sprintf(format, args...)))
}

// Warn prints "Warning: <message>" to the error writer.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Warning.Render("Warning"), fmt.Sprintf(format, args...))
}

// Println writes a line to the output.
func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.w, args...)
}

// IsTTY checks if a writer is a terminal.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
