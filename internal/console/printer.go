package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorDanger  = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")
	colorBorder  = lipgloss.Color("#4B5563")
)

type styles struct {
	success lipgloss.Style
	warning lipgloss.Style
	danger  lipgloss.Style
	info    lipgloss.Style
	muted   lipgloss.Style
	title   lipgloss.Style
	header  lipgloss.Style
	border  lipgloss.Style
	box     lipgloss.Style
}

// Styles are built from the renderer of the output writer so colors are
// dropped when the output is not a terminal.
func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		success: r.NewStyle().Foreground(colorSuccess).Bold(true),
		warning: r.NewStyle().Foreground(colorWarning).Bold(true),
		danger:  r.NewStyle().Foreground(colorDanger).Bold(true),
		info:    r.NewStyle().Foreground(colorInfo),
		muted:   r.NewStyle().Foreground(colorMuted),
		title:   r.NewStyle().Foreground(colorPrimary).Bold(true),
		header:  r.NewStyle().Foreground(colorPrimary).Bold(true).Padding(0, 1),
		border:  r.NewStyle().Foreground(colorBorder),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDanger).
			Padding(0, 1),
	}
}

// Printer writes styled lines and tables to the console.
type Printer struct {
	out    io.Writer
	styles styles
}

// NewPrinter creates a Printer bound to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

// Println prints an unstyled line.
func (p *Printer) Println(a ...interface{}) {
	_, _ = fmt.Fprintln(p.out, a...)
}

func (p *Printer) Title(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(p.out, p.styles.title.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Success(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(p.out, p.styles.success.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Warning(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(p.out, p.styles.warning.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Error(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(p.out, p.styles.danger.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Info(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(p.out, p.styles.info.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Muted(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(p.out, p.styles.muted.Render(fmt.Sprintf(format, args...)))
}

// Table renders rows under headers with a rounded border.
func (p *Printer) Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.styles.border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.styles.header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)
	_, _ = fmt.Fprintln(p.out, t.String())
}

// Box renders lines inside a red bordered box.
func (p *Printer) Box(lines ...string) {
	_, _ = fmt.Fprintln(p.out, p.styles.box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
}
