// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/keyworker/client"
	"github.com/toeirei/keyworker/internal/i18n"
)

// Styles used for status lines. Colors are dropped automatically when the
// writer is not a terminal.
type Styles struct {
	Success  lipgloss.Style
	Info     lipgloss.Style
	Conflict lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
}

func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Success:  r.NewStyle().Foreground(lipgloss.Color("40")).Bold(true),
		Info:     r.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		Conflict: r.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Error:    r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Muted:    r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Printer writes command feedback to a single writer.
type Printer struct {
	w      io.Writer
	styles Styles
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, styles: DefaultStyles(lipgloss.NewRenderer(w))}
}

// Label returns the localized label for an outcome.
func Label(o client.Outcome) string {
	switch o {
	case client.OutcomeSuccess:
		return i18n.T("status.success")
	case client.OutcomeInfo:
		return i18n.T("status.info")
	case client.OutcomeConflict:
		return i18n.T("status.conflict")
	default:
		return i18n.T("status.error")
	}
}

func (p *Printer) style(o client.Outcome) lipgloss.Style {
	switch o {
	case client.OutcomeSuccess:
		return p.styles.Success
	case client.OutcomeInfo:
		return p.styles.Info
	case client.OutcomeConflict:
		return p.styles.Conflict
	default:
		return p.styles.Error
	}
}

// StatusLine prints "<Label> (<code>):" in the outcome's color.
func (p *Printer) StatusLine(resp *client.Response) {
	o := resp.Outcome()
	line := fmt.Sprintf("%s (%d):", Label(o), resp.StatusCode)
	fmt.Fprintln(p.w, p.style(o).Render(line))
}

// Response prints the status line followed by the body exactly as received.
func (p *Printer) Response(resp *client.Response) {
	p.StatusLine(resp)
	if len(resp.Body) > 0 {
		fmt.Fprintln(p.w, resp.Text())
	}
}

// NetworkError reports a failed round trip.
func (p *Printer) NetworkError(err error) {
	fmt.Fprintln(p.w, p.styles.Error.Render(i18n.T("cli.network_error", err)))
}

// Println writes an unstyled line.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Successf writes a formatted line in the success color.
func (p *Printer) Successf(format string, a ...any) {
	fmt.Fprintln(p.w, p.styles.Success.Render(fmt.Sprintf(format, a...)))
}

// Errorf writes a formatted line in the error color.
func (p *Printer) Errorf(format string, a ...any) {
	fmt.Fprintln(p.w, p.styles.Error.Render(fmt.Sprintf(format, a...)))
}

// Mutedf writes a formatted line in a dim color.
func (p *Printer) Mutedf(format string, a ...any) {
	fmt.Fprintln(p.w, p.styles.Muted.Render(fmt.Sprintf(format, a...)))
}
