package panel

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

const (
	defaultViewWidth = 80
	labelColumn      = 16
)

// TerminalView draws a Panel into the controlling terminal. It redraws only when the panel's
// version has moved since the last Refresh. When the output is not a terminal the view logs
// the bindings whose values changed instead of drawing.
type TerminalView struct {
	panel  Panel
	out    io.Writer
	fd     int
	isTerm bool
	logger *slog.Logger

	drawn      bool
	lastVer    uint64
	lastValues map[*Binding]string
}

// NewTerminalView creates a view of p writing to out.
//
// Parameters:
//   - p: the panel to draw
//   - out: the output file, usually os.Stdout
//   - logger: the logger used when out is not a terminal; nil means slog.Default()
//
// Returns:
//   - *TerminalView: the view
func NewTerminalView(p Panel, out *os.File, logger *slog.Logger) *TerminalView {
	fd := int(out.Fd())
	return newTerminalView(p, out, fd, term.IsTerminal(fd), logger)
}

func newTerminalView(p Panel, out io.Writer, fd int, isTerm bool, logger *slog.Logger) *TerminalView {
	if logger == nil {
		logger = slog.Default()
	}
	v := &TerminalView{
		panel:      p,
		out:        out,
		fd:         fd,
		isTerm:     isTerm,
		logger:     logger,
		lastValues: make(map[*Binding]string),
	}
	if !isTerm {
		v.snapshot()
	}
	return v
}

// Interactive reports whether the view draws into a terminal.
func (v *TerminalView) Interactive() bool {
	return v.isTerm
}

// Refresh redraws the panel if it changed since the last call.
//
// Returns:
//   - bool: true if anything was drawn or logged
func (v *TerminalView) Refresh() bool {
	ver := v.panel.Version()
	if v.drawn && ver == v.lastVer {
		return false
	}
	v.drawn = true
	v.lastVer = ver

	if !v.isTerm {
		return v.logChanges()
	}
	frame := ansi.HideCursor + ansi.EraseEntireScreen + ansi.CursorHomePosition +
		strings.ReplaceAll(v.Render(v.width()), "\n", "\r\n")
	if _, err := io.WriteString(v.out, frame); err != nil {
		v.logger.Debug("panel redraw failed", "error", err)
		return false
	}
	return true
}

// Close restores the terminal cursor.
func (v *TerminalView) Close() {
	if v.isTerm {
		_, _ = io.WriteString(v.out, ansi.ShowCursor)
	}
}

// Render lays the panel out as plain text lines no wider than width cells.
//
// Parameters:
//   - width: the maximum line width in terminal cells
//
// Returns:
//   - string: the rendered panel
func (v *TerminalView) Render(width int) string {
	if width <= 0 {
		width = defaultViewWidth
	}
	selected := v.panel.Selected()

	var sb strings.Builder
	line := func(s string) {
		sb.WriteString(ansi.Truncate(s, width, "…"))
		sb.WriteByte('\n')
	}
	line(v.panel.Title())
	for _, f := range v.panel.Folders() {
		marker := "▸"
		if f.Open() {
			marker = "▾"
		}
		line(marker + " " + f.Name())
		if !f.Open() {
			continue
		}
		for _, b := range f.Bindings() {
			cursor := " "
			if b == selected {
				cursor = ">"
			}
			line(fmt.Sprintf("  %s %s %s%s", cursor, pad(b.Label(), labelColumn), b.String(), rangeHint(b)))
		}
	}
	line("")
	line("tab/shift+tab select · ←/→ adjust · enter toggle · backspace reset · f fold")
	return sb.String()
}

func (v *TerminalView) width() int {
	w, _, err := term.GetSize(v.fd)
	if err != nil || w <= 0 {
		return defaultViewWidth
	}
	return w
}

func (v *TerminalView) snapshot() {
	for _, f := range v.panel.Folders() {
		for _, b := range f.Bindings() {
			v.lastValues[b] = b.String()
		}
	}
}

func (v *TerminalView) logChanges() bool {
	changed := false
	for _, f := range v.panel.Folders() {
		for _, b := range f.Bindings() {
			s := b.String()
			if prev, ok := v.lastValues[b]; ok && prev == s {
				continue
			}
			v.lastValues[b] = s
			v.logger.Info("panel value", "folder", f.Name(), "field", b.Label(), "value", s)
			changed = true
		}
	}
	return changed
}

func pad(s string, n int) string {
	if w := ansi.StringWidth(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

func rangeHint(b *Binding) string {
	lo, hi, ok := b.Range()
	if !ok || b.Kind() == KindBool {
		return ""
	}
	return fmt.Sprintf("  [%g, %g]", lo, hi)
}
