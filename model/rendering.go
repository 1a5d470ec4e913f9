package model

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
)

const (
	DeadGlyph  = '◻'
	AliveGlyph = '◼'

	clearCmd = "clear"
)

// Glyph returns the text symbol for a cell
func (c Cell) Glyph() rune {
	if c == Alive {
		return AliveGlyph
	}
	return DeadGlyph
}

// Render returns the universe as text, one line per row and one glyph per cell
func (u *Universe) Render() string {
	var b strings.Builder
	// each glyph is three bytes of UTF-8 plus a newline per row
	b.Grow(len(u.cells)*3 + int(u.height))
	for row := uint32(0); row < u.height; row++ {
		start := u.index(row, 0)
		for _, c := range u.cells[start : start+int(u.width)] {
			b.WriteRune(c.Glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Lines returns the rendered rows without line terminators
func (u *Universe) Lines() []string {
	lines := make([]string, 0, u.height)
	for row := uint32(0); row < u.height; row++ {
		start := u.index(row, 0)
		var b strings.Builder
		for _, c := range u.cells[start : start+int(u.width)] {
			b.WriteRune(c.Glyph())
		}
		lines = append(lines, b.String())
	}
	return lines
}

func (u *Universe) String() string {
	return u.Render()
}

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct {
	out io.Writer
	au  aurora.Aurora
}

// NewTerminalRenderer creates a renderer writing to out, coloring live cells when colors is set
func NewTerminalRenderer(out io.Writer, colors bool) *TerminalRenderer {
	if out == nil {
		out = os.Stdout
	}
	return &TerminalRenderer{out: out, au: aurora.NewAurora(colors)}
}

// Display renders a frame to the terminal
func (r *TerminalRenderer) Display(frame string) error {
	var b strings.Builder
	for _, g := range frame {
		if g == AliveGlyph {
			b.WriteString(r.au.Green(string(g)).String())
		} else {
			b.WriteRune(g)
		}
	}
	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return errors.Wrap(err, "[Display] failed to write frame")
	}
	return nil
}

// Status writes one line of status text
func (r *TerminalRenderer) Status(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.out, format+"\n", args...); err != nil {
		return errors.Wrap(err, "[Status] failed to write status")
	}
	return nil
}

// Highlight colors text for status output
func (r *TerminalRenderer) Highlight(text string) string {
	return r.au.Cyan(text).String()
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = r.out
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "[Clear] error clearing terminal")
	}
	return nil
}
