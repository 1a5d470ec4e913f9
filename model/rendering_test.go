package model

import (
	"bytes"
	"strings"
	"testing"
)

func TestCellGlyph(t *testing.T) {
	if Alive.Glyph() != '◼' || Dead.Glyph() != '◻' {
		t.Fatalf("unexpected glyphs %q %q", Alive.Glyph(), Dead.Glyph())
	}
}

func TestTerminalRendererDisplayWithoutColors(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, false)

	u, err := New(4, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.Display(u.Render()); err != nil {
		t.Fatalf("Display: %v", err)
	}
	if out.String() != u.Render() {
		t.Fatalf("expected plain frame, got:\n%s", out.String())
	}
}

func TestTerminalRendererDisplayWithColors(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, true)

	if err := r.Display("◼◻\n"); err != nil {
		t.Fatalf("Display: %v", err)
	}
	if !strings.Contains(out.String(), "\x1b[") {
		t.Fatalf("expected ANSI escape codes, got %q", out.String())
	}
	if !strings.Contains(out.String(), "◻") {
		t.Fatalf("expected dead glyph to be written, got %q", out.String())
	}
}

func TestTerminalRendererStatus(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, false)

	if err := r.Status("Gen: %d | %s", 3, r.Highlight("Active")); err != nil {
		t.Fatalf("Status: %v", err)
	}
	if got := out.String(); got != "Gen: 3 | Active\n" {
		t.Fatalf("got %q", got)
	}
}
