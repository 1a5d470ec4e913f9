package view

import (
	"strings"
	"testing"

	"github.com/logrusorgru/aurora"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

var plain = aurora.NewAurora(false)

func TestFieldTextFits(t *testing.T) {
	lines := []string{"◼◻", "◻◼"}

	got := fieldText(lines, 10, 10, "#", ".", plain)
	if got != "#.\n.#" {
		t.Fatalf("got %q", got)
	}
}

func TestFieldTextCrops(t *testing.T) {
	lines := []string{"◼◼◼◼", "◻◻◻◻", "◼◻◼◻", "◻◼◻◼"}

	got := fieldText(lines, 2, 3, "#", ".", plain)
	rows := strings.Split(got, "\n")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %q", len(rows), got)
	}
	if rows[0] != "##" || rows[1] != ".." {
		t.Fatalf("unexpected rows %q", rows)
	}
	if !strings.Contains(rows[2], "larger than the viewing area") {
		t.Fatalf("expected crop warning, got %q", rows[2])
	}
}

func TestStatusLines(t *testing.T) {
	u, err := model.New(4, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	u.Tick()

	lines := statusLines(u, true, plain)
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"Generation: 1", "Live cells: ", "Mode: running"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("status %q missing %q", joined, want)
		}
	}

	u.Clear()
	joined = strings.Join(statusLines(u, false, plain), "\n")
	if !strings.Contains(joined, "Mode: extinct") {
		t.Fatalf("expected extinct mode, got %q", joined)
	}
}

func TestConfigurationLines(t *testing.T) {
	cfg := utils.DefaultConfig()
	joined := strings.Join(configurationLines(cfg, plain), "\n")

	if !strings.Contains(joined, "Dimension: 64 x 32") || !strings.Contains(joined, "Seed: modulo") {
		t.Fatalf("unexpected configuration %q", joined)
	}
}

func TestHelpText(t *testing.T) {
	k := []keyBinding{{name: "N", descr: "Next step"}, {name: "R", descr: "Run"}}
	if got := helpText(k, plain); got != "KEYBINDINGS: N: Next step, R: Run" {
		t.Fatalf("got %q", got)
	}
}
