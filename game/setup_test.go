package game

import (
	"io"
	"testing"

	"github.com/sheikhrachel/go-life/utils"
)

func TestNewUniverseSeeds(t *testing.T) {
	logger := utils.NewLogger("error", "text", io.Discard)

	tests := []struct {
		seed      string
		wantEmpty bool
	}{
		{utils.SeedModulo, false},
		{utils.SeedEmpty, true},
		{utils.SeedPatterns, false},
		{utils.SeedRandom, false},
	}
	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			cfg := utils.DefaultConfig()
			cfg.Seed = tt.seed
			cfg.RandomDensity = 0.5

			u, err := NewUniverse(cfg, logger)
			if err != nil {
				t.Fatalf("NewUniverse: %v", err)
			}
			if u.GetWidth() != cfg.Width || u.GetHeight() != cfg.Height {
				t.Fatalf("expected %dx%d, got %dx%d", cfg.Width, cfg.Height, u.GetWidth(), u.GetHeight())
			}
			if empty := u.LiveCells() == 0; empty != tt.wantEmpty {
				t.Fatalf("expected empty=%v, got %d live cells", tt.wantEmpty, u.LiveCells())
			}
		})
	}
}

func TestNewUniverseRejectsZeroDimensions(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.Height = 0

	if _, err := NewUniverse(cfg, utils.NewLogger("error", "text", io.Discard)); err == nil {
		t.Fatal("expected an error for a zero height")
	}
}
