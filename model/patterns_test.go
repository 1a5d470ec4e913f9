package model

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStampWrapsAround(t *testing.T) {
	u := mustUniverse(t, 4, 4)
	u.Stamp(Block, 3, 3)

	want := []int{0, 3, 12, 15}
	if diff := cmp.Diff(want, aliveIndices(u)); diff != "" {
		t.Fatalf("alive cells mismatch (-want +got):\n%s", diff)
	}
}

func TestGliderTravelsAcrossTheEdge(t *testing.T) {
	u := mustUniverse(t, 8, 8)
	u.Stamp(Glider, 6, 6)
	start := u.LiveCells()

	// a glider moves one cell diagonally every four generations
	for i := 0; i < 32; i++ {
		u.Tick()
		if u.LiveCells() != start {
			t.Fatalf("generation %d: expected %d live cells, got %d", u.Generation(), start, u.LiveCells())
		}
	}

	back := mustUniverse(t, 8, 8)
	back.Stamp(Glider, 6, 6)
	if u.Hash() != back.Hash() {
		t.Fatalf("expected glider to return after a full lap:\n%s", u.Render())
	}
}

func TestSeedRandomIsDeterministic(t *testing.T) {
	a := mustUniverse(t, 30, 20)
	b := mustUniverse(t, 30, 20)
	a.SeedRandom(42, 0.3)
	b.SeedRandom(42, 0.3)

	if a.Hash() != b.Hash() {
		t.Fatal("same seed must produce the same grid")
	}
	if a.LiveCells() == 0 {
		t.Fatal("expected some live cells")
	}

	a.SeedRandom(42, 0)
	if a.LiveCells() != 0 {
		t.Fatal("zero density must produce an empty grid")
	}
}

func TestSeedPatterns(t *testing.T) {
	u, err := New(40, 20)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	u.Tick()
	u.SeedPatterns()

	if u.Generation() != 0 {
		t.Fatalf("expected generation reset, got %d", u.Generation())
	}
	// two gliders, two blinkers and a block
	if got := u.LiveCells(); got != 2*5+2*3+4 {
		t.Fatalf("expected 20 live cells, got %d", got)
	}
}

func TestSeedModuloMatchesNew(t *testing.T) {
	fresh, err := New(7, 5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	reseeded, err := New(7, 5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	reseeded.Tick()
	reseeded.SeedModulo()

	if diff := cmp.Diff(fresh.Cells(), reseeded.Cells()); diff != "" {
		t.Fatalf("reseed mismatch (-new +reseeded):\n%s", diff)
	}
}

func TestInjectRandomLife(t *testing.T) {
	u := mustUniverse(t, 10, 10)
	u.InjectRandomLife(rand.New(rand.NewSource(3)), 5)

	if got := u.LiveCells(); got < 1 || got > 5 {
		t.Fatalf("expected between 1 and 5 live cells, got %d", got)
	}
}
