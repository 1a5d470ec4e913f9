package model

import "math/rand"

// Pattern is a set of live cells given as row/column offsets from an origin
type Pattern struct {
	Name  string
	Cells [][2]uint32
}

var (
	Glider = Pattern{
		Name:  "glider",
		Cells: [][2]uint32{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
	}
	Blinker = Pattern{
		Name:  "blinker",
		Cells: [][2]uint32{{0, 0}, {0, 1}, {0, 2}},
	}
	Block = Pattern{
		Name:  "block",
		Cells: [][2]uint32{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	}
)

// Stamp sets the pattern's cells alive with its origin at row, col, wrapping around the edges
func (u *Universe) Stamp(p Pattern, row, col uint32) {
	for _, off := range p.Cells {
		r := (row%u.height + off[0]%u.height) % u.height
		c := (col%u.width + off[1]%u.width) % u.width
		u.cells[u.index(r, c)] = Alive
	}
}

// SeedPatterns clears the universe and places gliders and blinkers scaled to its size
func (u *Universe) SeedPatterns() {
	u.Clear()

	u.Stamp(Glider, 1, 1)
	if u.width >= 20 && u.height >= 15 {
		u.Stamp(Glider, 1, u.width-8)
	}

	u.Stamp(Blinker, u.height/4, u.width/4)
	if u.width >= 30 {
		u.Stamp(Blinker, 3*u.height/4, 3*u.width/4)
	}
	if u.width >= 10 && u.height >= 10 {
		u.Stamp(Block, u.height-4, 2)
	}
}

// SeedRandom clears the universe and fills it with live cells at the given density.
// The same seed always produces the same grid.
func (u *Universe) SeedRandom(seed int64, density float64) {
	u.Clear()

	rng := rand.New(rand.NewSource(seed))
	for i := range u.cells {
		if rng.Float64() < density {
			u.cells[i] = Alive
		}
	}
}

// SeedModulo resets the universe to the construction pattern
func (u *Universe) SeedModulo() {
	u.Clear()

	for i := range u.cells {
		if i%2 == 0 || i%7 == 0 {
			u.cells[i] = Alive
		}
	}
}

// InjectRandomLife adds some random cells to break stagnation
func (u *Universe) InjectRandomLife(rng *rand.Rand, count int) {
	for i := 0; i < count; i++ {
		u.cells[rng.Intn(len(u.cells))] = Alive
	}
}
