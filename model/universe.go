package model

import (
	"crypto/md5"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/rules"
)

var (
	// ErrInvalidDimensions is returned when a universe is constructed with a zero width or height
	ErrInvalidDimensions = errors.New("universe dimensions must be positive")
	// ErrCellCountMismatch is returned when an explicit cell buffer does not match width*height
	ErrCellCountMismatch = errors.New("cell count does not match universe dimensions")
)

// Cell is the state of one grid position, stored in a single byte
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

// TickReport counts what happened to the cells during the most recent tick
type TickReport struct {
	Births          int
	Survivals       int
	Underpopulation int
	Overpopulation  int
}

// Deaths returns the number of cells that died during the tick
func (r TickReport) Deaths() int {
	return r.Underpopulation + r.Overpopulation
}

// Universe is a fixed-size toroidal grid of cells stored in row-major order
type Universe struct {
	width      uint32
	height     uint32
	cells      []Cell
	generation int
	lastTick   TickReport

	pool   *BufferPool
	logger *slog.Logger
}

// Option configures optional collaborators of a Universe
type Option func(u *Universe)

// WithBufferPool makes Tick recycle generation buffers through the given pool
func WithBufferPool(pool *BufferPool) Option {
	return func(u *Universe) { u.pool = pool }
}

// WithLogger sets the logger used for diagnostic output
func WithLogger(logger *slog.Logger) Option {
	return func(u *Universe) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// New creates a universe seeded so that cell i is alive when i is divisible by 2 or by 7
func New(width, height uint32, opts ...Option) (*Universe, error) {
	u, err := newUniverse(width, height, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "[New] width=%d height=%d", width, height)
	}

	u.SeedModulo()

	u.logger.Debug("universe created", "width", width, "height", height)
	return u, nil
}

// NewFromCells creates a universe holding a copy of the given row-major cell buffer
func NewFromCells(width, height uint32, cells []Cell, opts ...Option) (*Universe, error) {
	u, err := newUniverse(width, height, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "[NewFromCells] width=%d height=%d", width, height)
	}
	if len(cells) != len(u.cells) {
		return nil, errors.Wrapf(ErrCellCountMismatch, "[NewFromCells] got %d cells, want %d", len(cells), len(u.cells))
	}
	copy(u.cells, cells)

	u.logger.Debug("universe created from cells", "width", width, "height", height)
	return u, nil
}

func newUniverse(width, height uint32, opts []Option) (*Universe, error) {
	if width == 0 || height == 0 {
		return nil, ErrInvalidDimensions
	}

	u := &Universe{
		width:  width,
		height: height,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	u.cells = make([]Cell, int(width)*int(height))
	return u, nil
}

// GetWidth returns the width of the universe
func (u *Universe) GetWidth() uint32 {
	return u.width
}

// GetHeight returns the height of the universe
func (u *Universe) GetHeight() uint32 {
	return u.height
}

// Generation returns the number of ticks since construction or the last Clear
func (u *Universe) Generation() int {
	return u.generation
}

// LastTick returns the transition counts of the most recent tick
func (u *Universe) LastTick() TickReport {
	return u.lastTick
}

// index maps a row and column to a buffer index. Callers keep row < height and col < width.
func (u *Universe) index(row, col uint32) int {
	return int(row)*int(u.width) + int(col)
}

// liveNeighborCount sums the eight wrapped neighbors of a cell.
// On a grid one cell wide or high the wraparound makes a cell its own neighbor.
func (u *Universe) liveNeighborCount(row, col uint32) uint8 {
	var count uint8
	for _, dr := range [3]uint32{u.height - 1, 0, 1} {
		for _, dc := range [3]uint32{u.width - 1, 0, 1} {
			if dr == 0 && dc == 0 {
				continue
			}

			// adding height-1 is the same as subtracting one modulo height
			r := (row + dr) % u.height
			c := (col + dc) % u.width
			count += uint8(u.cells[u.index(r, c)])
		}
	}
	return count
}

// Tick advances the universe one generation.
// The next generation is computed into a separate buffer which then replaces the current one.
func (u *Universe) Tick() {
	next := u.nextBuffer()

	var report TickReport
	for row := uint32(0); row < u.height; row++ {
		for col := uint32(0); col < u.width; col++ {
			idx := u.index(row, col)
			transition := rules.Classify(int(u.liveNeighborCount(row, col)), u.cells[idx] == Alive)

			switch transition {
			case rules.Underpopulation:
				report.Underpopulation++
			case rules.Survival:
				report.Survivals++
			case rules.Overpopulation:
				report.Overpopulation++
			case rules.Reproduction:
				report.Births++
			}

			if transition.Alive() {
				next[idx] = Alive
			} else {
				next[idx] = Dead
			}
		}
	}

	prev := u.cells
	u.cells = next
	u.generation++
	u.lastTick = report

	if u.pool != nil {
		u.pool.Put(prev)
	}
}

func (u *Universe) nextBuffer() []Cell {
	if u.pool != nil {
		return u.pool.Get(len(u.cells))
	}
	return make([]Cell, len(u.cells))
}

// Cells exposes the current cell buffer for external rendering.
// The slice is only valid until the next Tick, Clear or Set, and must not be written to.
func (u *Universe) Cells() []Cell {
	return u.cells[:len(u.cells):len(u.cells)]
}

// Get returns the state of a cell, Dead when out of range
func (u *Universe) Get(row, col uint32) Cell {
	if row >= u.height || col >= u.width {
		return Dead
	}
	return u.cells[u.index(row, col)]
}

// Set sets the state of a cell, ignoring positions out of range
func (u *Universe) Set(row, col uint32, c Cell) {
	if row >= u.height || col >= u.width {
		return
	}
	u.cells[u.index(row, col)] = c
}

// Clear kills every cell and resets the generation counter
func (u *Universe) Clear() {
	clear(u.cells)
	u.generation = 0
	u.lastTick = TickReport{}
}

// LiveCells returns the total number of living cells
func (u *Universe) LiveCells() (count int) {
	for _, c := range u.cells {
		if c == Alive {
			count++
		}
	}
	return
}

// Hash returns an MD5 hex digest of the current cell buffer
func (u *Universe) Hash() string {
	buf := make([]byte, len(u.cells))
	for i, c := range u.cells {
		buf[i] = byte(c)
	}
	return fmt.Sprintf("%x", md5.Sum(buf))
}
