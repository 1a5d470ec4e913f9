package model

const (
	defaultHistorySize = 5
	cycleLookback      = 3
)

// History keeps the hashes of recent generations to detect still lifes and short cycles
type History struct {
	size   int
	hashes []string
}

// NewHistory creates a history holding up to size hashes
func NewHistory(size int) *History {
	if size <= 0 {
		size = defaultHistorySize
	}
	return &History{size: size}
}

// Update adds the universe's current state to history and maintains size
func (h *History) Update(u *Universe) {
	h.hashes = append(h.hashes, u.Hash())

	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant reports whether the universe's current state repeats one of the last few recorded states
func (h *History) IsStagnant(u *Universe) bool {
	if len(h.hashes) < cycleLookback {
		return false
	}

	current := u.Hash()
	for i := 1; i <= cycleLookback && i <= len(h.hashes); i++ {
		if h.hashes[len(h.hashes)-i] == current {
			return true
		}
	}
	return false
}

// Reset forgets all recorded states
func (h *History) Reset() {
	h.hashes = nil
}

// Len returns the number of recorded states
func (h *History) Len() int {
	return len(h.hashes)
}
