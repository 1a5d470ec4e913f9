package model

import "sync"

// BufferPool recycles cell buffers between generations
type BufferPool struct {
	pool sync.Pool
}

func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new([]Cell)
			},
		},
	}
}

// Get retrieves a buffer of the given length from the pool. Its contents are all Dead.
func (p *BufferPool) Get(size int) []Cell {
	bp := p.pool.Get().(*[]Cell)
	if cap(*bp) < size {
		*bp = make([]Cell, size)
	}
	return (*bp)[:size]
}

// Put returns a buffer to the pool, clearing its state
func (p *BufferPool) Put(buf []Cell) {
	if buf == nil {
		return
	}
	// Clear the buffer before returning to pool
	buf = buf[:cap(buf)]
	clear(buf)
	p.pool.Put(&buf)
}
