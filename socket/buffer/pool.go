/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package buffer

import "sync"

// Pool is a bounded LIFO free-list of Buffers; spec.md §4.1 "the most
// recently released buffer is handed out first, which keeps the hot set
// small and cache-friendly". It is not a sync.Pool: entries must survive
// until explicitly Deleted, since a posted Buffer's lifetime is tied to an
// in-flight async op the Go GC knows nothing about.
type Pool struct {
	mu   sync.Mutex
	free []*Buffer
	cap  int
}

// NewPool builds a Pool that retains up to capacity released Buffers before
// letting the garbage collector reclaim the rest; spec.md §4.1
// "DEFAULT_POOL_CAP = 250".
func NewPool(capacity int) *Pool {
	if capacity <= 0 {
		capacity = 250
	}
	return &Pool{
		free: make([]*Buffer, 0, capacity),
		cap:  capacity,
	}
}

// Get returns a Buffer ready to be posted, popping the most recently
// released one off the free list or allocating fresh when it is empty.
func (p *Pool) Get() *Buffer {
	p.mu.Lock()
	n := len(p.free)
	if n == 0 {
		p.mu.Unlock()
		return newBuffer()
	}
	b := p.free[n-1]
	p.free = p.free[:n-1]
	p.mu.Unlock()
	return b
}

// Put releases b back to the pool, resetting it first so a stale Result or
// Target can never leak into the next caller. If the pool is already at
// capacity the Buffer is dropped for the garbage collector to reclaim;
// spec.md §4.1 "excess buffers are not retained".
func (p *Pool) Put(b *Buffer) {
	if b == nil {
		return
	}
	b.reset()

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) >= p.cap {
		return
	}
	p.free = append(p.free, b)
}

// Len reports the number of Buffers currently held in reserve, for tests and
// diagnostics.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Resize changes the retained-capacity ceiling in place, trimming the
// current free list if it now exceeds capacity. Used when a listener is
// opened with fewClientsExpected, to keep a small working set.
func (p *Pool) Resize(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cap = capacity
	if len(p.free) > capacity {
		p.free = p.free[:capacity]
	}
}
