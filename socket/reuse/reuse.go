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

// Package reuse implements the TIME_WAIT-gated socket reuse queue; spec.md
// §3 "Reuse queue: FIFO of closed Socket records not yet safe to recycle,
// each gated by the process TimeWaitValue". Each entry carries a cache/item
// CacheItem timer whose own expiration clock stands in for the TIME_WAIT
// timer, so no separate ticking goroutine is required.
package reuse

import (
	"sync"
	"time"

	"github/sabouaram/tcpmgr/cache/item"
	"github/sabouaram/tcpmgr/socket"
)

// entry pairs a waiting socket with a CacheItem timer standing in for its
// TIME_WAIT clock. The socket itself lives outside the CacheItem: a
// CacheItem discards its payload the moment it expires (it is built for
// "evict stale data"), which is the opposite of what reuse needs ("become
// available once the wait has elapsed"), so only the timer's Check result is
// consulted here.
type entry struct {
	sock  *socket.Socket
	timer item.CacheItem[struct{}]
}

// Queue is a bounded FIFO of sockets waiting out TIME_WAIT before they can
// be handed back out by ListenToNewSocket/ConnectToNewSocket; spec.md §3
// "bounded by MAX_UNUSED_SOCKET".
type Queue struct {
	mu       sync.Mutex
	entries  []entry
	capacity int
}

// NewQueue builds a Queue bounded to capacity entries.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = socket.MaxUnusedSocket
	}
	return &Queue{
		entries:  make([]entry, 0, capacity),
		capacity: capacity,
	}
}

// Offer enqueues s to wait out wait before becoming reusable. It reports
// false without enqueuing when the queue is already at capacity; spec.md §8
// "the reuse queue is at capacity" error path, in which case the caller
// falls back to closing s outright.
func (q *Queue) Offer(s *socket.Socket, wait time.Duration) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) >= q.capacity {
		return false
	}

	q.entries = append(q.entries, entry{
		sock:  s,
		timer: item.New(wait, struct{}{}),
	})
	return true
}

// Take pops the oldest socket whose TIME_WAIT has elapsed, returning nil if
// none qualifies yet; spec.md §4.5 "reuse is only offered once the wait
// period for the head of the queue has elapsed".
func (q *Queue) Take() *socket.Socket {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, e := range q.entries {
		if e.timer.Check() {
			continue
		}
		q.entries = append(q.entries[:i], q.entries[i+1:]...)
		return e.sock
	}
	return nil
}

// Len reports the number of sockets currently waiting in the queue.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
