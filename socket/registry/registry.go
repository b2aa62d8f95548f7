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

// Package registry holds the manager-wide lookup table keyed by socket
// identifier; spec.md §3 "Lookup map: id -> Socket record, used by every
// public operation that takes an id".
package registry

import (
	"sync"

	"github/sabouaram/tcpmgr/socket"
)

// Registry is a concurrent-safe id -> *socket.Socket map. A single Registry
// is shared by every goroutine touching a Manager: completion workers,
// SendData callers, and the accept loop all resolve through it instead of
// holding their own references, so a socket that is Removed becomes
// unreachable to new operations immediately.
type Registry struct {
	mu sync.RWMutex
	m  map[socket.Identifier]*socket.Socket
}

// New builds an empty Registry.
func New() *Registry {
	return &Registry{
		m: make(map[socket.Identifier]*socket.Socket),
	}
}

// Add inserts s under a freshly generated id and returns it; spec.md §4.5
// "a freshly generated... id if nil".
func (r *Registry) Add(s *socket.Socket) socket.Identifier {
	return r.AddWithID(s, socket.NewIdentifier())
}

// AddWithID inserts s under the caller-supplied id; used when a caller
// explicitly names the id to (re)connect under, per spec.md §4.5 "the id is
// used verbatim if non-nil".
func (r *Registry) AddWithID(s *socket.Socket, id socket.Identifier) socket.Identifier {
	s.SetID(id)

	r.mu.Lock()
	r.m[id] = s
	r.mu.Unlock()

	return id
}

// Get resolves id to its Socket; the second return is false when id is not
// currently registered, matching spec.md §8's "id not found" error path.
func (r *Registry) Get(id socket.Identifier) (*socket.Socket, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.m[id]
	return s, ok
}

// Remove drops id from the registry; it is a no-op if id is absent.
func (r *Registry) Remove(id socket.Identifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, id)
}

// Len reports how many sockets are currently registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}

// Each calls fn once per registered socket under a read lock. fn must not
// call back into the Registry; doing so deadlocks on the same mutex.
func (r *Registry) Each(fn func(id socket.Identifier, s *socket.Socket)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, s := range r.m {
		fn(id, s)
	}
}

// Snapshot returns a stable copy of the currently registered ids, safe to
// range over after releasing the registry's lock; used by SendDataToAll and
// by Shutdown's drain loop.
func (r *Registry) Snapshot() []socket.Identifier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]socket.Identifier, 0, len(r.m))
	for id := range r.m {
		ids = append(ids, id)
	}
	return ids
}
