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

// Package dispatch is the completion side of the manager: a fixed pool of
// worker goroutines draining a buffered channel of posted Buffers, standing
// in for GetQueuedCompletionStatus and its worker threads; spec.md §4.4 and
// §9's design note on a message-dispatch alternative to per-socket locking.
package dispatch

import (
	"context"
	"sync"

	liblog "github/sabouaram/tcpmgr/logger"
	"github/sabouaram/tcpmgr/socket"
	"github/sabouaram/tcpmgr/socket/buffer"
	"github/sabouaram/tcpmgr/socket/registry"
)

// Handlers wires op-specific behaviour into the dispatcher without the
// dispatcher itself knowing about connect retries, backpressure, or the
// reuse queue; spec.md §4.4's completion routing table, one entry per Op.
// A nil handler silently drops completions of that kind.
type Handlers struct {
	OnRead       func(s *socket.Socket, b *buffer.Buffer)
	OnWrite      func(s *socket.Socket, b *buffer.Buffer)
	OnConnect    func(s *socket.Socket, b *buffer.Buffer)
	OnAccept     func(s *socket.Socket, b *buffer.Buffer)
	OnDisconnect func(s *socket.Socket, b *buffer.Buffer)
	OnISBChange  func(s *socket.Socket, b *buffer.Buffer)
}

// Dispatcher owns the completion channel and its worker pool; spec.md §4.4
// "THREADS_PER_PROC workers per logical CPU".
type Dispatcher struct {
	queue    chan *buffer.Buffer
	handlers Handlers
	reg      *registry.Registry
	workers  int
	logFn    liblog.FuncLog

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
	active bool
}

// New builds a Dispatcher with the given worker count and completion queue
// depth, routing completions for sockets resolved through reg.
func New(workers, queueDepth int, reg *registry.Registry, h Handlers, logFn liblog.FuncLog) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueDepth <= 0 {
		queueDepth = 1
	}
	return &Dispatcher{
		queue:    make(chan *buffer.Buffer, queueDepth),
		handlers: h,
		reg:      reg,
		workers:  workers,
		logFn:    logFn,
	}
}

func (d *Dispatcher) log() liblog.Logger {
	if d.logFn == nil {
		return nil
	}
	return d.logFn()
}

// Start launches the worker pool; it is a no-op if already started.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.active = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx)
	}
}

// Stop signals every worker to exit and blocks until they have drained
// in-flight completions; spec.md §8's "shutdown does not drop a completion
// that has already been dequeued".
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.active {
		d.mu.Unlock()
		return
	}
	cancel := d.cancel
	d.active = false
	d.mu.Unlock()

	cancel()
	d.wg.Wait()
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case b, ok := <-d.queue:
			if !ok {
				return
			}
			d.dispatchOne(b)
		}
	}
}

// dispatchOne resolves b's target socket and routes it to the registered
// handler for its Op. A completion whose target is no longer registered is
// dropped silently; spec.md §4.4 "stale completions for a socket that has
// already been removed are discarded, never delivered to a handler".
func (d *Dispatcher) dispatchOne(b *buffer.Buffer) {
	defer func() {
		if r := recover(); r != nil && d.log() != nil {
			d.log().Error("socket dispatch worker panic recovered", r)
		}
	}()

	s, ok := d.reg.Get(b.Target)
	if !ok {
		return
	}

	switch b.Op {
	case socket.OpRead:
		d.call(d.handlers.OnRead, s, b)
	case socket.OpWrite:
		d.call(d.handlers.OnWrite, s, b)
	case socket.OpConnect:
		d.call(d.handlers.OnConnect, s, b)
	case socket.OpAccept:
		d.call(d.handlers.OnAccept, s, b)
	case socket.OpDisconnect:
		d.call(d.handlers.OnDisconnect, s, b)
	case socket.OpISBChange:
		d.call(d.handlers.OnISBChange, s, b)
	}
}

func (d *Dispatcher) call(fn func(*socket.Socket, *buffer.Buffer), s *socket.Socket, b *buffer.Buffer) {
	if fn == nil {
		return
	}
	fn(s, b)
}

// Post enqueues b for dispatch without blocking. It reports false when the
// completion queue is full, matching spec.md §8's "post failure" error
// path: callers translate this into socket.ErrorPostFailed.
func (d *Dispatcher) Post(b *buffer.Buffer) bool {
	select {
	case d.queue <- b:
		return true
	default:
		return false
	}
}

// Len reports the number of completions currently buffered, for tests and
// diagnostics.
func (d *Dispatcher) Len() int {
	return len(d.queue)
}
