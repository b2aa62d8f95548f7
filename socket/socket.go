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

package socket

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Identifier is the 128-bit opaque id of a Socket; spec.md §3 "id: opaque
// 128-bit identifier, unique within the manager; stable across reuse". A
// uuid.UUID is exactly that: 16 bytes, comparable, zero-value distinguishable
// from any generated value.
type Identifier = uuid.UUID

// NilIdentifier is the zero Identifier, returned by the façade on failure in
// place of a null pointer; spec.md §4.5 "Returns the id (nil on failure)".
var NilIdentifier = uuid.Nil

// NewIdentifier generates a fresh random Identifier; spec.md §4.5
// "a freshly generated sequential/random id if nil".
func NewIdentifier() Identifier {
	return uuid.New()
}

// Socket is one TCP endpoint record; spec.md §3 "Socket record". Every field
// mutation happens under Guard except PendingBytesSent, which is additionally
// atomic so SendData's admission check can read it without acquiring Guard
// (spec.md §5's "pending-bytes-sent is additionally atomic").
type Socket struct {
	Guard sync.Mutex

	id     Identifier
	conn   net.Conn
	family AddressFamily
	mode   Mode

	remoteAddr string
	remotePort uint16
	dialAddr   string

	state State

	outRecv int
	outSend int

	pendingBytesSent    atomic.Int64
	maxPendingBytesSent atomic.Int64

	listener net.Listener
}

// NewSocket allocates a Socket record in StateInit; spec.md §4.3 diagram
// root. The id is assigned by the registry on insertion, not here, so a
// freshly created Socket with a nil conn can still be looked at by tests
// before it is wired into a manager.
func NewSocket(family AddressFamily, mode Mode) *Socket {
	s := &Socket{
		family: family,
		mode:   mode,
		state:  StateInit,
	}
	s.maxPendingBytesSent.Store(DefaultMaxPendingByteSent)
	return s
}

func (s *Socket) ID() Identifier {
	s.Guard.Lock()
	defer s.Guard.Unlock()
	return s.id
}

func (s *Socket) SetID(id Identifier) {
	s.Guard.Lock()
	defer s.Guard.Unlock()
	s.id = id
}

func (s *Socket) Conn() net.Conn {
	s.Guard.Lock()
	defer s.Guard.Unlock()
	return s.conn
}

func (s *Socket) SetConn(c net.Conn) {
	s.Guard.Lock()
	defer s.Guard.Unlock()
	s.conn = c
}

func (s *Socket) Listener() net.Listener {
	s.Guard.Lock()
	defer s.Guard.Unlock()
	return s.listener
}

func (s *Socket) SetListener(l net.Listener) {
	s.Guard.Lock()
	defer s.Guard.Unlock()
	s.listener = l
}

// Valid reports whether the underlying handle is still open; spec.md §3
// "handle... becomes 'invalid' after close".
func (s *Socket) Valid() bool {
	s.Guard.Lock()
	defer s.Guard.Unlock()
	return s.conn != nil
}

func (s *Socket) Family() AddressFamily {
	return s.family
}

func (s *Socket) Mode() Mode {
	return s.mode
}

func (s *Socket) RemoteAddr() (string, uint16) {
	s.Guard.Lock()
	defer s.Guard.Unlock()
	return s.remoteAddr, s.remotePort
}

func (s *Socket) SetRemoteAddr(addr string, port uint16) {
	s.Guard.Lock()
	defer s.Guard.Unlock()
	s.remoteAddr = addr
	s.remotePort = port
}

// DialAddr is the "host:port" this socket was or is being dialed against;
// recorded so a later address-in-use retry (spec.md §4.3) can redial under
// the same address without the caller supplying it again.
func (s *Socket) DialAddr() string {
	s.Guard.Lock()
	defer s.Guard.Unlock()
	return s.dialAddr
}

func (s *Socket) SetDialAddr(addr string) {
	s.Guard.Lock()
	defer s.Guard.Unlock()
	s.dialAddr = addr
}

func (s *Socket) State() State {
	s.Guard.Lock()
	defer s.Guard.Unlock()
	return s.state
}

// SetState forces a transition. Callers inside the dispatcher already hold
// Guard and must use setStateLocked instead to avoid self-deadlock.
func (s *Socket) SetState(st State) {
	s.Guard.Lock()
	defer s.Guard.Unlock()
	s.state = st
}

func (s *Socket) setStateLocked(st State) {
	s.state = st
}

// OutstandingRecv and OutstandingSend are the in-flight async op counters;
// spec.md §3. They are guarded, not atomic, because every caller that reads
// them needs to act on the socket's other fields in the same critical
// section (spec.md's invariant 1 is only meaningful when checked alongside
// state).
func (s *Socket) OutstandingRecv() int {
	s.Guard.Lock()
	defer s.Guard.Unlock()
	return s.outRecv
}

func (s *Socket) OutstandingSend() int {
	s.Guard.Lock()
	defer s.Guard.Unlock()
	return s.outSend
}

func (s *Socket) incRecvLocked(delta int) {
	s.outRecv += delta
}

func (s *Socket) incSendLocked(delta int) {
	s.outSend += delta
}

// PendingBytesSent reads the atomic byte counter without acquiring Guard;
// this is what SendData's backpressure admission check uses, per spec.md §5.
func (s *Socket) PendingBytesSent() int64 {
	return s.pendingBytesSent.Load()
}

func (s *Socket) addPendingBytesSent(delta int64) int64 {
	return s.pendingBytesSent.Add(delta)
}

func (s *Socket) MaxPendingBytesSent() int64 {
	return s.maxPendingBytesSent.Load()
}

func (s *Socket) SetMaxPendingBytesSent(v int64) {
	s.maxPendingBytesSent.Store(v)
}

// AdmitSend reports whether posting n additional bytes keeps the socket
// within MaxPendingBytesSent, per spec.md §8 invariant 5. It does not mutate
// state; callers that get true must still add n with AddPendingBytesLocked
// before posting, and the check-then-add is not atomic as a whole.
func (s *Socket) AdmitSend(n int64) bool {
	return s.pendingBytesSent.Load()+n <= s.maxPendingBytesSent.Load()
}

// WithLock runs fn with Guard held, for callers in other packages (registry,
// dispatch) that need to mutate several fields as one critical section
// without re-exporting every field as a locked setter.
func (s *Socket) WithLock(fn func(s *Socket)) {
	s.Guard.Lock()
	defer s.Guard.Unlock()
	fn(s)
}

// StateLocked, IncRecvLocked, IncSendLocked, AddPendingBytesLocked are the
// lock-free counterparts used from inside WithLock. They panic-free assume
// the caller holds Guard; exported so dispatch can compose multi-field
// transitions atomically.
func (s *Socket) StateLocked() State           { return s.state }
func (s *Socket) SetStateLocked(st State)      { s.setStateLocked(st) }
func (s *Socket) IncRecvLocked(delta int)      { s.incRecvLocked(delta) }
func (s *Socket) IncSendLocked(delta int)      { s.incSendLocked(delta) }
func (s *Socket) OutstandingLocked() (int, int) {
	return s.outRecv, s.outSend
}
func (s *Socket) AddPendingBytesLocked(delta int64) int64 {
	return s.addPendingBytesSent(delta)
}
