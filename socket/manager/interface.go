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

// Package manager assembles buffer, registry, reuse, isb, hostparam and
// dispatch into the public connection-manager façade; spec.md §4.5.
package manager

import "github/sabouaram/tcpmgr/socket"

// Manager is the public façade spec.md §6 describes. A single process may
// hold any number of Managers, typically one ModeServer and several
// ModeClient instances.
type Manager interface {
	// ConnectToNewSocket dials address:port and returns the new socket's id
	// immediately; the connection itself completes asynchronously. id is
	// used verbatim if non-nil; otherwise a socket taken from the reuse queue
	// keeps its own id, and a fresh socket gets a generated one.
	ConnectToNewSocket(address string, port uint16, id socket.Identifier) (socket.Identifier, error)

	// ListenToNewSocket opens the manager's single listener on port.
	// fewClientsExpected tunes internal pre-allocation, not correctness.
	ListenToNewSocket(port uint16, fewClientsExpected bool) (socket.Identifier, error)

	// SendData posts length bytes of data to id, returning false if the
	// socket is unknown, not connected, or would exceed its backpressure
	// limit.
	SendData(data []byte, length uint32, id socket.Identifier) bool

	// SendDataToAll is SendData broadcast to every currently registered
	// socket, best-effort.
	SendDataToAll(data []byte, length uint32)

	// IsReady reports whether the Manager has completed construction.
	IsReady() bool

	// IsClientSocketReady reports whether id is a connected client socket.
	IsClientSocketReady(id socket.Identifier) bool

	// IsServerSocketReady reports whether id is an actively listening
	// server socket.
	IsServerSocketReady(id socket.Identifier) bool

	// IsSocketInitialising reports whether id exists and has not yet
	// reached CONNECTED nor started tearing down.
	IsSocketInitialising(id socket.Identifier) bool

	// ChangeSocketState forces id's lifecycle state, triggering whatever
	// side effects that transition implies (e.g. CLOSING tears the socket
	// down and offers it to the reuse queue).
	ChangeSocketState(id socket.Identifier, newState socket.State) error

	// Shutdown tears down every socket, stops the worker pool, and closes
	// the listener if one is open. It blocks until drained.
	Shutdown()

	// Stats reports lifetime counters; see Supplemented Features.
	Stats() Stats
}
