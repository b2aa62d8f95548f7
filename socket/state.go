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

// Package socket holds the shared types of the completion-style TCP connection
// manager: the socket lifecycle state machine, its record, and the operation
// tags dispatched by the completion workers. Protocol- and role-specific code
// lives in the sibling packages (buffer, registry, reuse, isb, hostparam,
// dispatch, manager); they all import this package, never the reverse.
package socket

// State is the lifecycle state of a Socket. It is intentionally an ordered
// uint8: any value greater than StateConnected marks the socket as tearing
// down, which a plain numeric comparison captures without a lookup table.
type State uint8

const (
	StateInit State = iota
	StateAssociated
	StateBound
	StateListening
	StateAccepting
	StateConnected
	StateClosing
	StateDisconnecting
	StateDisconnected
	StateRetryConnection
	StateFailure
	StateConnectFailure
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateAssociated:
		return "ASSOCIATED"
	case StateBound:
		return "BOUND"
	case StateListening:
		return "LISTENING"
	case StateAccepting:
		return "ACCEPTING"
	case StateConnected:
		return "CONNECTED"
	case StateClosing:
		return "CLOSING"
	case StateDisconnecting:
		return "DISCONNECTING"
	case StateDisconnected:
		return "DISCONNECTED"
	case StateRetryConnection:
		return "RETRY_CONNECTION"
	case StateFailure:
		return "FAILURE"
	case StateConnectFailure:
		return "CONNECT_FAILURE"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// IsTearingDown reports whether s is past the CONNECTED watershed, per
// spec.md §4.3: "any state numerically greater than CONNECTED indicates the
// socket is tearing down".
func (s State) IsTearingDown() bool {
	return s > StateConnected
}

// Op identifies the kind of asynchronous operation a Buffer was posted for.
type Op uint8

const (
	OpRead Op = iota
	OpWrite
	OpConnect
	OpAccept
	OpDisconnect
	OpISBChange
	OpEnd
)

func (o Op) String() string {
	switch o {
	case OpRead:
		return "Read"
	case OpWrite:
		return "Write"
	case OpConnect:
		return "Connect"
	case OpAccept:
		return "Accept"
	case OpDisconnect:
		return "Disconnect"
	case OpISBChange:
		return "ISBChange"
	case OpEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// Mode is the role a Manager operates under: exactly one listener (Server) or
// any number of outbound connections (Client). A process may host managers of
// both kinds simultaneously; spec.md §1.
type Mode uint8

const (
	ModeClient Mode = iota
	ModeServer
)

func (m Mode) String() string {
	if m == ModeServer {
		return "SERVER"
	}
	return "CLIENT"
}

// AddressFamily is fixed at Manager construction time; spec.md §3 "address
// family: fixed at creation" and §1's Non-goal "no IPv6 in the current
// address-family setting". Only IPv4 is wired; the type stays parametric so a
// second family is a value, not a rewrite.
type AddressFamily uint8

const (
	AddressFamilyIPv4 AddressFamily = iota
)

func (f AddressFamily) Network() string {
	switch f {
	case AddressFamilyIPv4:
		return "tcp4"
	default:
		return "tcp4"
	}
}

const (
	// DefaultBufferSize is the fixed payload size of every pooled Buffer;
	// spec.md §3 "DEFAULT_BUFFER_SIZE = 4096".
	DefaultBufferSize = 4096

	// DefaultPoolCap is the number of recently-released Buffers the pool
	// keeps before falling back to fresh allocation; spec.md §4.1.
	DefaultPoolCap = 250

	// MaxUnusedSocket bounds the reuse queue; spec.md §3 "Reuse queue".
	MaxUnusedSocket = 256

	// MinTimeWaitValue and MaxTimeWaitValue bound TimeWaitValue; spec.md §4.5.
	MinTimeWaitValue = 30_000
	MaxTimeWaitValue = 300_000

	// DefaultTimeWaitValue is used when the host parameter is absent;
	// spec.md §4.5.
	DefaultTimeWaitValue = 120_000

	// DefaultMaxPendingByteSent is the ISB-derived cap fallback used when an
	// ISB query fails; spec.md §4.4 "ISBChange... On query failure fall back
	// to DEFAULT_MAX_PENDING_BYTE_SENT".
	DefaultMaxPendingByteSent = 64 * 1024

	// DefaultISBFactor multiplies the ideal-send-backlog hint to derive
	// max-pending-bytes-sent; spec.md §3 "max-pending-bytes-sent".
	DefaultISBFactor = 2

	// ThreadsPerProc scales the worker pool size by logical CPU count;
	// spec.md §4.4.
	ThreadsPerProc = 1
)

// ReceiveFunc is the application-level receive handler extension point;
// spec.md §6. It is called once per successful Read completion and MUST NOT
// retain data beyond the call (the backing array is recycled).
type ReceiveFunc func(data []byte, length uint32, id Identifier) int
