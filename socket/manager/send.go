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

package manager

import (
	"net"

	"github/sabouaram/tcpmgr/socket"
	"github/sabouaram/tcpmgr/socket/buffer"
)

// SendData posts data to id's socket if doing so keeps it within its
// backpressure limit; spec.md §8 invariant 5. It never blocks: an over-limit
// socket simply returns false. Writes run on their own goroutines, so a full
// completion queue is not seen here; write releases such a Buffer and its
// pending bytes after the fact.
// spec.md §4.5 "Fragments the input into 4096-byte chunks, each posted as a
// Write with its own Buffer": the admission check runs once against the
// whole length, then postFragments splits the payload across one Write per
// DefaultBufferSize-sized chunk.
func (m *mgr) SendData(data []byte, length uint32, id socket.Identifier) bool {
	s, ok := m.reg.Get(id)
	if !ok {
		return false
	}
	if s.State() != socket.StateConnected {
		return false
	}
	if length == 0 || int(length) > len(data) {
		return false
	}

	n := int64(length)
	if !s.AdmitSend(n) {
		return false
	}

	conn := s.Conn()
	if conn == nil {
		return false
	}

	s.WithLock(func(s *socket.Socket) {
		s.AddPendingBytesLocked(n)
	})

	return m.postFragments(s, conn, data[:length], id)
}

// postFragments posts payload as a sequence of Writes, each carrying at most
// socket.DefaultBufferSize bytes of its own Buffer; spec.md §4.5. A post
// fails here when the socket's handle has gone away between fragments (a
// concurrent disconnect): the socket moves to FAILURE and the pending bytes
// already reserved for the unposted remainder are released, per spec.md
// §4.5 "On any post failure, the socket transitions to FAILURE and the
// remainder is dropped."
func (m *mgr) postFragments(s *socket.Socket, conn net.Conn, payload []byte, id socket.Identifier) bool {
	posted := false
	for len(payload) > 0 {
		chunk := payload
		if len(chunk) > socket.DefaultBufferSize {
			chunk = chunk[:socket.DefaultBufferSize]
		}
		payload = payload[len(chunk):]

		if s.Conn() == nil {
			s.SetState(socket.StateFailure)
			s.WithLock(func(s *socket.Socket) {
				s.AddPendingBytesLocked(-int64(len(chunk) + len(payload)))
			})
			return posted
		}

		b := m.pool.Get()
		copy(b.Payload[:], chunk)
		b.Length = len(chunk)
		b.Op = socket.OpWrite
		b.Target = id

		s.WithLock(func(s *socket.Socket) {
			s.IncSendLocked(1)
		})

		go m.write(s, conn, b)
		posted = true
	}
	return posted
}

// SendDataToAll is best-effort broadcast; a refusal for one socket does not
// stop delivery to the others.
func (m *mgr) SendDataToAll(data []byte, length uint32) {
	for _, id := range m.reg.Snapshot() {
		m.SendData(data, length, id)
	}
}

func (m *mgr) releaseFailedWrite(s *socket.Socket, b *buffer.Buffer, n int64) {
	s.WithLock(func(s *socket.Socket) {
		s.AddPendingBytesLocked(-n)
		s.IncSendLocked(-1)
	})
	m.pool.Put(b)
}
