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
	"github/sabouaram/tcpmgr/socket/isb"
)

// postRead schedules a blocking Read on s's connection, posting an OpRead
// completion once it returns. It is the Go stand-in for posting a WSARecv
// against an overlapped descriptor.
func (m *mgr) postRead(id socket.Identifier, s *socket.Socket) {
	conn := s.Conn()
	if conn == nil {
		return
	}
	s.WithLock(func(s *socket.Socket) {
		s.IncRecvLocked(1)
	})
	go func() {
		b := m.pool.Get()
		b.Op = socket.OpRead
		b.Target = id

		n, err := conn.Read(b.Payload[:])
		b.Length = n
		b.Result <- buffer.Result{N: n, Err: err}

		if !m.disp.Post(b) {
			m.pool.Put(b)
		}
	}()
}

func (m *mgr) write(s *socket.Socket, conn net.Conn, b *buffer.Buffer) {
	n, err := conn.Write(b.Payload[:b.Length])
	b.Result <- buffer.Result{N: n, Err: err}

	if !m.disp.Post(b) {
		m.releaseFailedWrite(s, b, int64(b.Length))
	}
}

func (m *mgr) postISBChange(id socket.Identifier) {
	b := m.pool.Get()
	b.Op = socket.OpISBChange
	b.Target = id
	b.Result <- buffer.Result{}
	if !m.disp.Post(b) {
		m.pool.Put(b)
	}
}

func (m *mgr) handleConnect(s *socket.Socket, b *buffer.Buffer) {
	res := <-b.Result
	defer m.pool.Put(b)

	if res.Err != nil {
		if isAddrInUse(res.Err) {
			m.retryConnect(s, b.Target)
			return
		}
		s.SetState(socket.StateConnectFailure)
		return
	}

	s.SetState(socket.StateConnected)
	m.stats.connected.Add(1)
	m.stats.open.Add(1)

	m.postISBChange(b.Target)
	m.postRead(b.Target, s)
}

func (m *mgr) handleAccept(s *socket.Socket, b *buffer.Buffer) {
	<-b.Result
	defer m.pool.Put(b)

	s.SetState(socket.StateConnected)
	m.stats.accepted.Add(1)
	m.stats.open.Add(1)

	m.postISBChange(b.Target)
	m.postRead(b.Target, s)
}

func (m *mgr) handleRead(s *socket.Socket, b *buffer.Buffer) {
	res := <-b.Result
	id := b.Target

	s.WithLock(func(s *socket.Socket) {
		s.IncRecvLocked(-1)
	})

	if res.Err != nil || res.N == 0 {
		m.pool.Put(b)
		m.beginDisconnect(s, id)
		return
	}

	if m.cfg.Receive != nil {
		payload := make([]byte, res.N)
		copy(payload, b.Payload[:res.N])
		rc := m.cfg.Receive(payload, uint32(res.N), id)
		m.pool.Put(b)
		if rc < 0 {
			m.beginDisconnect(s, id)
			return
		}
	} else {
		m.pool.Put(b)
	}

	m.postRead(id, s)
}

func (m *mgr) handleWrite(s *socket.Socket, b *buffer.Buffer) {
	res := <-b.Result
	id := b.Target
	s.WithLock(func(s *socket.Socket) {
		s.AddPendingBytesLocked(-int64(b.Length))
		s.IncSendLocked(-1)
	})
	m.pool.Put(b)

	if res.Err != nil {
		m.beginDisconnect(s, id)
	}
}

func (m *mgr) handleISBChange(s *socket.Socket, b *buffer.Buffer) {
	<-b.Result
	defer m.pool.Put(b)

	conn := s.Conn()
	if conn == nil {
		return
	}

	v := isb.Estimate(m.isbP, conn, m.cfg.isbFactor(), socket.DefaultMaxPendingByteSent)
	s.SetMaxPendingBytesSent(v)
}

func (m *mgr) handleDisconnect(s *socket.Socket, b *buffer.Buffer) {
	<-b.Result
	id := b.Target
	m.pool.Put(b)
	m.finishDisconnect(s, id)
}

// beginDisconnect posts an OpDisconnect completion so the actual socket
// teardown happens on a dispatcher worker, serialized with any other
// completion for the same socket.
func (m *mgr) beginDisconnect(s *socket.Socket, id socket.Identifier) {
	st := s.State()
	if st.IsTearingDown() {
		return
	}
	s.SetState(socket.StateDisconnecting)

	b := m.pool.Get()
	b.Op = socket.OpDisconnect
	b.Target = id
	b.Result <- buffer.Result{}

	if !m.disp.Post(b) {
		m.pool.Put(b)
		m.finishDisconnect(s, id)
	}
}

func (m *mgr) finishDisconnect(s *socket.Socket, id socket.Identifier) {
	if conn := s.Conn(); conn != nil {
		_ = conn.Close()
	}
	s.SetConn(nil)
	s.SetState(socket.StateDisconnected)

	m.stats.closed.Add(1)
	m.stats.open.Add(-1)

	if !m.reuseQ.Offer(s, m.tw.Duration()) {
		m.tw.Backoff()
		m.reg.Remove(id)
		s.SetState(socket.StateClosed)
	}
}
