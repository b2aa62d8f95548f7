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
	"errors"
	"fmt"
	"net"
	"syscall"

	"github/sabouaram/tcpmgr/socket"
	"github/sabouaram/tcpmgr/socket/buffer"
)

// ConnectToNewSocket dials address:port asynchronously; spec.md §4.5. The
// returned id is usable immediately for IsSocketInitialising polling, even
// though the dial itself has not completed when this call returns.
func (m *mgr) ConnectToNewSocket(address string, port uint16, id socket.Identifier) (socket.Identifier, error) {
	if !m.IsReady() {
		return socket.NilIdentifier, socket.ErrorNotReady.Error(nil)
	}
	if m.cfg.Mode != socket.ModeClient {
		return socket.NilIdentifier, socket.ErrorWrongManagerType.Error(nil)
	}
	if address == "" {
		return socket.NilIdentifier, socket.ErrorInvalidAddress.Error(nil)
	}

	s, targetID := m.acquireSocket(id, socket.ModeClient)
	s.SetState(socket.StateAssociated)

	addr := fmt.Sprintf("%s:%d", address, port)
	s.SetDialAddr(addr)
	go m.dial(targetID, s, addr)

	return targetID, nil
}

// retryConnect implements spec.md §4.3's address-in-use transient-retry
// arc, entered from handleConnect: TimeWaitValue backs off, a fresh Socket
// record takes id's place in the registry for the new attempt, and the
// original record settles into RETRY_CONNECTION — spec.md §3's "identity
// reassigned to new connect attempt".
func (m *mgr) retryConnect(s *socket.Socket, id socket.Identifier) {
	m.tw.Backoff()

	addr := s.DialAddr()
	s.SetState(socket.StateRetryConnection)

	fresh := socket.NewSocket(m.cfg.Family, socket.ModeClient)
	fresh.SetDialAddr(addr)
	fresh.SetState(socket.StateAssociated)
	m.reg.AddWithID(fresh, id)

	go m.dial(id, fresh, addr)
}

// isAddrInUse reports whether err is the platform's "address already in
// use" error, spec.md §4.3's trigger for the retry arc above.
func isAddrInUse(err error) bool {
	return errors.Is(err, syscall.EADDRINUSE)
}

// acquireSocket returns a socket to use for a new outbound or reused
// connection. A reused socket keeps its original id, per spec.md §3's "id
// ... stable across reuse"; otherwise one is registered fresh.
func (m *mgr) acquireSocket(want socket.Identifier, mode socket.Mode) (*socket.Socket, socket.Identifier) {
	if want == socket.NilIdentifier {
		if s := m.reuseQ.Take(); s != nil {
			s.SetConn(nil)
			s.SetState(socket.StateInit)
			return s, s.ID()
		}
		s := socket.NewSocket(m.cfg.Family, mode)
		return s, m.reg.Add(s)
	}

	if s, ok := m.reg.Get(want); ok {
		return s, want
	}

	s := socket.NewSocket(m.cfg.Family, mode)
	m.reg.AddWithID(s, want)
	return s, want
}

func (m *mgr) dial(id socket.Identifier, s *socket.Socket, addr string) {
	var d net.Dialer
	conn, err := d.DialContext(m.ctx, m.cfg.Family.Network(), addr)

	b := m.pool.Get()
	b.Op = socket.OpConnect
	b.Target = id

	if err != nil {
		b.Result <- buffer.Result{Err: err}
	} else {
		s.SetConn(conn)
		host, p := splitHostPort(addr)
		s.SetRemoteAddr(host, p)
		b.Result <- buffer.Result{}
	}

	if !m.disp.Post(b) {
		m.pool.Put(b)
		if m.log() != nil {
			m.log().Error("socket connect completion dropped, queue full", id)
		}
		s.SetState(socket.StateConnectFailure)
	}
}

func splitHostPort(addr string) (string, uint16) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 0
	}
	var p uint16
	_, _ = fmt.Sscanf(portStr, "%d", &p)
	return host, p
}
