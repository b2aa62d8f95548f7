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

// ListenToNewSocket opens the manager's single listener; spec.md §3 "a
// server-mode Manager owns exactly one listening socket". fewClientsExpected
// shrinks the buffer pool's effective working set. Config.ListenBacklog, when
// positive, is honored via listenWithBacklog's raw-socket path (Linux only;
// see listen_linux.go) since net.ListenConfig offers no portable way to pass
// a backlog through to the kernel listen(2) call.
func (m *mgr) ListenToNewSocket(port uint16, fewClientsExpected bool) (socket.Identifier, error) {
	if !m.IsReady() {
		return socket.NilIdentifier, socket.ErrorNotReady.Error(nil)
	}
	if m.cfg.Mode != socket.ModeServer {
		return socket.NilIdentifier, socket.ErrorWrongManagerType.Error(nil)
	}

	m.mu.Lock()
	if m.listener != nil {
		m.mu.Unlock()
		return socket.NilIdentifier, socket.ErrorListenerAlreadySet.Error(nil)
	}
	m.mu.Unlock()

	ln, err := listenWithBacklog(port, m.cfg.ListenBacklog)
	if err != nil {
		return socket.NilIdentifier, err
	}

	if fewClientsExpected {
		m.pool.Resize(socket.DefaultPoolCap / 4)
	}

	s := socket.NewSocket(m.cfg.Family, socket.ModeServer)
	s.SetConn(nil)
	s.SetState(socket.StateListening)
	id := m.reg.Add(s)

	m.mu.Lock()
	m.listener = ln
	m.listenerID = id
	m.mu.Unlock()

	go m.acceptLoop(ln)

	return id, nil
}

func (m *mgr) acceptLoop(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go m.accept(conn)
	}
}

func (m *mgr) accept(conn net.Conn) {
	s := socket.NewSocket(m.cfg.Family, socket.ModeServer)
	s.SetConn(conn)
	id := m.reg.Add(s)

	if host, port, ok := splitHostPortOK(conn.RemoteAddr().String()); ok {
		s.SetRemoteAddr(host, port)
	}

	b := m.pool.Get()
	b.Op = socket.OpAccept
	b.Target = id
	b.Result <- buffer.Result{}

	if !m.disp.Post(b) {
		m.pool.Put(b)
		_ = conn.Close()
		m.reg.Remove(id)
	}
}

func splitHostPortOK(addr string) (string, uint16, bool) {
	host, port := splitHostPort(addr)
	return host, port, host != ""
}
