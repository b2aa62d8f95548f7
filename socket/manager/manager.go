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
	"context"
	"net"
	"sync"

	liblog "github/sabouaram/tcpmgr/logger"
	"github/sabouaram/tcpmgr/socket"
	"github/sabouaram/tcpmgr/socket/buffer"
	"github/sabouaram/tcpmgr/socket/dispatch"
	"github/sabouaram/tcpmgr/socket/hostparam"
	"github/sabouaram/tcpmgr/socket/isb"
	"github/sabouaram/tcpmgr/socket/registry"
	"github/sabouaram/tcpmgr/socket/reuse"
)

type mgr struct {
	cfg Config

	reg    *registry.Registry
	pool   *buffer.Pool
	reuseQ *reuse.Queue
	disp   *dispatch.Dispatcher
	isbP   isb.Provider
	tw     timeWaitValue

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	build      BuildState
	listener   net.Listener
	listenerID socket.Identifier

	stats counters
}

// New constructs a Manager, running it through the full build ladder;
// spec.md §4.5. On failure it returns a nil Manager and the first error
// encountered.
func New(ctx context.Context, cfg Config) (Manager, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	m := &mgr{
		cfg: cfg,
		reg: registry.New(),
	}

	if err := m.construct(ctx); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *mgr) construct(ctx context.Context) error {
	if m.cfg.Family != socket.AddressFamilyIPv4 {
		return socket.ErrorConstructionFailed.Error(nil)
	}
	m.setBuild(NetworkInitialized)

	m.pool = buffer.NewPool(m.cfg.poolCapacity())
	m.reuseQ = reuse.NewQueue(m.cfg.reuseCapacity())
	m.setBuild(QueueInitialized)

	m.ctx, m.cancel = context.WithCancel(ctx)
	m.disp = dispatch.New(m.cfg.workers(), m.cfg.queueDepth(), m.reg, dispatch.Handlers{
		OnRead:       m.handleRead,
		OnWrite:      m.handleWrite,
		OnConnect:    m.handleConnect,
		OnAccept:     m.handleAccept,
		OnDisconnect: m.handleDisconnect,
		OnISBChange:  m.handleISBChange,
	}, m.cfg.Log)
	m.disp.Start(m.ctx)
	m.setBuild(WorkersInitialized)

	if m.cfg.ISBProvider != nil {
		m.isbP = m.cfg.ISBProvider
	} else {
		m.isbP = isb.NewProvider()
	}
	m.setBuild(ExtensionsInitialized)

	src := m.cfg.Source
	if src == nil {
		src = hostparam.NewEnvSource()
	}
	m.tw.init(src)
	m.setBuild(TimeWaitSelected)

	m.setBuild(Ready)
	return nil
}

func (m *mgr) setBuild(b BuildState) {
	m.mu.Lock()
	m.build = b
	m.mu.Unlock()
}

func (m *mgr) buildState() BuildState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.build
}

func (m *mgr) log() liblog.Logger {
	if m.cfg.Log == nil {
		return nil
	}
	return m.cfg.Log()
}

func (m *mgr) IsReady() bool {
	return m.buildState() == Ready
}

func (m *mgr) IsClientSocketReady(id socket.Identifier) bool {
	s, ok := m.reg.Get(id)
	if !ok {
		return false
	}
	return s.Mode() == socket.ModeClient && s.State() == socket.StateConnected
}

func (m *mgr) IsServerSocketReady(id socket.Identifier) bool {
	s, ok := m.reg.Get(id)
	if !ok {
		return false
	}
	return s.Mode() == socket.ModeServer && s.State() == socket.StateListening
}

func (m *mgr) IsSocketInitialising(id socket.Identifier) bool {
	s, ok := m.reg.Get(id)
	if !ok {
		return false
	}
	st := s.State()
	return st < socket.StateConnected
}

func (m *mgr) ChangeSocketState(id socket.Identifier, newState socket.State) error {
	s, ok := m.reg.Get(id)
	if !ok {
		return socket.ErrorSocketNotFound.Error(nil)
	}

	switch newState {
	case socket.StateClosing, socket.StateDisconnecting:
		m.beginDisconnect(s, id)
	default:
		s.SetState(newState)
	}
	return nil
}

func (m *mgr) Stats() Stats {
	return m.stats.snapshot()
}

func (m *mgr) Shutdown() {
	m.mu.Lock()
	l := m.listener
	m.listener = nil
	m.mu.Unlock()

	if l != nil {
		_ = l.Close()
	}

	for _, id := range m.reg.Snapshot() {
		if s, ok := m.reg.Get(id); ok {
			if c := s.Conn(); c != nil {
				_ = c.Close()
			}
		}
	}

	m.cancel()
	m.disp.Stop()
}
