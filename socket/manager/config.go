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
	"runtime"

	liblog "github/sabouaram/tcpmgr/logger"
	"github/sabouaram/tcpmgr/socket"
	"github/sabouaram/tcpmgr/socket/hostparam"
	"github/sabouaram/tcpmgr/socket/isb"
)

// Config collects everything a Manager needs at construction time; spec.md
// §4.5's construction ladder consumes one field per rung.
type Config struct {
	// Mode fixes whether this Manager dials out or accepts; spec.md §1.
	Mode socket.Mode

	// Family is fixed at construction; only AddressFamilyIPv4 is wired.
	Family socket.AddressFamily

	// Receive is invoked once per successful read completion. A negative
	// return value closes the socket; see Supplemented Features.
	Receive socket.ReceiveFunc

	// PoolCapacity bounds the buffer free list; 0 uses socket.DefaultPoolCap.
	PoolCapacity int

	// QueueDepth bounds the completion channel; 0 uses a depth proportional
	// to Workers.
	QueueDepth int

	// Workers overrides the worker pool size; 0 derives it from
	// socket.ThreadsPerProc * runtime.NumCPU().
	Workers int

	// ReuseCapacity bounds the TIME_WAIT reuse queue; 0 uses
	// socket.MaxUnusedSocket.
	ReuseCapacity int

	// ISBFactor multiplies the ideal-send-backlog estimate; 0 uses
	// socket.DefaultISBFactor.
	ISBFactor int64

	// ISBProvider supplies the platform ISB estimate; nil selects the
	// platform default built by isb.NewProvider.
	ISBProvider isb.Provider

	// Source resolves TimeWaitValue from the host; nil selects
	// hostparam.NewEnvSource().
	Source hostparam.Source

	// ListenBacklog, when positive, overrides the kernel's default accept
	// backlog for ListenToNewSocket's listener. Applied via a raw socket
	// built by hand with golang.org/x/sys/unix (see listen_linux.go),
	// since net.ListenConfig cannot pass a backlog through to listen(2).
	// Linux-only; ignored on other platforms (listen_other.go).
	ListenBacklog int

	// Log is the optional structured logger hook; nil disables logging.
	Log liblog.FuncLog
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	n := runtime.NumCPU() * socket.ThreadsPerProc
	if n <= 0 {
		n = 1
	}
	return n
}

func (c Config) queueDepth() int {
	if c.QueueDepth > 0 {
		return c.QueueDepth
	}
	return c.workers() * 64
}

func (c Config) poolCapacity() int {
	if c.PoolCapacity > 0 {
		return c.PoolCapacity
	}
	return socket.DefaultPoolCap
}

func (c Config) reuseCapacity() int {
	if c.ReuseCapacity > 0 {
		return c.ReuseCapacity
	}
	return socket.MaxUnusedSocket
}

func (c Config) isbFactor() int64 {
	if c.ISBFactor > 0 {
		return c.ISBFactor
	}
	return socket.DefaultISBFactor
}
