//go:build linux

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

package isb

import (
	"errors"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// ErrNotTCP is returned when Query is handed a connection whose underlying
// file descriptor cannot be reached, e.g. because it is not a *net.TCPConn.
var ErrNotTCP = errors.New("isb: connection does not expose a raw TCP file descriptor")

// linuxProvider queries tcpi_snd_cwnd * tcpi_snd_mss via getsockopt(TCP_INFO),
// the closest Linux analogue to Windows' SIO_IDEAL_SEND_BACKLOG_QUERY.
type linuxProvider struct{}

// NewProvider returns the platform ISB Provider for Linux.
func NewProvider() Provider {
	return linuxProvider{}
}

func (linuxProvider) Query(conn net.Conn) (int64, error) {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		return 0, ErrNotTCP
	}

	raw, err := sc.SyscallConn()
	if err != nil {
		return 0, err
	}

	var info *unix.TCPInfo
	var opErr error
	err = raw.Control(func(fd uintptr) {
		info, opErr = unix.GetsockoptTCPInfo(int(fd), unix.SOL_TCP, unix.TCP_INFO)
	})
	if err != nil {
		return 0, err
	}
	if opErr != nil {
		return 0, opErr
	}

	return int64(info.Snd_cwnd) * int64(info.Snd_mss), nil
}
