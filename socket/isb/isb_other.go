//go:build !linux

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
)

// ErrUnsupported is returned on platforms with no TCP_INFO-equivalent
// wired up; callers fall back to DefaultMaxPendingByteSent, same as a query
// failure on Linux.
var ErrUnsupported = errors.New("isb: no ideal-send-backlog source on this platform")

type portableProvider struct{}

// NewProvider returns a Provider that always reports ErrUnsupported,
// pushing every caller onto the fallback constant; spec.md §4.4's ISB
// query is allowed to fail, it is never required to succeed.
func NewProvider() Provider {
	return portableProvider{}
}

func (portableProvider) Query(net.Conn) (int64, error) {
	return 0, ErrUnsupported
}
