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

// Package isb estimates the ideal send backlog for a connected TCP socket;
// spec.md §3's "max-pending-bytes-sent" is derived from it. Windows exposes
// this directly via SIO_IDEAL_SEND_BACKLOG_QUERY; the nearest Linux
// equivalent multiplies the kernel's current congestion window by the
// negotiated segment size, both read from TCP_INFO.
package isb

import "net"

// Provider estimates the ideal send backlog, in bytes, for a connected TCP
// socket. Implementations must be safe to call repeatedly over the
// connection's lifetime: congestion window size changes as the connection's
// throughput characteristics change, so spec.md §4.4 has the dispatcher
// re-query on every OpISBChange completion, not just once at connect time.
type Provider interface {
	Query(conn net.Conn) (bytes int64, err error)
}

// Estimate multiplies a Provider's raw query result by factor and clamps the
// result to at least fallback, matching spec.md §3's
// "max-pending-bytes-sent = ISB * factor, never below the configured
// default". On query failure the default alone is returned, per spec.md
// §4.4's fallback path.
func Estimate(p Provider, conn net.Conn, factor int64, fallback int64) int64 {
	if factor <= 0 {
		factor = 1
	}

	raw, err := p.Query(conn)
	if err != nil || raw <= 0 {
		return fallback
	}

	v := raw * factor
	if v < fallback {
		return fallback
	}
	return v
}
