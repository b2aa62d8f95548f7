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
	"sync/atomic"
	"time"

	"github/sabouaram/tcpmgr/socket"
	"github/sabouaram/tcpmgr/socket/hostparam"
)

// timeWaitValue is each Manager's handle on the process-wide TIME_WAIT
// delay, in milliseconds, held in processTimeWaitMs and shared by every
// Manager in the process; spec.md §4.5. It is resolved at each Manager's
// construction from a hostparam.Source and may subsequently double on
// sustained reuse pressure (Open Question, resolved: the backoff is global,
// not per-socket, since the underlying kernel TIME_WAIT behaviour it
// approximates is itself a host-wide setting).
type timeWaitValue struct{}

var processTimeWaitMs atomic.Int64

// selectTimeWaitValue returns the default when the parameter is absent and
// the maximum on any other read error.
func selectTimeWaitValue(src hostparam.Source) int64 {
	if src == nil {
		return socket.DefaultTimeWaitValue
	}

	v, found, err := src.GetUint32(hostparam.TimeWaitDelayParam)
	if err != nil {
		return socket.MaxTimeWaitValue
	}
	if !found {
		return socket.DefaultTimeWaitValue
	}

	ms := int64(v)
	if ms < socket.MinTimeWaitValue {
		return socket.MinTimeWaitValue
	}
	if ms > socket.MaxTimeWaitValue {
		return socket.MaxTimeWaitValue
	}
	return ms
}

func (t *timeWaitValue) init(src hostparam.Source) {
	processTimeWaitMs.Store(selectTimeWaitValue(src))
}

// Duration returns the current TIME_WAIT delay as a time.Duration.
func (t *timeWaitValue) Duration() time.Duration {
	return time.Duration(processTimeWaitMs.Load()) * time.Millisecond
}

// Backoff doubles the delay, clamped to socket.MaxTimeWaitValue; called both
// when the reuse queue is rejecting sockets faster than TIME_WAIT drains it,
// and on an address-in-use connect retry (spec.md §4.3).
func (t *timeWaitValue) Backoff() {
	for {
		cur := processTimeWaitMs.Load()
		next := cur * 2
		if next > socket.MaxTimeWaitValue || next <= 0 {
			next = socket.MaxTimeWaitValue
		}
		if processTimeWaitMs.CompareAndSwap(cur, next) {
			return
		}
	}
}
