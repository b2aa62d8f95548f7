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

// Package hostparam abstracts the host-level TCP parameter store the
// manager consults when selecting TimeWaitValue; spec.md §4.5 "read once at
// construction from a host parameter source, analogous to the Windows
// registry's TcpTimedWaitDelay". The store itself is out of scope; only the
// read interface is specified.
package hostparam

// Source reads unsigned 32-bit host TCP parameters by name. found is false
// when the parameter is absent, in which case callers fall back to
// socket.DefaultTimeWaitValue; spec.md §4.5.
type Source interface {
	GetUint32(name string) (value uint32, found bool, err error)
}

// TimeWaitDelayParam is the parameter name used to look up the host's
// analogue of TcpTimedWaitDelay.
const TimeWaitDelayParam = "TcpTimedWaitDelay"
