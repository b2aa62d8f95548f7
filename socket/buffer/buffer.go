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

// Package buffer implements the fixed-size recyclable I/O buffer and its
// pool, standing in for the overlapped-descriptor-plus-byte-array pair
// posted to the completion port in spec.md §3's "Buffer" record.
package buffer

import (
	"github/sabouaram/tcpmgr/socket"
)

// Buffer is one posted I/O unit. Result carries the outcome of the
// asynchronous operation it was posted for, replacing the overlapped
// structure's completion fields; spec.md §3 "result: delivered
// asynchronously, never polled".
type Buffer struct {
	Payload [socket.DefaultBufferSize]byte
	Length  int
	Op      socket.Op
	Target  socket.Identifier
	Result  chan Result
}

// Result is what a completion worker posts back once the operating system
// finishes the operation a Buffer was submitted for.
type Result struct {
	N    int
	Err  error
	Addr string
	Port uint16
}

func newBuffer() *Buffer {
	return &Buffer{
		Result: make(chan Result, 1),
	}
}

func (b *Buffer) reset() {
	b.Length = 0
	b.Op = socket.OpRead
	b.Target = socket.NilIdentifier
	for len(b.Result) > 0 {
		<-b.Result
	}
}
