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

package socket

import "github/sabouaram/tcpmgr/errors"

const (
	ErrorInvalidAddress errors.CodeError = iota + errors.MinPkgSocket
	ErrorInvalidState
	ErrorNotReady
	ErrorWrongManagerType
	ErrorSocketNotFound
	ErrorBackpressure
	ErrorListenerAlreadySet
	ErrorPostFailed
	ErrorConstructionFailed
	ErrorReuseQueueFull
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorInvalidAddress)
	errors.RegisterIdFctMessage(ErrorInvalidAddress, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UnknownError:
		return ""
	case ErrorInvalidAddress:
		return "socket: invalid or empty address"
	case ErrorInvalidState:
		return "socket: operation not valid in current state"
	case ErrorNotReady:
		return "socket: manager is not ready"
	case ErrorWrongManagerType:
		return "socket: operation not valid for this manager type"
	case ErrorSocketNotFound:
		return "socket: id not found in registry"
	case ErrorBackpressure:
		return "socket: send would exceed max pending bytes"
	case ErrorListenerAlreadySet:
		return "socket: manager already has a listener"
	case ErrorPostFailed:
		return "socket: failed to post asynchronous operation"
	case ErrorConstructionFailed:
		return "socket: manager construction step failed"
	case ErrorReuseQueueFull:
		return "socket: reuse queue is at capacity"
	}

	return ""
}
