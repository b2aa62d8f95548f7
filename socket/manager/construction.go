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

// BuildState is a rung on the Manager construction ladder; spec.md §4.5
// "construction proceeds through an ordered sequence of steps, each of
// which must succeed before the next begins". It is exported so tests can
// assert a Manager stalled at a specific rung after an injected failure.
type BuildState uint8

const (
	NotInitialized BuildState = iota
	NetworkInitialized
	QueueInitialized
	WorkersInitialized
	ExtensionsInitialized
	TimeWaitSelected
	Ready
)

func (b BuildState) String() string {
	switch b {
	case NotInitialized:
		return "NOT_INITIALIZED"
	case NetworkInitialized:
		return "NETWORK_INITIALIZED"
	case QueueInitialized:
		return "QUEUE_INITIALIZED"
	case WorkersInitialized:
		return "WORKERS_INITIALIZED"
	case ExtensionsInitialized:
		return "EXTENSIONS_INITIALIZED"
	case TimeWaitSelected:
		return "TIME_WAIT_SELECTED"
	case Ready:
		return "READY"
	default:
		return "UNKNOWN"
	}
}
