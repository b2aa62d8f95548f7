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

package hostparam

import (
	"os"
	"strconv"
)

// EnvSource is the default, out-of-the-box Source: it looks up
// Prefix+name, with name used as given (no case conversion), as an
// environment variable; with the default prefix the TIME_WAIT parameter is
// read from TCP_TcpTimedWaitDelay. It exists so a
// Manager always has a working Source without forcing every caller to wire
// one, not as a substitute for a real host parameter store.
type EnvSource struct {
	Prefix string
}

// NewEnvSource builds an EnvSource using the conventional "TCP_" prefix.
func NewEnvSource() *EnvSource {
	return &EnvSource{Prefix: "TCP_"}
}

func (e *EnvSource) GetUint32(name string) (uint32, bool, error) {
	raw, ok := os.LookupEnv(e.Prefix + name)
	if !ok || raw == "" {
		return 0, false, nil
	}

	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false, err
	}
	return uint32(v), true, nil
}
