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

package hookfile

import (
	"errors"
	"os"

	libiot "github/sabouaram/tcpmgr/ioutils"
	logcfg "github/sabouaram/tcpmgr/logger/config"
	loghkw "github/sabouaram/tcpmgr/logger/hookwriter"
	loglvl "github/sabouaram/tcpmgr/logger/level"
	logtps "github/sabouaram/tcpmgr/logger/types"
	"github.com/sirupsen/logrus"
)

var errMissingFilePath = errors.New("missing file path")

// HookFile is a logrus hook that writes log entries to a file.
type HookFile interface {
	logtps.Hook
}

// New opens opt.Filepath (creating the path and/or file as requested) and
// wraps it with logger/hookwriter, the same writer-backed hook used by
// hookstdout and hookstderr.
func New(opt logcfg.OptionsFile, format logrus.Formatter) (HookFile, error) {
	if opt.Filepath == "" {
		return nil, errMissingFilePath
	}

	var lvls = make([]logrus.Level, 0)
	if len(opt.LogLevel) > 0 {
		for _, ls := range opt.LogLevel {
			lvls = append(lvls, loglvl.Parse(ls).Logrus())
		}
	} else {
		lvls = logrus.AllLevels
	}

	if opt.FileMode == 0 {
		opt.FileMode = 0644
	}

	if opt.PathMode == 0 {
		opt.PathMode = 0755
	}

	if opt.CreatePath {
		if e := libiot.PathCheckCreate(true, opt.Filepath, opt.FileMode.FileMode(), opt.PathMode.FileMode()); e != nil {
			return nil, e
		}
	}

	flags := os.O_WRONLY | os.O_APPEND
	if opt.Create {
		flags |= os.O_CREATE
	}

	f, e := os.OpenFile(opt.Filepath, flags, opt.FileMode.FileMode())
	if e != nil {
		return nil, e
	}

	h, e := loghkw.New(f, &logcfg.OptionsStd{
		DisableStack:     opt.DisableStack,
		DisableTimestamp: opt.DisableTimestamp,
		EnableTrace:      opt.EnableTrace,
		EnableAccessLog:  opt.EnableAccessLog,
		DisableColor:     true,
	}, lvls, format)
	if e != nil {
		_ = f.Close()
		return nil, e
	}

	return &hkf{f: f, HookWriter: h}, nil
}

// hkf pairs the open file descriptor with the hookwriter.HookWriter doing the
// actual formatting and filtering, so Close releases the descriptor too.
type hkf struct {
	loghkw.HookWriter
	f *os.File
}

func (o *hkf) Close() error {
	_ = o.HookWriter.Close()
	return o.f.Close()
}
