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

package hooksyslog

import (
	"context"
	"log/syslog"
	"os"
	"strings"
	"sync/atomic"

	logcfg "github/sabouaram/tcpmgr/logger/config"
	loglvl "github/sabouaram/tcpmgr/logger/level"
	logtps "github/sabouaram/tcpmgr/logger/types"
	"github.com/sirupsen/logrus"
)

// HookSyslog is a logrus hook that writes log entries to a syslog endpoint.
type HookSyslog interface {
	logtps.Hook
}

// New dials opt.Network/opt.Host (or the local syslog daemon when both are
// empty) with the facility from opt.Facility, and returns a hook that routes
// each logrus entry to the syslog.Writer method matching its level.
//
// opt.Network: "", "tcp", "udp", "unixgram", "unix". Empty implies local
// syslog via log/syslog's default /dev/log or /var/run/syslog discovery.
func New(opt logcfg.OptionsSyslog, format logrus.Formatter) (HookSyslog, error) {
	var lvls = make([]logrus.Level, 0)
	if len(opt.LogLevel) > 0 {
		for _, ls := range opt.LogLevel {
			lvls = append(lvls, loglvl.Parse(ls).Logrus())
		}
	} else {
		lvls = logrus.AllLevels
	}

	if opt.Tag == "" {
		opt.Tag = os.Args[0]
	}

	fac := MakeFacility(opt.Facility)

	var (
		w   *syslog.Writer
		err error
	)

	if opt.Network == "" && opt.Host == "" {
		w, err = syslog.New(syslog.Priority(PriorityCalc(fac, SeverityInfo)), opt.Tag)
	} else {
		w, err = syslog.Dial(opt.Network, opt.Host, syslog.Priority(PriorityCalc(fac, SeverityInfo)), opt.Tag)
	}
	if err != nil {
		return nil, err
	}

	n := &hks{
		w:                w,
		format:           format,
		levels:           lvls,
		disableStack:     opt.DisableStack,
		disableTimestamp: opt.DisableTimestamp,
		enableTrace:      opt.EnableTrace,
		enableAccessLog:  opt.EnableAccessLog,
	}
	n.running.Store(true)

	return n, nil
}

// hks implements HookSyslog over a *syslog.Writer; the mapping from logrus
// level to syslog severity picks the Writer method that carries it.
type hks struct {
	w                *syslog.Writer
	format           logrus.Formatter
	levels           []logrus.Level
	disableStack     bool
	disableTimestamp bool
	enableTrace      bool
	enableAccessLog  bool
	running          atomic.Bool
}

func (o *hks) Levels() []logrus.Level {
	return o.levels
}

func (o *hks) RegisterHook(log *logrus.Logger) {
	log.AddHook(o)
}

func (o *hks) Run(ctx context.Context) {
	<-ctx.Done()
	o.running.Store(false)
}

func (o *hks) IsRunning() bool {
	return o.running.Load()
}

func (o *hks) Write(p []byte) (int, error) {
	return o.w.Write(p)
}

func (o *hks) Close() error {
	o.running.Store(false)
	return o.w.Close()
}

func (o *hks) Fire(entry *logrus.Entry) error {
	ent := entry.Dup()
	ent.Level = entry.Level

	if o.disableStack {
		ent.Data = filterKey(ent.Data, logtps.FieldStack)
	}
	if o.disableTimestamp {
		ent.Data = filterKey(ent.Data, logtps.FieldTime)
	}
	if !o.enableTrace {
		ent.Data = filterKey(ent.Data, logtps.FieldCaller)
		ent.Data = filterKey(ent.Data, logtps.FieldFile)
		ent.Data = filterKey(ent.Data, logtps.FieldLine)
	}

	var (
		p []byte
		e error
	)

	if o.enableAccessLog {
		if len(entry.Message) < 1 {
			return nil
		}
		msg := entry.Message
		if !strings.HasSuffix(msg, "\n") {
			msg += "\n"
		}
		p = []byte(msg)
	} else {
		if len(ent.Data) < 1 {
			return nil
		}
		if o.format != nil {
			p, e = o.format.Format(ent)
		} else {
			p, e = ent.Bytes()
		}
		if e != nil {
			return e
		}
	}

	return o.writeSeverity(entry.Level, string(p))
}

func (o *hks) writeSeverity(lvl logrus.Level, msg string) error {
	switch lvl {
	case logrus.PanicLevel:
		return o.w.Emerg(msg)
	case logrus.FatalLevel:
		return o.w.Crit(msg)
	case logrus.ErrorLevel:
		return o.w.Err(msg)
	case logrus.WarnLevel:
		return o.w.Warning(msg)
	case logrus.InfoLevel:
		return o.w.Info(msg)
	default:
		return o.w.Debug(msg)
	}
}

func filterKey(f logrus.Fields, key string) logrus.Fields {
	if len(f) < 1 {
		return f
	}
	if _, ok := f[key]; ok {
		delete(f, key)
	}
	return f
}
