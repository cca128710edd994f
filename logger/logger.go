// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sassoftware/pdf-objparse/tracer"
)

// LogLevel represents log severity
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	ErrorLevel LogLevel = "error"
)

// LogFunc is a single logger function that handles all levels
type LogFunc func(level LogLevel, msg string, keyvals ...interface{})

var (
	mu      sync.RWMutex
	logFunc LogFunc = func(level LogLevel, msg string, keyvals ...interface{}) {}
	debugOn atomic.Bool
)

// SetLogger sets the global logger function. A nil f is ignored.
func SetLogger(f LogFunc) {
	if f == nil {
		return
	}
	mu.Lock()
	logFunc = f
	mu.Unlock()
}

// SetDebug switches debug output on or off.
func SetDebug(on bool) {
	debugOn.Store(on)
}

func current() LogFunc {
	mu.RLock()
	defer mu.RUnlock()
	return logFunc
}

// Debug logs a message at debug level.
// If the last keyvals element is a bool and true, the message is also recorded
// by the tracer, even when debug output is off.
func Debug(msg string, keyvals ...interface{}) {
	trace := false
	if len(keyvals) > 0 {
		if b, ok := keyvals[len(keyvals)-1].(bool); ok {
			trace = b
			keyvals = keyvals[:len(keyvals)-1]
		}
	}
	if debugOn.Load() {
		current()(DebugLevel, msg, keyvals...)
	}
	if trace {
		tracer.Log(format(msg, keyvals))
	}
}

// Info logs a message at info level
func Info(msg string, keyvals ...interface{}) {
	current()(InfoLevel, msg, keyvals...)
}

// Error logs a message at error level
func Error(msg string, keyvals ...interface{}) {
	current()(ErrorLevel, msg, keyvals...)
}

// TextLogFunc returns a LogFunc writing one "level=.. msg=.. key=value" line
// per call to w. Writes are serialized.
func TextLogFunc(w io.Writer) LogFunc {
	var wmu sync.Mutex
	return func(level LogLevel, msg string, keyvals ...interface{}) {
		line := "level=" + string(level) + " " + format(msg, keyvals) + "\n"
		wmu.Lock()
		defer wmu.Unlock()
		_, _ = io.WriteString(w, line)
	}
}

func format(msg string, keyvals []interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "msg=%q", msg)
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		if i+1 < len(keyvals) {
			fmt.Fprintf(&b, " %s=%v", key, keyvals[i+1])
		} else {
			fmt.Fprintf(&b, " %s=(missing)", key)
		}
	}
	return b.String()
}
