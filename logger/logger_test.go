// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sassoftware/pdf-objparse/tracer"
)

type entry struct {
	level LogLevel
	msg   string
	kv    []interface{}
}

func capture(t *testing.T) *[]entry {
	t.Helper()
	var got []entry
	SetLogger(func(level LogLevel, msg string, keyvals ...interface{}) {
		got = append(got, entry{level, msg, keyvals})
	})
	t.Cleanup(func() {
		SetLogger(func(LogLevel, string, ...interface{}) {})
		SetDebug(false)
		tracer.Reset()
	})
	return &got
}

func TestDebugGatedBySetDebug(t *testing.T) {
	got := capture(t)

	SetDebug(false)
	Debug("hidden")
	assert.Empty(t, *got)

	SetDebug(true)
	Debug("shown", "offset", 12)
	if assert.Len(t, *got, 1) {
		assert.Equal(t, DebugLevel, (*got)[0].level)
		assert.Equal(t, "shown", (*got)[0].msg)
		assert.Equal(t, []interface{}{"offset", 12}, (*got)[0].kv)
	}
}

func TestDebugTraceFlag(t *testing.T) {
	capture(t)
	tracer.Reset()

	Debug("traced", "obj", 3, true)
	Debug("untraced", "obj", 4)

	assert.Equal(t, []string{`msg="traced" obj=3`}, tracer.Messages())
}

func TestInfoAndError(t *testing.T) {
	got := capture(t)

	Info("started")
	Error("failed", "err", "boom")

	if assert.Len(t, *got, 2) {
		assert.Equal(t, InfoLevel, (*got)[0].level)
		assert.Equal(t, ErrorLevel, (*got)[1].level)
	}
}

func TestSetLoggerIgnoresNil(t *testing.T) {
	got := capture(t)
	SetLogger(nil)
	Error("still captured")
	assert.Len(t, *got, 1)
}

func TestTextLogFunc(t *testing.T) {
	var buf bytes.Buffer
	f := TextLogFunc(&buf)

	f(ErrorLevel, "parse failed", "offset", 42, "dangling")

	assert.Equal(t, "level=error msg=\"parse failed\" offset=42 dangling=(missing)\n", buf.String())
}
