// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objparse

import (
	"bufio"
	"errors"
	"io"
)

// EOF is the symbol returned by a Cursor past the end of its input. It is
// distinct from every byte value.
const EOF = -1

const cursorBufSize = 4096

// Cursor exposes a byte source one symbol at a time, with lookahead that
// never moves the read position.
type Cursor struct {
	r   *bufio.Reader
	pos int64
	err error
}

// NewCursor returns a Cursor positioned at the first byte of r.
func NewCursor(r io.Reader) *Cursor {
	return &Cursor{r: bufio.NewReaderSize(r, cursorBufSize)}
}

// Current returns the symbol under the cursor, or EOF.
func (c *Cursor) Current() int {
	return c.PeekN(0)
}

// Peek returns the symbol after the current one without consuming anything.
func (c *Cursor) Peek() int {
	return c.PeekN(1)
}

// PeekN returns the symbol n positions after the current one.
func (c *Cursor) PeekN(n int) int {
	buf, err := c.r.Peek(n + 1)
	if len(buf) <= n {
		c.record(err)
		return EOF
	}
	return int(buf[n])
}

// PeekString returns the next n symbols, starting with the current one. The
// result is shorter than n near the end of input.
func (c *Cursor) PeekString(n int) string {
	buf, err := c.r.Peek(n)
	if len(buf) < n {
		c.record(err)
	}
	return string(buf)
}

// HasPrefix reports whether the input at the cursor starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	buf, err := c.r.Peek(len(s))
	if len(buf) < len(s) {
		c.record(err)
		return false
	}
	return string(buf) == s
}

// Advance moves forward one symbol. It is a no-op at the end of input.
func (c *Cursor) Advance() {
	c.AdvanceN(1)
}

// AdvanceN moves forward n symbols, stopping early at the end of input.
func (c *Cursor) AdvanceN(n int) {
	d, err := c.r.Discard(n)
	c.pos += int64(d)
	if d < n {
		c.record(err)
	}
}

// Offset returns the number of symbols consumed so far.
func (c *Cursor) Offset() int64 {
	return c.pos
}

// Err returns the first read error other than io.EOF.
func (c *Cursor) Err() error {
	return c.err
}

func (c *Cursor) record(err error) {
	if err == nil || c.err != nil {
		return
	}
	if errors.Is(err, io.EOF) || errors.Is(err, bufio.ErrBufferFull) {
		return
	}
	c.err = err
}
