// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package tracer

import (
	"fmt"
	"io"
	"sync"
)

// MaxMessages caps the number of retained trace messages. Older messages are
// dropped first.
const MaxMessages = 4096

var (
	mu            sync.Mutex
	traceMessages []string
	dropped       int
)

// Log just adds a message to the trace log.
func Log(msg string) {
	mu.Lock()
	defer mu.Unlock()
	if len(traceMessages) >= MaxMessages {
		traceMessages = traceMessages[1:]
		dropped++
	}
	traceMessages = append(traceMessages, msg)
}

// Messages returns a copy of the accumulated trace log.
func Messages() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, len(traceMessages))
	copy(out, traceMessages)
	return out
}

// Flush writes the accumulated trace log to w and resets it.
func Flush(w io.Writer) error {
	mu.Lock()
	msgs, n := traceMessages, dropped
	traceMessages, dropped = nil, 0
	mu.Unlock()

	if n > 0 {
		if _, err := fmt.Fprintf(w, "(%d earlier trace messages dropped)\n", n); err != nil {
			return err
		}
	}
	for _, msg := range msgs {
		if _, err := fmt.Fprintln(w, msg); err != nil {
			return err
		}
	}
	return nil
}

// Reset discards the trace log.
func Reset() {
	mu.Lock()
	traceMessages, dropped = nil, 0
	mu.Unlock()
}
