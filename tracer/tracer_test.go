// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package tracer

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlush(t *testing.T) {
	Reset()
	Log("one")
	Log("two")

	var buf bytes.Buffer
	require.NoError(t, Flush(&buf))
	assert.Equal(t, "one\ntwo\n", buf.String())
	assert.Empty(t, Messages())
}

func TestLogDropsOldest(t *testing.T) {
	Reset()
	defer Reset()
	for i := 0; i < MaxMessages+2; i++ {
		Log(fmt.Sprint(i))
	}
	msgs := Messages()
	require.Len(t, msgs, MaxMessages)
	assert.Equal(t, "2", msgs[0])

	var buf bytes.Buffer
	require.NoError(t, Flush(&buf))
	assert.Contains(t, buf.String(), "(2 earlier trace messages dropped)")
}

func TestLogConcurrent(t *testing.T) {
	Reset()
	defer Reset()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				Log("x")
			}
		}()
	}
	wg.Wait()
	assert.Len(t, Messages(), 400)
}
