// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlateDecoder(t *testing.T) {
	content := strings.Repeat("0 0 m 100 100 l S\n", 50)
	compressed := deflate(t, content)

	out, err := FlateDecoder{}.Decode(compressed)
	require.NoError(t, err)
	assert.Equal(t, content, string(out))

	out, err = FlateDecoder{MaxOutput: int64(len(content))}.Decode(compressed)
	require.NoError(t, err)
	assert.Len(t, out, len(content))
}

func TestFlateDecoder_Errors(t *testing.T) {
	compressed := deflate(t, strings.Repeat("x", 1000))

	_, err := FlateDecoder{MaxOutput: 100}.Decode(compressed)
	assert.ErrorContains(t, err, "exceeds 100 bytes")

	_, err = FlateDecoder{}.Decode([]byte("not zlib at all"))
	assert.ErrorContains(t, err, "inflate")

	truncated := compressed[:len(compressed)/2]
	_, err = FlateDecoder{}.Decode(truncated)
	assert.Error(t, err)
}
