// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objparse

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const infoPDF = `%PDF-1.4
1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj
2 0 obj << /Type /Pages /Kids [] /Count 0 >> endobj
3 0 obj << /Title (  Hello  ) /Producer <FEFF00480069> /Author 7 >> endobj
4 0 obj << /Length 3 /Filter /ASCIIHexDecode >>
stream
414
endstream
endobj
trailer << /Size 5 /Root 1 0 R /Info 3 0 R >>
startxref
0
`

func TestSummarize(t *testing.T) {
	doc, err := parseDocument(t, infoPDF, Strict)
	require.NoError(t, err)

	s := doc.Summarize()
	assert.Equal(t, "1.4", s.Version)
	assert.Equal(t, 4, s.Objects)
	assert.Equal(t, 1, s.Streams)
	assert.Equal(t, 1, s.Trailers)
	assert.Equal(t, "0", s.StartXRef)
	assert.Equal(t, int64(5), s.Size)
	assert.Equal(t, "1 0 R", s.Root)
	assert.Equal(t, map[string]int{"Catalog": 1, "Pages": 1}, s.Types)
	assert.Equal(t, map[string]int{"ASCIIHexDecode": 1}, s.Filters)
	assert.False(t, s.Encrypted)
	assert.Nil(t, s.AccessPermission)

	require.NotNil(t, s.Info)
	assert.Equal(t, "Hello", s.Info.Title)
	assert.Equal(t, "Hi", s.Info.Producer)
	assert.Empty(t, s.Info.Author, "non-text entries are ignored")
}

func TestSummarize_Encrypted(t *testing.T) {
	src := "trailer << /Size 1 /Encrypt << /Filter /Standard /P 4 >> >> startxref 0"
	doc, err := parseDocument(t, src, Strict)
	require.NoError(t, err)

	s := doc.Summarize()
	assert.True(t, s.Encrypted)
	require.NotNil(t, s.AccessPermission)
	assert.Equal(t, AccessPermission{CanPrint: true, CanPrintFaithful: true}, *s.AccessPermission)
	assert.Nil(t, s.Info)
}

func TestAccessPermissions(t *testing.T) {
	all := accessPermissions(0xFFFFFFFC)
	assert.Equal(t, AccessPermission{
		CanPrint:                true,
		CanPrintFaithful:        true,
		CanModify:               true,
		ExtractContent:          true,
		ModifyAnnotations:       true,
		FillInForm:              true,
		ExtractForAccessibility: true,
		AssembleDocument:        true,
	}, all)

	formsOnly := accessPermissions(1 << 8)
	assert.True(t, formsOnly.FillInForm)
	assert.False(t, formsOnly.ModifyAnnotations)
	assert.False(t, formsOnly.CanPrint)
}

func TestSummaryJSON(t *testing.T) {
	src := "%PDF-1.5\n1 0 obj ) endobj\n2 0 obj << /Type /Catalog >> endobj"
	doc, err := parseDocument(t, src, BestEffort)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.SummaryJSON(&buf))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "1.5", got["version"])
	assert.Equal(t, float64(1), got["objects"])
	assert.Equal(t, map[string]any{"Catalog": float64(1)}, got["types"])
	assert.Len(t, got["errors"], 1)
	assert.NotContains(t, got, "info")
}
