// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objparse

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalPDF = `%PDF-1.7
%âãÏÓ
1 0 obj
<< /Type /Catalog /Pages 2 0 R >>
endobj
2 0 obj
<< /Type /Pages /Kids [3 0 R] /Count 1 >>
endobj
3 0 obj
<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>
endobj
xref
0 4
0000000000 65535 f 
0000000015 00000 n 
0000000064 00000 n 
0000000121 00000 n 
trailer
<< /Size 4 /Root 1 0 R >>
startxref
196
%%EOF
`

func parseDocument(t *testing.T, src string, mode ParsingMode) (*Document, error) {
	t.Helper()
	cfg := NewDefaultConfig()
	cfg.ParsingMode = mode
	return Parse(context.Background(), strings.NewReader(src), cfg)
}

func TestParse_MinimalDocument(t *testing.T) {
	doc, err := parseDocument(t, minimalPDF, Strict)
	require.NoError(t, err)

	assert.Equal(t, "1.7", doc.Version)
	require.Len(t, doc.Objects, 3)
	require.Len(t, doc.XRefTables, 1)
	require.Len(t, doc.Trailers, 1)
	assert.Empty(t, doc.Errors)
	assert.Equal(t, "196", doc.StartXRef)

	assert.Equal(t, 4, doc.XRefTables[0].TotalObjects)
	assert.Len(t, doc.XRefTables[0].Subsections, 4)

	root, ok := doc.Trailer().Root()
	require.True(t, ok)
	catalog, ok := doc.Lookup(root)
	require.True(t, ok)
	assert.Equal(t, Dictionary{"Type": Name("Catalog"), "Pages": IndirectReference{ObjectNumber: 2}}, catalog)

	_, ok = doc.Lookup(IndirectReference{ObjectNumber: 3, Generation: 1})
	assert.False(t, ok)
}

func TestParse_BestEffortSkipsBrokenObjects(t *testing.T) {
	src := "1 0 obj (a) endobj\n2 0 obj ] endobj\n3 0 obj 42 endobj\n"
	doc, err := parseDocument(t, src, BestEffort)
	require.NoError(t, err)

	require.Len(t, doc.Objects, 2)
	assert.Equal(t, 1, doc.Objects[0].ObjectNumber)
	assert.Equal(t, 3, doc.Objects[1].ObjectNumber)
	assert.Equal(t, Number("42"), doc.Objects[1].Value)

	require.Len(t, doc.Errors, 1)
	var serr *StructuralError
	require.ErrorAs(t, doc.Errors[0], &serr)
	assert.Equal(t, "value", serr.Expected)
	assert.Contains(t, doc.Errors[0].Error(), "indirect object at byte 19")
}

func TestParse_StrictStopsAtFirstError(t *testing.T) {
	src := "1 0 obj (a) endobj\n2 0 obj ] endobj\n3 0 obj 42 endobj\n"
	doc, err := parseDocument(t, src, Strict)

	var serr *StructuralError
	require.ErrorAs(t, err, &serr)
	require.NotNil(t, doc)
	assert.Len(t, doc.Objects, 1)
}

func TestParse_LexicalErrorEndsDocument(t *testing.T) {
	src := "1 0 obj (a) endobj\n2 0 obj (never closed endobj\n"
	doc, err := parseDocument(t, src, BestEffort)
	require.NoError(t, err)

	assert.Len(t, doc.Objects, 1)
	require.Len(t, doc.Errors, 1)
	assert.ErrorIs(t, doc.Errors[0], ErrUnexpectedEOF)
}

func TestParse_SkipsUnknownTokens(t *testing.T) {
	src := "garbage ) /Stray [ 1 0 obj null endobj"
	doc, err := parseDocument(t, src, Strict)
	require.NoError(t, err)
	require.Len(t, doc.Objects, 1)
	assert.Equal(t, Null{}, doc.Objects[0].Value)
}

func TestParse_StandaloneStartXRef(t *testing.T) {
	src := "%PDF-2.0\n1 0 obj << /Type /XRef >> endobj\nstartxref\n456\n%%EOF"
	doc, err := parseDocument(t, src, Strict)
	require.NoError(t, err)
	assert.Equal(t, "2.0", doc.Version)
	assert.Equal(t, "456", doc.StartXRef)
	assert.Empty(t, doc.Trailers)
	assert.Nil(t, doc.Trailer())
}

func TestParse_IncrementalUpdates(t *testing.T) {
	update := "1 0 obj << /Type /Catalog /Version /2.0 >> endobj\n" +
		"xref\n1 1\n0000000300 00000 n \ntrailer\n<< /Size 4 /Root 1 0 R /Prev 196 >>\nstartxref\n400\n%%EOF\n"
	doc, err := parseDocument(t, minimalPDF+update, Strict)
	require.NoError(t, err)

	assert.Len(t, doc.XRefTables, 2)
	assert.Len(t, doc.Trailers, 2)
	assert.Equal(t, "400", doc.StartXRef)

	catalog, ok := doc.Lookup(IndirectReference{ObjectNumber: 1})
	require.True(t, ok)
	assert.Equal(t, Name("2.0"), catalog.(Dictionary)["Version"], "later definition wins")
}

func TestParse_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc, err := Parse(ctx, strings.NewReader(minimalPDF), nil)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, doc)
	assert.Empty(t, doc.Objects)
}

func TestParse_EmptyInput(t *testing.T) {
	doc, err := Parse(context.Background(), strings.NewReader(""), nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Version)
	assert.Empty(t, doc.Objects)
}

func TestParse_CommentsInsideObjects(t *testing.T) {
	src := "%PDF-1.6\n1 0 obj\n<< /A 1 %Page marker comment\n/B 2 >>\n%Producer note\nendobj\n"
	doc, err := parseDocument(t, src, BestEffort)
	require.NoError(t, err)
	assert.Equal(t, "1.6", doc.Version)
	assert.Len(t, doc.Objects, 1)
	assert.Empty(t, doc.Errors)
}

// endlessString yields "1 0 obj (" followed by an unterminated string and
// cancels the context after a few reads.
type endlessString struct {
	cancel context.CancelFunc
	reads  int
}

func (e *endlessString) Read(p []byte) (int, error) {
	e.reads++
	if e.reads == 1 {
		return copy(p, "1 0 obj ("), nil
	}
	if e.reads == 4 {
		e.cancel()
	}
	for i := range p {
		p[i] = 'a'
	}
	return len(p), nil
}

func TestParse_CancelDuringLongScan(t *testing.T) {
	for _, mode := range []ParsingMode{Strict, BestEffort} {
		ctx, cancel := context.WithCancel(context.Background())
		r := &endlessString{cancel: cancel}

		cfg := NewDefaultConfig()
		cfg.ParsingMode = mode
		cfg.MaxScanLength = 0
		doc, err := Parse(ctx, r, cfg)
		assert.ErrorIs(t, err, context.Canceled, "mode %s", mode)
		require.NotNil(t, doc)
		assert.Empty(t, doc.Objects)
		assert.Less(t, r.reads, 10, "scan must stop soon after cancellation")
		cancel()
	}
}
