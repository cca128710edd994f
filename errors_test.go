// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objparse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	lexErr := &LexicalError{Construct: "string literal", Offset: 3, Err: ErrUnexpectedEOF}
	assert.Equal(t, "lexical error in string literal: unexpected end of input (at byte 3)", lexErr.Error())
	assert.ErrorIs(t, lexErr, ErrUnexpectedEOF)

	tok := &Token{Kind: TokenOperator, Text: "endobj", Offset: 7}
	assert.Equal(t, `expected value, found Operator "endobj" (at byte 7)`, unexpected("value", tok, 0).Error())
	assert.Equal(t, "expected 'obj' keyword, found end of input (at byte 12)", unexpected("'obj' keyword", nil, 12).Error())

	inner := errors.New("checksum error")
	codecErr := &CodecError{Filter: FilterFlateDecode, Err: inner}
	assert.Equal(t, "cannot decode FlateDecode stream: checksum error", codecErr.Error())
	assert.ErrorIs(t, codecErr, inner)
}
