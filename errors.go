// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objparse

import (
	"errors"
	"strconv"
)

var (
	// ErrUnexpectedEOF reports input ending inside an unterminated construct.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	// ErrScanLimit reports a token longer than Config.MaxScanLength.
	ErrScanLimit = errors.New("scan limit exceeded")
)

// LexicalError reports a construct the tokenizer (or the parser, for arrays
// and dictionaries) could not close.
type LexicalError struct {
	Construct string
	Offset    int64
	Err       error
}

func (err *LexicalError) Error() string {
	msg := "lexical error in " + err.Construct
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg + at(err.Offset)
}

func (err *LexicalError) Unwrap() error {
	return err.Err
}

// StructuralError reports a token that does not fit the grammar at its
// position.
type StructuralError struct {
	Expected string
	Found    string
	Offset   int64
}

func (err *StructuralError) Error() string {
	return "expected " + err.Expected + ", found " + err.Found + at(err.Offset)
}

// CodecError reports a stream payload that could not be decoded with its
// declared filter.
type CodecError struct {
	Filter string
	Err    error
}

func (err *CodecError) Error() string {
	msg := "cannot decode " + err.Filter + " stream"
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *CodecError) Unwrap() error {
	return err.Err
}

func at(offset int64) string {
	if offset < 0 {
		return ""
	}
	return " (at byte " + strconv.FormatInt(offset, 10) + ")"
}

// unexpected builds a StructuralError from the token actually observed.
// A nil tok means end of input.
func unexpected(expected string, tok *Token, offset int64) *StructuralError {
	if tok == nil {
		return &StructuralError{Expected: expected, Found: "end of input", Offset: offset}
	}
	return &StructuralError{Expected: expected, Found: tok.String(), Offset: tok.Offset}
}
