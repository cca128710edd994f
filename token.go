// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objparse

import (
	"fmt"
	"strconv"
)

// TokenKind classifies a lexical unit.
type TokenKind int

const (
	TokenVersion       TokenKind = iota // %PDF-1.7 header
	TokenBoolean                        // true, false
	TokenNumber                         // 12, -3.5, +.5
	TokenStringLiteral                  // (text)
	TokenHexString                      // <48656C6C6F>
	TokenName                           // /Type
	TokenArrayStart                     // [
	TokenArrayEnd                       // ]
	TokenDictStart                      // <<
	TokenDictEnd                        // >>
	TokenStreamData                     // stream ... endstream
	TokenOperator                       // obj, endobj, R, xref, trailer, startxref, n, f, ...
)

var kindNames = [...]string{
	TokenVersion:       "Version",
	TokenBoolean:       "Boolean",
	TokenNumber:        "Number",
	TokenStringLiteral: "StringLiteral",
	TokenHexString:     "HexString",
	TokenName:          "Name",
	TokenArrayStart:    "ArrayStart",
	TokenArrayEnd:      "ArrayEnd",
	TokenDictStart:     "DictStart",
	TokenDictEnd:       "DictEnd",
	TokenStreamData:    "StreamData",
	TokenOperator:      "Operator",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Token is a lexical unit. StreamData tokens carry Data, all other kinds
// carry Text.
type Token struct {
	Kind   TokenKind
	Text   string
	Data   []byte
	Offset int64 // position of the first symbol
}

// Is reports whether t has the given kind and text.
func (t Token) Is(kind TokenKind, text string) bool {
	return t.Kind == kind && t.Text == text
}

func (t Token) String() string {
	if t.Kind == TokenStreamData {
		return fmt.Sprintf("%v [%d bytes]", t.Kind, len(t.Data))
	}
	text := t.Text
	if len(text) > 32 {
		text = text[:32] + "..."
	}
	return fmt.Sprintf("%v %q", t.Kind, text)
}
