// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objparse

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Value is a parsed PDF value. The set of implementations is closed:
//
//	Null, Boolean, Number, StringLiteral, HexString, Name, Version,
//	Array, Dictionary, IndirectReference, StreamObject.
//
// String renders a value in PDF syntax. For every value except
// StreamObject, tokenizing and parsing that text yields the value again.
type Value interface {
	fmt.Stringer
	isValue()
}

type Null struct{}

type Boolean bool

// Number keeps the decimal text of a numeric token verbatim.
type Number string

// StringLiteral keeps the text between the outer parentheses verbatim,
// escape sequences included. Use Bytes or Text for the decoded contents.
type StringLiteral string

// HexString keeps the hex digits between the angle brackets verbatim.
type HexString string

type Name string

// Version is the document header without its leading '%', e.g. "PDF-1.7".
type Version string

type Array []Value

// Dictionary maps keys, written without the leading '/', to values.
type Dictionary map[string]Value

type IndirectReference struct {
	ObjectNumber int
	Generation   int
}

// StreamObject pairs a stream dictionary with its payload. Raw is the
// payload without the end-of-line that precedes "endstream". Decoded is set
// only when the declared filter was decoded.
type StreamObject struct {
	Dict    Dictionary
	Filter  string
	Raw     []byte
	Decoded []byte
}

func (Null) isValue()              {}
func (Boolean) isValue()           {}
func (Number) isValue()            {}
func (StringLiteral) isValue()     {}
func (HexString) isValue()         {}
func (Name) isValue()              {}
func (Version) isValue()           {}
func (Array) isValue()             {}
func (Dictionary) isValue()        {}
func (IndirectReference) isValue() {}
func (StreamObject) isValue()      {}

func (Null) String() string { return "null" }

func (b Boolean) String() string { return strconv.FormatBool(bool(b)) }

func (n Number) String() string { return string(n) }

// Int64 interprets n as an integer.
func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

// Float64 interprets n as a real number.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// IsInteger reports whether n is written without a fraction or exponent.
func (n Number) IsInteger() bool {
	_, err := n.Int64()
	return err == nil
}

func (s StringLiteral) String() string { return "(" + string(s) + ")" }

// Bytes returns the string contents with escape sequences resolved and
// end-of-line markers normalized to LF.
func (s StringLiteral) Bytes() []byte {
	raw := string(s)
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '\r' {
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
			out = append(out, '\n')
			continue
		}
		if c != '\\' || i+1 == len(raw) {
			out = append(out, c)
			continue
		}
		i++
		c = raw[i]
		switch c {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case '\r':
			// line continuation
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
		case '\n':
		case '0', '1', '2', '3', '4', '5', '6', '7':
			v := c - '0'
			for k := 0; k < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; k++ {
				i++
				v = v<<3 | (raw[i] - '0')
			}
			out = append(out, v)
		default:
			out = append(out, c)
		}
	}
	return out
}

// Text decodes the string as a PDF text string.
func (s StringLiteral) Text() (string, error) {
	return decodeText(s.Bytes())
}

func (h HexString) String() string { return "<" + string(h) + ">" }

// Bytes decodes the hex digits. White-space is ignored and a missing final
// digit is taken as 0.
func (h HexString) Bytes() ([]byte, error) {
	digits := strings.Map(func(r rune) rune {
		if r < 0x80 && isWhitespace(int(r)) {
			return -1
		}
		return r
	}, string(h))
	if len(digits)%2 == 1 {
		digits += "0"
	}
	return hex.DecodeString(digits)
}

// Text decodes the string as a PDF text string.
func (h HexString) Text() (string, error) {
	b, err := h.Bytes()
	if err != nil {
		return "", err
	}
	return decodeText(b)
}

func (n Name) String() string { return "/" + string(n) }

func (v Version) String() string { return "%" + string(v) }

// Number returns the version number, e.g. "1.7" for "PDF-1.7".
func (v Version) Number() string {
	return strings.TrimPrefix(string(v), "PDF-")
}

func (a Array) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = valueString(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (d Dictionary) String() string {
	var b strings.Builder
	b.WriteString("<<")
	for _, key := range d.Keys() {
		b.WriteString(" /")
		b.WriteString(key)
		b.WriteByte(' ')
		b.WriteString(valueString(d[key]))
	}
	b.WriteString(" >>")
	return b.String()
}

// Keys returns the dictionary keys in sorted order.
func (d Dictionary) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Name returns the value stored under key if it is a Name.
func (d Dictionary) Name(key string) (Name, bool) {
	n, ok := d[key].(Name)
	return n, ok
}

func (r IndirectReference) String() string {
	return strconv.Itoa(r.ObjectNumber) + " " + strconv.Itoa(r.Generation) + " R"
}

func (s StreamObject) String() string {
	return s.Dict.String() + " stream[" + strconv.Itoa(len(s.Raw)) + " bytes]"
}

// Data returns the decoded payload if there is one, else the raw payload.
func (s StreamObject) Data() []byte {
	if s.Decoded != nil {
		return s.Decoded
	}
	return s.Raw
}

func valueString(v Value) string {
	if v == nil {
		return "null"
	}
	return v.String()
}

var utf16BOM = []byte{0xFE, 0xFF}

// decodeText converts PDF text string bytes to UTF-8. Strings starting with
// the UTF-16BE byte order mark are UTF-16, all others are read as
// ISO 8859-1, the single-byte encoding of the surrounding document.
func decodeText(b []byte) (string, error) {
	if bytes.HasPrefix(b, utf16BOM) {
		out, err := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(b)
		return string(out), err
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	return string(out), err
}
