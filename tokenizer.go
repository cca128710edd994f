// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objparse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// lookahead is the number of tokens a Tokenizer can hold back. Two are
// enough to tell "n g R" from a literal number.
const lookahead = 2

const (
	streamKeyword    = "stream"
	endstreamKeyword = "endstream"
	versionMarker    = "%PDF-"
)

// Tokenizer turns the symbols of a Cursor into Tokens. It is not safe for
// concurrent use.
type Tokenizer struct {
	cur     *Cursor
	pending []Token
	err     error
	maxScan int
}

// NewTokenizer returns a Tokenizer reading from r. A nil cfg selects the
// default configuration.
func NewTokenizer(r io.Reader, cfg *Config) *Tokenizer {
	cfg = orDefault(cfg)
	return &Tokenizer{
		cur:     NewCursor(r),
		pending: make([]Token, 0, lookahead),
		maxScan: cfg.MaxScanLength,
	}
}

// NextToken consumes and returns the next token. At the end of input it
// returns io.EOF. Lexical errors are sticky.
func (t *Tokenizer) NextToken() (Token, error) {
	if len(t.pending) > 0 {
		tok := t.pending[0]
		n := copy(t.pending, t.pending[1:])
		t.pending = t.pending[:n]
		return tok, nil
	}
	return t.scan()
}

// PeekToken returns the next token without consuming it.
func (t *Tokenizer) PeekToken() (Token, error) {
	return t.PeekTokenAt(0)
}

// PeekTokenAt returns the token i positions ahead without consuming
// anything. i must be smaller than the lookahead capacity of 2.
func (t *Tokenizer) PeekTokenAt(i int) (Token, error) {
	if i < 0 || i >= lookahead {
		return Token{}, fmt.Errorf("peek distance %d outside lookahead of %d tokens", i, lookahead)
	}
	for len(t.pending) <= i {
		tok, err := t.scan()
		if err != nil {
			return Token{}, err
		}
		t.pending = append(t.pending, tok)
	}
	return t.pending[i], nil
}

// Offset returns the input position of the next unconsumed token.
func (t *Tokenizer) Offset() int64 {
	if len(t.pending) > 0 {
		return t.pending[0].Offset
	}
	return t.cur.Offset()
}

func (t *Tokenizer) scan() (Token, error) {
	if t.err != nil {
		return Token{}, t.err
	}
	tok, err := t.lex()
	if err != nil && !errors.Is(err, io.EOF) {
		t.err = err
	}
	return tok, err
}

func (t *Tokenizer) lex() (Token, error) {
	c := t.cur
	for {
		t.skipWhitespace()
		if c.Current() != '%' {
			break
		}
		if c.HasPrefix(versionMarker) {
			return t.readVersion()
		}
		t.skipComment()
	}

	start := c.Offset()
	ch := c.Current()
	switch {
	case ch == EOF:
		if err := c.Err(); err != nil {
			return Token{}, &LexicalError{Construct: "input", Offset: start, Err: err}
		}
		return Token{}, io.EOF
	case ch == '<' && c.Peek() != '<':
		return t.readHexString()
	case ch == '(':
		return t.readStringLiteral()
	case t.atStreamKeyword():
		return t.readStream()
	case isDigit(ch) || ch == '+' || ch == '-' || (ch == '.' && isDigit(c.Peek())):
		return t.readNumber()
	case ch == '/':
		return t.readName()
	case ch == '<':
		c.AdvanceN(2)
		return Token{Kind: TokenDictStart, Text: "<<", Offset: start}, nil
	case ch == '>' && c.Peek() == '>':
		c.AdvanceN(2)
		return Token{Kind: TokenDictEnd, Text: ">>", Offset: start}, nil
	case ch == '[':
		c.Advance()
		return Token{Kind: TokenArrayStart, Text: "[", Offset: start}, nil
	case ch == ']':
		c.Advance()
		return Token{Kind: TokenArrayEnd, Text: "]", Offset: start}, nil
	}
	return t.readOperator()
}

func (t *Tokenizer) skipWhitespace() {
	for isWhitespace(t.cur.Current()) {
		t.cur.Advance()
	}
}

func (t *Tokenizer) skipComment() {
	for {
		ch := t.cur.Current()
		if ch == EOF || ch == '\n' || ch == '\r' {
			return
		}
		t.cur.Advance()
	}
}

// readVersion reads a "%PDF-x.y" header. The leading '%' is dropped.
func (t *Tokenizer) readVersion() (Token, error) {
	start := t.cur.Offset()
	t.cur.Advance()
	text, err := t.collect("version", start, func(ch int) bool { return !isWhitespace(ch) })
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: TokenVersion, Text: text, Offset: start}, nil
}

func (t *Tokenizer) readHexString() (Token, error) {
	c := t.cur
	start := c.Offset()
	c.Advance()
	var buf bytes.Buffer
	for {
		ch := c.Current()
		if ch == EOF {
			return Token{}, t.truncated("hex string", start)
		}
		c.Advance()
		if ch == '>' {
			break
		}
		buf.WriteByte(byte(ch))
		if err := t.checkLen(buf.Len(), "hex string", start); err != nil {
			return Token{}, err
		}
	}
	return Token{Kind: TokenHexString, Text: buf.String(), Offset: start}, nil
}

// readStringLiteral reads a parenthesized string. Unescaped parentheses nest;
// a backslash protects the following symbol. Escape sequences are kept
// verbatim in the token text.
func (t *Tokenizer) readStringLiteral() (Token, error) {
	c := t.cur
	start := c.Offset()
	c.Advance()
	var buf bytes.Buffer
	depth := 1
	for {
		ch := c.Current()
		if ch == EOF {
			return Token{}, t.truncated("string literal", start)
		}
		c.Advance()
		switch ch {
		case '\\':
			next := c.Current()
			if next == EOF {
				return Token{}, t.truncated("string literal", start)
			}
			c.Advance()
			buf.WriteByte('\\')
			buf.WriteByte(byte(next))
			continue
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 {
			break
		}
		buf.WriteByte(byte(ch))
		if err := t.checkLen(buf.Len(), "string literal", start); err != nil {
			return Token{}, err
		}
	}
	return Token{Kind: TokenStringLiteral, Text: buf.String(), Offset: start}, nil
}

func (t *Tokenizer) atStreamKeyword() bool {
	if !t.cur.HasPrefix(streamKeyword) {
		return false
	}
	after := t.cur.PeekN(len(streamKeyword))
	return after == EOF || isWhitespace(after)
}

// readStream reads the raw payload between "stream" and "endstream". The
// end-of-line after the keyword is skipped; the one before "endstream" is
// left in the payload.
func (t *Tokenizer) readStream() (Token, error) {
	c := t.cur
	start := c.Offset()
	c.AdvanceN(len(streamKeyword))
	for c.Current() == ' ' || c.Current() == '\t' {
		c.Advance()
	}
	if c.Current() == '\r' {
		c.Advance()
	}
	if c.Current() == '\n' {
		c.Advance()
	}

	var buf bytes.Buffer
	for !c.HasPrefix(endstreamKeyword) {
		ch := c.Current()
		if ch == EOF {
			return Token{}, t.truncated("stream", start)
		}
		buf.WriteByte(byte(ch))
		c.Advance()
		if err := t.checkLen(buf.Len(), "stream", start); err != nil {
			return Token{}, err
		}
	}
	c.AdvanceN(len(endstreamKeyword))
	return Token{Kind: TokenStreamData, Data: buf.Bytes(), Offset: start}, nil
}

func (t *Tokenizer) readNumber() (Token, error) {
	start := t.cur.Offset()
	text, err := t.collect("number", start, isNumberSymbol)
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: TokenNumber, Text: text, Offset: start}, nil
}

func (t *Tokenizer) readName() (Token, error) {
	start := t.cur.Offset()
	t.cur.Advance()
	text, err := t.collect("name", start, isRegular)
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: TokenName, Text: text, Offset: start}, nil
}

func (t *Tokenizer) readOperator() (Token, error) {
	c := t.cur
	start := c.Offset()
	text, err := t.collect("operator", start, isRegular)
	if err != nil {
		return Token{}, err
	}
	if text == "" {
		ch := c.Current()
		if ch == EOF {
			return Token{}, io.EOF
		}
		// stray delimiter, left for the parser to reject
		c.Advance()
		text = string(rune(ch))
	}
	if text == "true" || text == "false" {
		return Token{Kind: TokenBoolean, Text: text, Offset: start}, nil
	}
	return Token{Kind: TokenOperator, Text: text, Offset: start}, nil
}

// collect consumes symbols while accept reports true.
func (t *Tokenizer) collect(construct string, start int64, accept func(int) bool) (string, error) {
	c := t.cur
	var buf bytes.Buffer
	for {
		ch := c.Current()
		if ch == EOF || !accept(ch) {
			break
		}
		buf.WriteByte(byte(ch))
		c.Advance()
		if err := t.checkLen(buf.Len(), construct, start); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (t *Tokenizer) checkLen(n int, construct string, start int64) error {
	if t.maxScan > 0 && n > t.maxScan {
		return &LexicalError{Construct: construct, Offset: start, Err: ErrScanLimit}
	}
	return nil
}

func (t *Tokenizer) truncated(construct string, start int64) error {
	err := t.cur.Err()
	if err == nil {
		err = ErrUnexpectedEOF
	}
	return &LexicalError{Construct: construct, Offset: start, Err: err}
}

// isWhitespace reports PDF white-space: NUL, TAB, LF, FF, CR and SPACE.
func isWhitespace(ch int) bool {
	switch ch {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelimiter(ch int) bool {
	switch ch {
	case '{', '}', '[', ']', '(', ')', '/', '<', '>':
		return true
	}
	return false
}

// isRegular reports symbols that may appear in names and bare keywords.
func isRegular(ch int) bool {
	return !isWhitespace(ch) && !isDelimiter(ch)
}

func isDigit(ch int) bool {
	return ch >= '0' && ch <= '9'
}

func isNumberSymbol(ch int) bool {
	return isDigit(ch) || ch == '.' || ch == 'e' || ch == 'E' || ch == '+' || ch == '-'
}
