// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objparse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sassoftware/pdf-objparse/logger"
)

// Parser builds values from the tokens of a Tokenizer. A Parser and its
// Tokenizer belong to one document and must not be shared between
// goroutines.
type Parser struct {
	tok      *Tokenizer
	decoder  Decoder
	maxDepth int
	depth    int
}

// NewParser returns a parser reading from t. FlateDecode payloads are
// inflated with a FlateDecoder bounded by cfg.MaxDecodedSize. A nil cfg
// selects the default configuration.
func NewParser(t *Tokenizer, cfg *Config) *Parser {
	cfg = orDefault(cfg)
	depth := cfg.MaxNestingDepth
	if depth <= 0 {
		depth = NewDefaultConfig().MaxNestingDepth
	}
	return &Parser{
		tok:      t,
		decoder:  FlateDecoder{MaxOutput: cfg.MaxDecodedSize},
		maxDepth: depth,
	}
}

// SetDecoder replaces the decoder used for FlateDecode payloads.
func (p *Parser) SetDecoder(d Decoder) {
	p.decoder = d
}

// next consumes a token. At the end of input it returns a nil token and a
// nil error.
func (p *Parser) next() (*Token, error) {
	tok, err := p.tok.NextToken()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

// peek looks i tokens ahead, with the same end-of-input convention as next.
func (p *Parser) peek(i int) (*Token, error) {
	tok, err := p.tok.PeekTokenAt(i)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

// skip drops a token already inspected with peek.
func (p *Parser) skip() {
	_, _ = p.tok.NextToken()
}

// ParseIndirectObject parses "N G obj <value> endobj".
func (p *Parser) ParseIndirectObject() (*IndirectObject, error) {
	num, err := p.expectInteger("object number")
	if err != nil {
		return nil, err
	}
	gen, err := p.expectInteger("generation number")
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator("obj"); err != nil {
		return nil, err
	}
	v, err := p.ParseValue()
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator("endobj"); err != nil {
		return nil, err
	}
	logger.Debug(fmt.Sprintf("object: %d %d obj parsed (%T)", num, gen, v), true)
	return &IndirectObject{ObjectNumber: num, Generation: gen, Value: v}, nil
}

// ParseValue parses the next value. A dictionary followed by a stream body
// becomes a StreamObject.
func (p *Parser) ParseValue() (Value, error) {
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, unexpected("value", nil, p.tok.Offset())
	}
	switch tok.Kind {
	case TokenNumber:
		return p.parseNumber()
	case TokenStringLiteral:
		p.skip()
		return StringLiteral(tok.Text), nil
	case TokenHexString:
		p.skip()
		return HexString(tok.Text), nil
	case TokenName:
		p.skip()
		return Name(tok.Text), nil
	case TokenBoolean:
		p.skip()
		return Boolean(tok.Text == "true"), nil
	case TokenVersion:
		p.skip()
		return Version(tok.Text), nil
	case TokenArrayStart:
		return p.parseArray()
	case TokenDictStart:
		return p.parseDictionary()
	case TokenOperator:
		if tok.Text == "null" {
			p.skip()
			return Null{}, nil
		}
	}
	return nil, unexpected("value", tok, 0)
}

// parseNumber tells a literal number from an indirect reference. The first
// number is consumed; the reference case needs a Number and an "R" operator
// in the two pending tokens, and anything else stays pending.
func (p *Parser) parseNumber() (Value, error) {
	first, err := p.next()
	if err != nil {
		return nil, err
	}
	if _, err := strconv.ParseFloat(first.Text, 64); err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, unexpected("number", first, 0)
	}

	second, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	if second == nil || second.Kind != TokenNumber {
		return Number(first.Text), nil
	}
	third, err := p.peek(1)
	if err != nil {
		return nil, err
	}
	if third == nil || !third.Is(TokenOperator, "R") {
		return Number(first.Text), nil
	}

	num, ok := nonNegative(first.Text)
	if !ok {
		return nil, unexpected("object number of reference", first, 0)
	}
	gen, ok := nonNegative(second.Text)
	if !ok {
		return nil, unexpected("generation number of reference", second, 0)
	}
	p.skip()
	p.skip()
	return IndirectReference{ObjectNumber: num, Generation: gen}, nil
}

func (p *Parser) parseArray() (Value, error) {
	open, err := p.next()
	if err != nil {
		return nil, err
	}
	if err := p.enter(open); err != nil {
		return nil, err
	}
	defer p.leave()

	arr := Array{}
	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return nil, &LexicalError{Construct: "array", Offset: open.Offset, Err: ErrUnexpectedEOF}
		}
		if tok.Kind == TokenArrayEnd {
			p.skip()
			return arr, nil
		}
		v, err := p.ParseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// parseDictionary parses a dictionary and, if a stream body follows, the
// stream.
func (p *Parser) parseDictionary() (Value, error) {
	dict, err := p.readDictionary()
	if err != nil {
		return nil, err
	}
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	if tok != nil && tok.Kind == TokenStreamData {
		return p.parseStream(dict)
	}
	return dict, nil
}

// readDictionary parses "<< /Key value ... >>". A repeated key keeps the
// last value.
func (p *Parser) readDictionary() (Dictionary, error) {
	open, err := p.next()
	if err != nil {
		return nil, err
	}
	if open == nil || open.Kind != TokenDictStart {
		return nil, unexpected("dictionary start '<<'", open, p.tok.Offset())
	}
	if err := p.enter(open); err != nil {
		return nil, err
	}
	defer p.leave()

	dict := Dictionary{}
	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return nil, &LexicalError{Construct: "dictionary", Offset: open.Offset, Err: ErrUnexpectedEOF}
		}
		if tok.Kind == TokenDictEnd {
			p.skip()
			return dict, nil
		}
		p.skip()
		if tok.Kind != TokenName {
			return nil, unexpected("dictionary key (Name)", tok, 0)
		}
		v, err := p.ParseValue()
		if err != nil {
			return nil, err
		}
		dict[tok.Text] = v
	}
}

// parseStream attaches the pending stream body to dict. Only FlateDecode
// payloads are decoded.
func (p *Parser) parseStream(dict Dictionary) (Value, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	s := StreamObject{Dict: dict, Raw: trimEOL(tok.Data)}

	filter, ok := streamFilter(dict)
	if !ok {
		return s, nil
	}
	s.Filter = filter
	if filter != FilterFlateDecode {
		logger.Debug(fmt.Sprintf("stream: %s not decoded (bytes=%d)", filter, len(s.Raw)))
		return s, nil
	}
	decoded, err := p.decoder.Decode(s.Raw)
	if err != nil {
		logger.Debug(fmt.Sprintf("stream: %s decode failed at byte %d: %v", filter, tok.Offset, err), true)
		return nil, &CodecError{Filter: filter, Err: err}
	}
	s.Decoded = decoded
	logger.Debug(fmt.Sprintf("stream: %s decoded (raw=%d decoded=%d)", filter, len(s.Raw), len(decoded)))
	return s, nil
}

func (p *Parser) enter(open *Token) error {
	if p.depth >= p.maxDepth {
		return &StructuralError{
			Expected: fmt.Sprintf("nesting depth of at most %d", p.maxDepth),
			Found:    open.String(),
			Offset:   open.Offset,
		}
	}
	p.depth++
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) expectInteger(what string) (int, error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	if tok == nil || tok.Kind != TokenNumber {
		return 0, unexpected(what, tok, p.tok.Offset())
	}
	n, ok := nonNegative(tok.Text)
	if !ok {
		return 0, unexpected("non-negative integer "+what, tok, 0)
	}
	return n, nil
}

func (p *Parser) expectOperator(keyword string) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok == nil || !tok.Is(TokenOperator, keyword) {
		return unexpected("'"+keyword+"' keyword", tok, p.tok.Offset())
	}
	return nil
}

func nonNegative(text string) (int, bool) {
	n, err := strconv.Atoi(text)
	return n, err == nil && n >= 0
}

// trimEOL removes the end-of-line marker that separates a stream payload
// from the "endstream" keyword.
func trimEOL(data []byte) []byte {
	switch {
	case bytes.HasSuffix(data, []byte("\r\n")):
		return data[:len(data)-2]
	case bytes.HasSuffix(data, []byte("\n")), bytes.HasSuffix(data, []byte("\r")):
		return data[:len(data)-1]
	}
	return data
}

// streamFilter returns the /Filter entry of a stream dictionary. Filter
// arrays are joined with spaces.
func streamFilter(dict Dictionary) (string, bool) {
	switch f := dict["Filter"].(type) {
	case Name:
		return string(f), true
	case Array:
		names := make([]string, 0, len(f))
		for _, v := range f {
			if n, ok := v.(Name); ok {
				names = append(names, string(n))
			}
		}
		if len(names) > 0 {
			return strings.Join(names, " "), true
		}
	}
	return "", false
}
