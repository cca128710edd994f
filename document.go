// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objparse

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sassoftware/pdf-objparse/logger"
)

// Document collects the top-level constructs of one input in the order they
// were parsed.
type Document struct {
	// Version is the header version number, e.g. "1.7".
	Version    string
	Objects    []*IndirectObject
	XRefTables []*XRefTable
	Trailers   []*Trailer
	// StartXRef is the last startxref value seen, with or without a trailer.
	StartXRef string
	// Errors holds the failures skipped in best-effort mode.
	Errors []error
}

// Parse reads a document from r. The input is scanned token by token:
// header, indirect objects, xref tables, trailers and startxref markers are
// parsed, anything else is skipped.
//
// In Strict mode the first failure ends parsing and is returned together
// with what was parsed so far. In BestEffort mode failures are collected in
// Document.Errors and scanning resumes at the next token; only a lexical
// failure, which exhausts the tokenizer, stops the scan early.
//
// Cancellation of ctx is noticed between constructs and on every read from
// r, so a long string or stream scan stops too. The context error is then
// returned in either mode.
func Parse(ctx context.Context, r io.Reader, cfg *Config) (*Document, error) {
	cfg = orDefault(cfg)
	t := NewTokenizer(contextReader{ctx: ctx, r: r}, cfg)
	p := NewParser(t, cfg)
	doc := &Document{}

	for {
		if err := ctx.Err(); err != nil {
			return doc, err
		}
		tok, err := t.PeekToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err == nil {
			err = doc.step(p, tok)
			if err == nil {
				continue
			}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return doc, ctxErr
		}
		if cfg.ParsingMode == Strict {
			return doc, err
		}
		logger.Error("document: construct skipped", "err", err)
		doc.Errors = append(doc.Errors, err)
		var lexErr *LexicalError
		if errors.As(err, &lexErr) {
			break
		}
	}

	logger.Debug(fmt.Sprintf("document: parsed (version=%s objects=%d xref=%d trailers=%d errors=%d)",
		doc.Version, len(doc.Objects), len(doc.XRefTables), len(doc.Trailers), len(doc.Errors)), true)
	return doc, nil
}

// contextReader fails reads once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}

// step parses the top-level construct starting with tok.
func (doc *Document) step(p *Parser, tok Token) error {
	switch {
	case tok.Kind == TokenVersion:
		p.skip()
		if doc.Version == "" {
			doc.Version = Version(tok.Text).Number()
			logger.Debug("header: "+tok.Text, true)
		}
	case tok.Kind == TokenNumber:
		obj, err := p.ParseIndirectObject()
		if err != nil {
			return fmt.Errorf("indirect object at byte %d: %w", tok.Offset, err)
		}
		doc.Objects = append(doc.Objects, obj)
	case tok.Is(TokenOperator, "xref"):
		table, err := p.ParseXRefTable()
		if err != nil {
			return fmt.Errorf("xref table at byte %d: %w", tok.Offset, err)
		}
		if table != nil {
			doc.XRefTables = append(doc.XRefTables, table)
		}
	case tok.Is(TokenOperator, "trailer"):
		trailer, err := p.ParseTrailer()
		if err != nil {
			return fmt.Errorf("trailer at byte %d: %w", tok.Offset, err)
		}
		doc.Trailers = append(doc.Trailers, trailer)
		doc.StartXRef = trailer.StartXRef
	case tok.Is(TokenOperator, "startxref"):
		// a bare startxref, as written after cross-reference streams
		p.skip()
		offset, err := p.expectNumber("startxref offset")
		if err != nil {
			return fmt.Errorf("startxref at byte %d: %w", tok.Offset, err)
		}
		doc.StartXRef = offset.Text
	default:
		logger.Debug(fmt.Sprintf("document: skipping %s at byte %d", tok, tok.Offset))
		p.skip()
	}
	return nil
}

// Lookup returns the value of the object ref points at. When an object
// number is defined more than once the last definition wins.
func (doc *Document) Lookup(ref IndirectReference) (Value, bool) {
	for i := len(doc.Objects) - 1; i >= 0; i-- {
		obj := doc.Objects[i]
		if obj.ObjectNumber == ref.ObjectNumber && obj.Generation == ref.Generation {
			return obj.Value, true
		}
	}
	return nil, false
}

// Trailer returns the last trailer parsed, or nil.
func (doc *Document) Trailer() *Trailer {
	if len(doc.Trailers) == 0 {
		return nil
	}
	return doc.Trailers[len(doc.Trailers)-1]
}
