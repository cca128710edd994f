// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objparse

import (
	"fmt"
	"strconv"

	"github.com/sassoftware/pdf-objparse/logger"
)

// ParseXRefTable parses a classic cross-reference table starting at the
// "xref" keyword. It returns a nil table and a nil error when the keyword is
// not followed by a subsection header. The "trailer" keyword that ends the
// table is left unconsumed.
func (p *Parser) ParseXRefTable() (*XRefTable, error) {
	if err := p.expectOperator("xref"); err != nil {
		return nil, err
	}
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	if tok == nil || tok.Kind != TokenNumber {
		logger.Debug("xref: keyword without classic table")
		return nil, nil
	}

	start, err := p.expectInteger("xref subsection start")
	if err != nil {
		return nil, err
	}
	count := -1
	if tok, err = p.peek(0); err != nil {
		return nil, err
	}
	if tok != nil && tok.Kind == TokenNumber {
		if count, err = p.expectInteger("xref subsection count"); err != nil {
			return nil, err
		}
	}

	table := &XRefTable{StartIndex: start, TotalObjects: count}
	cur := XRefRange{Start: start, Count: count}
	rows := 0
	closeRange := func() {
		if cur.Count < 0 {
			cur.Count = rows
		}
		table.Ranges = append(table.Ranges, cur)
	}

	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return nil, unexpected("xref entry or 'trailer' keyword", nil, p.tok.Offset())
		}
		if tok.Is(TokenOperator, "trailer") {
			break
		}

		first, err := p.expectNumber("xref entry offset")
		if err != nil {
			return nil, err
		}
		second, err := p.expectNumber("xref entry generation")
		if err != nil {
			return nil, err
		}
		marker, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		if marker != nil && (marker.Kind == TokenNumber || marker.Is(TokenOperator, "trailer")) {
			// a "start count" header may only follow a completely read subsection
			if cur.Count < 0 || rows != cur.Count {
				return nil, unexpected("xref entry marker 'f' or 'n'", marker, 0)
			}
			s, ok1 := nonNegative(first.Text)
			n, ok2 := nonNegative(second.Text)
			if !ok1 || !ok2 {
				return nil, unexpected("xref subsection header", first, 0)
			}
			closeRange()
			cur, rows = XRefRange{Start: s, Count: n}, 0
			continue
		}
		p.skip()
		if marker == nil || marker.Kind != TokenOperator || (marker.Text != "f" && marker.Text != "n") {
			return nil, unexpected("xref entry marker 'f' or 'n'", marker, p.tok.Offset())
		}

		offset, err := strconv.ParseInt(first.Text, 10, 64)
		if err != nil || offset < 0 {
			return nil, unexpected("xref entry offset", first, 0)
		}
		gen, ok := nonNegative(second.Text)
		if !ok {
			return nil, unexpected("xref entry generation", second, 0)
		}
		table.Subsections = append(table.Subsections, XRefSubsection{
			ObjectNumber:     cur.Start + rows,
			OffsetOrNextFree: offset,
			Generation:       gen,
			InUse:            marker.Text != "f",
		})
		rows++
	}
	closeRange()

	if table.TotalObjects < 0 {
		table.TotalObjects = len(table.Subsections)
	}
	logger.Debug(fmt.Sprintf("xref: table parsed (start=%d total=%d rows=%d ranges=%d)",
		table.StartIndex, table.TotalObjects, len(table.Subsections), len(table.Ranges)), true)
	return table, nil
}

// ParseTrailer parses "trailer << ... >> startxref N".
func (p *Parser) ParseTrailer() (*Trailer, error) {
	if err := p.expectOperator("trailer"); err != nil {
		return nil, err
	}
	dict, err := p.readDictionary()
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator("startxref"); err != nil {
		return nil, err
	}
	offset, err := p.expectNumber("startxref offset")
	if err != nil {
		return nil, err
	}
	logger.Debug(fmt.Sprintf("trailer: parsed (keys=%d startxref=%s)", len(dict), offset.Text), true)
	return &Trailer{Dict: dict, StartXRef: offset.Text}, nil
}

func (p *Parser) expectNumber(what string) (*Token, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok == nil || tok.Kind != TokenNumber {
		return nil, unexpected(what, tok, p.tok.Offset())
	}
	return tok, nil
}
