// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objparse

import (
	"fmt"
	"strconv"
)

// IndirectObject is one "N G obj ... endobj" block.
type IndirectObject struct {
	ObjectNumber int
	Generation   int
	Value        Value
}

// Reference returns the reference that points at o.
func (o *IndirectObject) Reference() IndirectReference {
	return IndirectReference{ObjectNumber: o.ObjectNumber, Generation: o.Generation}
}

func (o *IndirectObject) String() string {
	return fmt.Sprintf("%d %d obj %s endobj", o.ObjectNumber, o.Generation, valueString(o.Value))
}

// XRefRange is a "start count" subsection header of a cross-reference table.
type XRefRange struct {
	Start int
	Count int
}

// XRefSubsection is one row of a classic cross-reference table.
type XRefSubsection struct {
	ObjectNumber int
	// OffsetOrNextFree is a byte offset for in-use rows and the next free
	// object number for free rows.
	OffsetOrNextFree int64
	Generation       int
	InUse            bool
}

// XRefTable holds the rows following one "xref" keyword. StartIndex and
// TotalObjects come from the first subsection header; Ranges lists every
// header in order.
type XRefTable struct {
	TotalObjects int
	StartIndex   int
	Subsections  []XRefSubsection
	Ranges       []XRefRange
}

// Lookup returns the row for an object number.
func (x *XRefTable) Lookup(objectNumber int) (XRefSubsection, bool) {
	for _, row := range x.Subsections {
		if row.ObjectNumber == objectNumber {
			return row, true
		}
	}
	return XRefSubsection{}, false
}

// Trailer is a trailer dictionary together with the startxref value that
// follows it. StartXRef is kept as the token text.
type Trailer struct {
	Dict      Dictionary
	StartXRef string
}

// Offset returns StartXRef as a byte offset.
func (t *Trailer) Offset() (int64, error) {
	return strconv.ParseInt(t.StartXRef, 10, 64)
}

// Root returns the /Root reference, if any.
func (t *Trailer) Root() (IndirectReference, bool) {
	r, ok := t.Dict["Root"].(IndirectReference)
	return r, ok
}

// Size returns the /Size entry, if it is an integer.
func (t *Trailer) Size() (int64, bool) {
	n, ok := t.Dict["Size"].(Number)
	if !ok {
		return 0, false
	}
	v, err := n.Int64()
	return v, err == nil
}
