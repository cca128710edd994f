// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objparse

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sassoftware/pdf-objparse/logger"
)

// Info holds document metadata from the information dictionary, overridden
// by the XMP packet of the catalog where it has a value.
type Info struct {
	Title        string `json:"title,omitempty"`
	Author       string `json:"author,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Keywords     string `json:"keywords,omitempty"`
	Creator      string `json:"creator,omitempty"`
	Producer     string `json:"producer,omitempty"`
	CreationDate string `json:"creationDate,omitempty"`
	ModDate      string `json:"modDate,omitempty"`
}

// Summary is a JSON friendly overview of a parsed Document.
type Summary struct {
	Version    string         `json:"version,omitempty"`
	Objects    int            `json:"objects"`
	Streams    int            `json:"streams"`
	XRefTables int            `json:"xrefTables"`
	XRefRows   int            `json:"xrefRows"`
	Trailers   int            `json:"trailers"`
	StartXRef  string         `json:"startxref,omitempty"`
	Size       int64          `json:"size,omitempty"`
	Root       string         `json:"root,omitempty"`
	Encrypted  bool           `json:"encrypted"`
	HasXMP     bool           `json:"hasXMP"`
	Info       *Info          `json:"info,omitempty"`
	Types      map[string]int `json:"types,omitempty"`
	Filters    map[string]int `json:"filters,omitempty"`
	Errors     []string       `json:"errors,omitempty"`

	// Access permissions (Standard Security), present for encrypted documents
	AccessPermission *AccessPermission `json:"access_permission,omitempty"`
}

// AccessPermission holds the permission bits of the /P entry of an
// encryption dictionary (ISO 32000-1 §7.6.3.2). A set bit grants the
// permission; bit 1 is the least significant.
type AccessPermission struct {
	CanPrint                bool `json:"can_print"`
	CanPrintFaithful        bool `json:"can_print_faithful"`
	CanModify               bool `json:"can_modify"`
	ExtractContent          bool `json:"extract_content"`
	ModifyAnnotations       bool `json:"modify_annotations"`
	FillInForm              bool `json:"fill_in_form"`
	ExtractForAccessibility bool `json:"extract_for_accessibility"`
	AssembleDocument        bool `json:"assemble_document"`
}

// Summarize builds the summary of doc.
func (doc *Document) Summarize() Summary {
	s := Summary{
		Version:    doc.Version,
		Objects:    len(doc.Objects),
		XRefTables: len(doc.XRefTables),
		Trailers:   len(doc.Trailers),
		StartXRef:  doc.StartXRef,
	}
	for _, x := range doc.XRefTables {
		s.XRefRows += len(x.Subsections)
	}
	for _, obj := range doc.Objects {
		dict := dictOf(obj.Value)
		if dict == nil {
			continue
		}
		if t, ok := dict.Name("Type"); ok {
			s.Types = increment(s.Types, string(t))
		}
		if stream, ok := obj.Value.(StreamObject); ok {
			s.Streams++
			if stream.Filter != "" {
				s.Filters = increment(s.Filters, stream.Filter)
			}
		}
	}
	for _, err := range doc.Errors {
		s.Errors = append(s.Errors, err.Error())
	}

	trailer := doc.Trailer()
	if trailer == nil {
		return s
	}
	if size, ok := trailer.Size(); ok {
		s.Size = size
	}
	if root, ok := trailer.Root(); ok {
		s.Root = root.String()
	}
	s.Info = doc.info(trailer)
	if catalog := doc.resolveDict(trailer.Dict["Root"]); catalog != nil {
		if packet, ok := doc.xmpPacketOf(catalog); ok {
			s.HasXMP = true
			if xmp, ok := parseXMP(packet); ok {
				var info Info
				if s.Info != nil {
					info = *s.Info
				}
				merged := info.merge(xmp)
				s.Info = &merged
			}
		}
	}
	if enc := doc.resolveDict(trailer.Dict["Encrypt"]); enc != nil {
		s.Encrypted = true
		if p, ok := enc["P"].(Number); ok {
			if v, err := p.Int64(); err == nil {
				ap := accessPermissions(uint32(v))
				s.AccessPermission = &ap
			}
		}
	}
	return s
}

// SummaryJSON writes the summary of doc as indented JSON.
func (doc *Document) SummaryJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc.Summarize())
}

// info reads the /Info dictionary the trailer points at.
func (doc *Document) info(trailer *Trailer) *Info {
	dict := doc.resolveDict(trailer.Dict["Info"])
	if dict == nil {
		return nil
	}
	logger.Debug("found Info Dictionary", true)
	text := func(key string) string {
		var (
			s   string
			err error
		)
		switch v := dict[key].(type) {
		case StringLiteral:
			s, err = v.Text()
		case HexString:
			s, err = v.Text()
		default:
			return ""
		}
		if err != nil {
			logger.Debug(fmt.Sprintf("info: undecodable /%s text: %v", key, err))
			return ""
		}
		return strings.TrimSpace(s)
	}
	return &Info{
		Title:        text("Title"),
		Author:       text("Author"),
		Subject:      text("Subject"),
		Keywords:     text("Keywords"),
		Creator:      text("Creator"),
		Producer:     text("Producer"),
		CreationDate: text("CreationDate"),
		ModDate:      text("ModDate"),
	}
}

// resolveDict returns v as a dictionary, following one indirect reference.
func (doc *Document) resolveDict(v Value) Dictionary {
	if ref, ok := v.(IndirectReference); ok {
		v, _ = doc.Lookup(ref)
	}
	d, _ := v.(Dictionary)
	return d
}

func dictOf(v Value) Dictionary {
	switch v := v.(type) {
	case Dictionary:
		return v
	case StreamObject:
		return v.Dict
	}
	return nil
}

func increment(m map[string]int, key string) map[string]int {
	if m == nil {
		m = make(map[string]int)
	}
	m[key]++
	return m
}

func accessPermissions(p uint32) AccessPermission {
	var ap AccessPermission
	ap.CanPrint = (p & (1 << 2)) != 0
	ap.CanModify = (p & (1 << 3)) != 0
	ap.ExtractContent = (p & (1 << 4)) != 0
	ap.ModifyAnnotations = (p & (1 << 5)) != 0
	ap.FillInForm = (p&(1<<8)) != 0 || ap.ModifyAnnotations
	ap.ExtractForAccessibility = (p & (1 << 9)) != 0
	ap.AssembleDocument = (p & (1 << 10)) != 0
	ap.CanPrintFaithful = (p&(1<<11)) != 0 || ap.CanPrint
	return ap
}
