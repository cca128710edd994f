// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objparse

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/sassoftware/pdf-objparse/logger"
)

// Minimal XML models to pull common XMP fields in a namespace
type xmpPacket struct {
	XMLName xml.Name `xml:"xmpmeta"`
	RDF     rdfRDF   `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# RDF"`
}

type rdfRDF struct {
	Descriptions []rdfDescription `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# Description"`
}

type rdfDescription struct {
	Title       rdfList `xml:"http://purl.org/dc/elements/1.1/ title"`
	Description rdfList `xml:"http://purl.org/dc/elements/1.1/ description"`
	Creator     rdfList `xml:"http://purl.org/dc/elements/1.1/ creator"`

	PDFProducer string `xml:"http://ns.adobe.com/pdf/1.3/ Producer"`
	PDFKeywords string `xml:"http://ns.adobe.com/pdf/1.3/ Keywords"`

	XMPCreatorTool string `xml:"http://ns.adobe.com/xap/1.0/ CreatorTool"`
	XMPCreateDate  string `xml:"http://ns.adobe.com/xap/1.0/ CreateDate"`
	XMPModifyDate  string `xml:"http://ns.adobe.com/xap/1.0/ ModifyDate"`
}

// rdfList matches the rdf:Alt, rdf:Seq and rdf:Bag containers alike.
type rdfList struct {
	Alt []string `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# Alt>li"`
	Seq []string `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# Seq>li"`
	Bag []string `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# Bag>li"`
}

func (l rdfList) First() string {
	for _, items := range [][]string{l.Alt, l.Seq, l.Bag} {
		if len(items) > 0 {
			return strings.TrimSpace(items[0])
		}
	}
	return ""
}

// parseXMP reads the document fields of an XMP packet. It reports false if
// the packet is not well-formed enough to decode.
func parseXMP(packet []byte) (Info, bool) {
	var pkt xmpPacket
	dec := xml.NewDecoder(strings.NewReader(string(packet)))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity
	if err := dec.Decode(&pkt); err != nil {
		logger.Debug(fmt.Sprintf("xmp: undecodable packet: %v", err))
		return Info{}, false
	}

	var f Info
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	for _, d := range pkt.RDF.Descriptions {
		set(&f.Title, d.Title.First())
		set(&f.Author, d.Creator.First())
		set(&f.Subject, d.Description.First())
		set(&f.Keywords, d.PDFKeywords)
		set(&f.Producer, d.PDFProducer)
		set(&f.Creator, d.XMPCreatorTool)
		set(&f.CreationDate, d.XMPCreateDate)
		set(&f.ModDate, d.XMPModifyDate)
	}
	return f, true
}

// merge returns info with every field that xmp sets replaced.
func (info Info) merge(xmp Info) Info {
	prefer := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}
	return Info{
		Title:        prefer(xmp.Title, info.Title),
		Author:       prefer(xmp.Author, info.Author),
		Subject:      prefer(xmp.Subject, info.Subject),
		Keywords:     prefer(xmp.Keywords, info.Keywords),
		Creator:      prefer(xmp.Creator, info.Creator),
		Producer:     prefer(xmp.Producer, info.Producer),
		CreationDate: prefer(xmp.CreationDate, info.CreationDate),
		ModDate:      prefer(xmp.ModDate, info.ModDate),
	}
}

// xmpPacketOf returns the payload of the catalog's /Metadata stream. Streams
// with an undecoded filter are skipped.
func (doc *Document) xmpPacketOf(catalog Dictionary) ([]byte, bool) {
	v := catalog["Metadata"]
	if ref, ok := v.(IndirectReference); ok {
		v, _ = doc.Lookup(ref)
	}
	s, ok := v.(StreamObject)
	if !ok || (s.Filter != "" && s.Decoded == nil) {
		return nil, false
	}
	logger.Debug("found XMP Stream", true)
	return s.Data(), true
}
