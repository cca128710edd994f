// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objparse

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/pkg/errors"
)

// FilterFlateDecode is the only stream filter the parser decodes. Payloads
// with any other filter are kept raw.
const FilterFlateDecode = "FlateDecode"

// Decoder decodes a stream payload.
type Decoder interface {
	Decode(data []byte) ([]byte, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(data []byte) ([]byte, error)

func (f DecoderFunc) Decode(data []byte) ([]byte, error) {
	return f(data)
}

// FlateDecoder inflates zlib-framed deflate data, the encoding used by
// FlateDecode. MaxOutput bounds the inflated size; zero means unbounded.
type FlateDecoder struct {
	MaxOutput int64
}

func (d FlateDecoder) Decode(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "inflate")
	}
	defer zr.Close()

	var r io.Reader = zr
	if d.MaxOutput > 0 {
		r = io.LimitReader(zr, d.MaxOutput+1)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "inflate")
	}
	if d.MaxOutput > 0 && int64(len(out)) > d.MaxOutput {
		return nil, errors.Errorf("inflated payload exceeds %d bytes", d.MaxOutput)
	}
	return out, nil
}
