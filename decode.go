// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqlight

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"io"
	"net/http"
	"strings"
)

// decodeBody wraps a response body in the decompressor declared by the
// Content-Encoding header, or returns it unchanged when no decoding
// applies. Body-less exchanges (HEAD requests, 1xx, 204, and 304
// statuses) are never pushed through a decoder, whatever the headers
// claim.
//
// Decoders are initialized lazily on the first read, so a declared
// encoding with a genuinely empty body decodes to an empty body rather
// than a header-parse error, and decoded output is surfaced chunk by
// chunk as the transport delivers compressed input.
func decodeBody(method string, resp *http.Response) io.ReadCloser {
	if bodyless(method, resp.StatusCode) {
		return resp.Body
	}
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		return &lazyDecoder{raw: resp.Body, open: openGzip}
	case "deflate":
		return &lazyDecoder{raw: resp.Body, open: openDeflate}
	default:
		return resp.Body
	}
}

// bodyless reports whether the exchange can never carry a decodable
// body: HEAD requests, informational statuses, 204 No Content, and
// 304 Not Modified.
func bodyless(method string, statusCode int) bool {
	if method == http.MethodHead {
		return true
	}
	return (statusCode >= 100 && statusCode < 200) ||
		statusCode == http.StatusNoContent ||
		statusCode == http.StatusNotModified
}

// A lazyDecoder defers constructing the decompressor until the first
// read so that an empty compressed body yields a clean EOF instead of
// a truncated-header error.
type lazyDecoder struct {
	raw     io.ReadCloser
	open    func(io.Reader) (io.ReadCloser, error)
	decoder io.ReadCloser
	err     error
}

func (d *lazyDecoder) Read(p []byte) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	if d.decoder == nil {
		br := bufio.NewReader(d.raw)
		if _, err := br.Peek(1); err == io.EOF {
			d.err = io.EOF
			return 0, io.EOF
		}
		dec, err := d.open(br)
		if err != nil {
			d.err = err
			return 0, err
		}
		d.decoder = dec
	}
	return d.decoder.Read(p)
}

func (d *lazyDecoder) Close() error {
	if d.decoder != nil {
		_ = d.decoder.Close()
	}
	return d.raw.Close()
}

// openGzip builds a gzip decompressor over r. The gzip reader yields
// decoded bytes as compressed input arrives and consumes concatenated
// members, so streamed responses decode chunk by chunk.
func openGzip(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

// openDeflate sniffs between the two framings servers send for
// "deflate": the correct zlib wrapping and the bare DEFLATE stream.
func openDeflate(r io.Reader) (io.ReadCloser, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	head, err := br.Peek(2)
	if err == nil && isZlibHeader(head) {
		zr, err := zlib.NewReader(br)
		if err != nil {
			return nil, err
		}
		return zr, nil
	}
	return flate.NewReader(br), nil
}

// isZlibHeader reports whether the two bytes form a valid zlib stream
// header: the low nibble of CMF is the deflate method (8) and the
// CMF/FLG pair is a multiple of 31, per RFC 1950.
func isZlibHeader(b []byte) bool {
	if len(b) < 2 || b[0]&0x0f != 8 {
		return false
	}
	return (uint16(b[0])<<8|uint16(b[1]))%31 == 0
}
