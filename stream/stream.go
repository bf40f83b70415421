// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"context"
	"io"
	"net/http"

	"github.com/reqlight/reqlight/cancel"
	"github.com/reqlight/reqlight/fault"
)

// defaultChunkSize is the size of the buffer one Next call reads into.
const defaultChunkSize = 32 * 1024

// A Response is the result of a streamed exchange. Status and headers
// are available immediately; the body is a lazy, single-pass byte
// sequence the caller pulls from Body.
//
// Streamed exchanges never follow redirects: a redirect status is
// delivered here like any other status, with whatever body the server
// sent.
type Response struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Header contains the response headers.
	Header http.Header

	// Body is the pull-based response body sequence. It is never nil.
	// The caller owns it and must drain or Close it.
	Body *Reader
}

// A Reader is a pull-based, single-pass view of a response body. Each
// Next call suspends until the next chunk is available and returns it;
// the sequence ends with io.EOF, or with an abort-identified error if
// the exchange's context is cancelled before the body is drained. A
// Reader is not restartable and is not safe for concurrent use by
// multiple goroutines.
type Reader struct {
	ctx     context.Context
	body    io.ReadCloser
	release func()
	buf     []byte
	err     error
	onTerm  func(err error)
}

// New wraps the (possibly content-decoded) response body rc in a
// Reader governed by ctx. Cancelling ctx destroys the underlying body,
// which terminates the sequence with an abort-identified error rather
// than a silent end.
//
// onTerm, if non-nil, is invoked exactly once when the sequence
// terminates, with nil for a fully drained body, the abort error for a
// cancellation, or the underlying error otherwise.
func New(ctx context.Context, rc io.ReadCloser, onTerm func(err error)) *Reader {
	r := &Reader{
		ctx:    ctx,
		body:   rc,
		buf:    make([]byte, defaultChunkSize),
		onTerm: onTerm,
	}
	// A cancellation that fires while Next is blocked in a read must
	// unblock it, so the bridge closes the body out from under the
	// read.
	r.release = cancel.Attach(ctx, func() { _ = rc.Close() })
	return r
}

// Next suspends until the next chunk of the body is available and
// returns a copy of it. It returns a nil chunk and io.EOF when the
// sequence is exhausted, and a nil chunk and a terminal error if the
// exchange was cancelled (recognizable with fault.IsAbort) or the
// transport failed mid-body. Next never returns an empty chunk with a
// nil error. After any non-nil error, every subsequent call returns
// the same error.
func (r *Reader) Next() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	if err := r.ctx.Err(); err != nil {
		return nil, r.terminate(err)
	}

	for {
		n, err := r.body.Read(r.buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, r.buf[:n])
			if err == io.EOF {
				// Deliver the final chunk; EOF surfaces on the next
				// pull.
				return chunk, nil
			}
			if err != nil {
				return chunk, r.terminate(err)
			}
			return chunk, nil
		}
		if err != nil {
			return nil, r.terminate(err)
		}
		// A zero-byte read without error; read again rather than
		// handing the caller an empty result.
	}
}

// Close abandons the sequence early, releasing the underlying
// response body. It is safe to call after the sequence has terminated.
func (r *Reader) Close() error {
	if r.err == nil {
		r.terminate(io.EOF)
	}
	return nil
}

// Err returns the error the sequence terminated with: nil while the
// sequence is live, io.EOF after a complete drain or Close, and the
// terminal error otherwise.
func (r *Reader) Err() error {
	return r.err
}

// terminate records the terminal error, releases the cancellation
// bridge, closes the body, and reports termination. Cancellation takes
// precedence: if the context was cancelled, the abort identity wins
// over whatever error the destroyed read surfaced.
func (r *Reader) terminate(err error) error {
	if ctxErr := r.ctx.Err(); ctxErr != nil && !fault.IsAbort(err) && !fault.IsTimeout(err) {
		err = ctxErr
	}
	r.err = err
	r.release()
	_ = r.body.Close()
	if r.onTerm != nil {
		term := r.onTerm
		r.onTerm = nil
		if err == io.EOF {
			term(nil)
		} else {
			term(err)
		}
	}
	return err
}
