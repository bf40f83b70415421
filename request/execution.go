// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/reqlight/reqlight/fault"
)

// A State identifies where in its lifecycle a single exchange is.
//
// The happy paths are:
//
//	Pending → Connecting → HeadersReceived → Buffering → Complete
//	Pending → Connecting → HeadersReceived → Streaming → Drained
//
// Aborted is reachable from any non-terminal state when the exchange's
// context is cancelled, and Failed from any state on a
// non-cancellation error. Complete, Drained, Aborted, and Failed are
// terminal.
type State int

const (
	// Pending indicates the exchange has not started yet.
	Pending State = iota
	// Connecting indicates a request hop is in flight: the connection
	// is being established (possibly through a proxy) and response
	// headers have not arrived.
	Connecting
	// HeadersReceived indicates response status and headers are
	// available but the body has not been consumed.
	HeadersReceived
	// Buffering indicates the response body is being read and
	// accumulated in full.
	Buffering
	// Streaming indicates the response body has been handed to the
	// caller as a pull-based sequence which is not yet exhausted.
	Streaming
	// Complete indicates a buffered exchange finished: the terminal
	// response's body is fully read. The exchange may still carry an
	// error if the terminal status was not a success.
	Complete
	// Drained indicates a streamed exchange finished: the caller
	// pulled the body to its end.
	Drained
	// Aborted indicates the exchange was terminated by cancellation.
	Aborted
	// Failed indicates the exchange was terminated by a
	// non-cancellation error.
	Failed
)

var stateNames = []string{
	"Pending",
	"Connecting",
	"HeadersReceived",
	"Buffering",
	"Streaming",
	"Complete",
	"Drained",
	"Aborted",
	"Failed",
}

// Terminal reports whether the state is one of the four terminal
// states.
func (s State) Terminal() bool {
	return s == Complete || s == Drained || s == Aborted || s == Failed
}

// String returns the name of the state.
func (s State) String() string {
	return stateNames[int(s)]
}

// An Execution represents the state of a single exchange made from
// Options.
//
// When a request is issued, an Execution is created for it. The
// Execution is updated as the exchange progresses (for example when
// response headers become available, or when a redirect hop is
// followed) and is ultimately returned as the result of the client's
// buffered methods.
//
// Redirect policies and event handlers may set values on an Execution
// using its SetValue method and read them back using the Value method.
// However, they should treat the structure's exported field values as
// immutable and leave them unmodified, as the execution state is vital
// to the correct functioning of the exchange logic. A limited
// exception is making reasonable changes to the http.Request before it
// is sent, for example to add a signature header.
type Execution struct {
	// Options specifies the logical request being executed, as given
	// by the caller. It is never nil and is not replaced when a
	// redirect hop is followed.
	Options *Options

	// Start is the start time of the exchange. It is assigned a
	// non-zero value when the exchange starts, and this value remains
	// constant thereafter.
	Start time.Time

	// End is the end time of the exchange. It contains the zero value
	// until the exchange ends, when it is set to the current time. For
	// a streamed exchange it is set when the stream terminates, not
	// when the headers are handed to the caller.
	End time.Time

	// Hop is the zero-based number of the current request hop. It is
	// zero on the initial request, one on the first followed redirect,
	// and so on. When the exchange has ended, Hop identifies the
	// terminal hop.
	Hop int

	// Redirects is the count of redirect hops actually followed so
	// far. It never exceeds the options' initial hop budget.
	Redirects int

	// Request specifies the HTTP request sent (or about to be sent) in
	// the current hop.
	Request *http.Request

	// Response specifies the HTTP response received in the most recent
	// hop. It is nil while a hop is in flight and before the exchange
	// starts, and nil after a hop that ended in a transport error.
	Response *http.Response

	// Err is the terminal error of the exchange, nil if the exchange
	// succeeded. Whether Err represents a cancellation, a timeout, or
	// a connection failure can be determined with the fault package;
	// whether it carries an inspectable response is determined by
	// errors.As against the error types of the root package.
	Err error

	// Body is the complete, content-decoded response body of the
	// terminal hop. It is set once the exchange reaches the Complete
	// state, including when the terminal status is not a success. It
	// is nil for streamed exchanges and after transport errors.
	Body []byte

	// State is the exchange's position in its lifecycle state machine.
	// It is maintained by the client; treat it as read-only.
	State State

	// data contains arbitrary user data attached via SetValue.
	data context.Context
}

// StatusCode returns the status code of the HTTP response from the
// most recent hop in the exchange. If there is no HTTP response, 0 is
// returned.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// Header returns the HTTP response headers from the most recent hop in
// the exchange. If there is no HTTP response, the nil header is
// returned.
//
// Note that a nil return value is always safe for read-only
// operations, since http.Header is a map type. There should never be a
// reason to write to the returned value, since it represents the
// response headers.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return e.Response.Header
}

// Text returns the decoded response body as text. It is simply the
// Body bytes viewed as a string, and is empty whenever Body is empty
// or nil.
func (e *Execution) Text() string {
	return string(e.Body)
}

// Duration returns the duration of the exchange.
//
// If the exchange has not yet started, the duration is zero. If the
// exchange has Ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the exchange has started.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the exchange has ended. If the return value
// is true, End is a non-zero time and there will be no further changes
// to the execution.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Timeout indicates whether Err currently contains a non-nil value
// which indicates an exceeded deadline, either the exchange's own
// timeout or one imposed by the transport.
func (e *Execution) Timeout() bool {
	return fault.IsTimeout(e.Err)
}

// Aborted indicates whether Err currently contains a non-nil value
// which indicates the exchange was cancelled.
func (e *Execution) Aborted() bool {
	return fault.IsAbort(e.Err)
}

// SetValue allows event handlers to store arbitrary data in the
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue, namely it:
//
// • may not be nil;
//
// • must be comparable;
//
// • should not be of type string or any other built-in type to avoid
// collisions between different event handlers putting data into the
// same execution.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
