// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqlight

import (
	"fmt"
	"net/http"

	"github.com/reqlight/reqlight/request"
	"github.com/reqlight/reqlight/status"
)

// A ConnectError reports a failure to complete the connection to the
// target: DNS resolution, connection refusal, or TLS negotiation. It
// is shaped like a not-found response so callers that branch on status
// codes see 404, and it names the proxy when one was involved.
//
// Cancellation is never reported as a ConnectError; an aborted connect
// surfaces with abort identity instead (see fault.IsAbort).
type ConnectError struct {
	// URL is the target the connection was for.
	URL string

	// Proxy is the proxy the connection was routed through, or empty
	// for a direct connection.
	Proxy string

	// Err is the underlying transport error.
	Err error
}

// StatusCode returns the synthesized status of a connection failure,
// http.StatusNotFound.
func (e *ConnectError) StatusCode() int {
	return http.StatusNotFound
}

func (e *ConnectError) Error() string {
	if e.Proxy != "" {
		return fmt.Sprintf("unable to connect to %s through proxy %s: %v", e.URL, e.Proxy, e.Err)
	}
	return fmt.Sprintf("unable to connect to %s: %v", e.URL, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// A ResponseError reports an exchange that completed with a status
// outside the success range. It carries the full terminal Execution so
// callers can branch on the status and inspect headers and body on
// failure, not only on success.
type ResponseError struct {
	// Execution is the completed exchange state, including the
	// terminal response, its decoded body, and the status code.
	Execution *request.Execution
}

// StatusCode returns the terminal response's status code.
func (e *ResponseError) StatusCode() int {
	return e.Execution.StatusCode()
}

func (e *ResponseError) Error() string {
	code := e.Execution.StatusCode()
	if text := status.Text(code); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP status code %d", code)
}

// A BodyError reports a transport failure while the response body was
// being read, after headers had already been received. It is shaped
// like an internal-server-error response, naming the target and the
// underlying error.
//
// Cancellation is never reported as a BodyError; an aborted read
// surfaces with abort identity instead (see fault.IsAbort).
type BodyError struct {
	// URL is the target whose response body failed.
	URL string

	// Err is the underlying transport or decoding error.
	Err error
}

// StatusCode returns the synthesized status of a mid-body failure,
// http.StatusInternalServerError.
func (e *BodyError) StatusCode() int {
	return http.StatusInternalServerError
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("unable to read response from %s: %v", e.URL, e.Err)
}

func (e *BodyError) Unwrap() error {
	return e.Err
}
