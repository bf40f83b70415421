// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"
	"time"
)

var (
	template, _ = http.NewRequest("GET", "", nil)
)

const (
	nilCtxMsg = "reqlight/request: nil context"

	// DefaultRedirects is the redirect hop budget assigned by
	// NewOptions. A budget of zero disables redirect following.
	DefaultRedirects = 5
)

// Options describes a logical HTTP request for execution by a client.
//
// The logical request described by Options will typically result in a
// single lower-level http.Request (net/http) exchange, but may result
// in several sequential exchanges if the server responds with
// redirects and the redirect hop budget allows following them.
//
// The field structure of Options mirrors the structure of the
// lower-level http.Request with the following differences. Server-only
// fields are removed (for example Proto). The body is a pre-buffered
// []byte rather than a stream, because a redirect hop may need to send
// it again. Fields with no http.Request counterpart (User, Password,
// Timeout, Agent, StrictSSL, FollowRedirects) control behavior layered
// on top of the transport by this library.
//
// Like the http.Request structure, Options has a context which governs
// the whole exchange and can be used to cancel it at any time,
// whichever stage is live.
type Options struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.).
	// An empty string means GET.
	Method string

	// URL specifies the URL to access.
	URL *urlpkg.URL

	// Header contains the request header fields to be sent. Repeated
	// headers are expressed as multiple values under one key and are
	// each sent distinctly, in order.
	//
	// For further details, see the documentation of Request.Header in
	// the net/http package.
	Header http.Header

	// Body is the pre-buffered request body to be sent. A nil or
	// empty body indicates no request body should be sent, for example
	// on a GET or DELETE request.
	Body []byte

	// User and Password hold HTTP basic authentication credentials.
	// They are sent as a single combined credential in the
	// Authorization header when both are non-empty, and ignored
	// otherwise.
	User     string
	Password string

	// Timeout bounds the whole exchange, including redirect hops. If
	// it elapses, the in-flight stage is aborted and the exchange
	// fails with a timeout-categorized error. Zero means no timeout
	// beyond what the context imposes.
	Timeout time.Duration

	// Agent optionally overrides the transport used for the exchange,
	// bypassing proxy resolution entirely. If nil, the client resolves
	// an agent from its proxy configuration and the environment.
	Agent http.RoundTripper

	// StrictSSL overrides the client's TLS strictness for this
	// exchange. If nil, the client's configured default applies
	// (strict unless configured otherwise). When strict, certificate
	// validation failures abort the connection; when not, they are
	// ignored.
	StrictSSL *bool

	// FollowRedirects is the remaining redirect hop budget: the number
	// of redirect responses the client will follow automatically
	// before returning a redirect response as-is. Zero disables
	// following. NewOptions initializes it to DefaultRedirects.
	FollowRedirects int

	// Host optionally overrides the Host header to send. If empty, the
	// value of URL.Host will be sent.
	Host string

	// ctx allows the entire exchange to be cancelled. It should only
	// be modified by copying the whole Options using WithContext.
	ctx context.Context
}

// NewOptions wraps NewOptionsWithContext using the background context.
//
// Parameter body may be nil (empty body), or it may be a string, url.Values,
// []byte, io.Reader, or io.ReadCloser. If body is an io.Reader, it is
// read to the end and buffered into a []byte. If body is an
// io.ReadCloser, it is closed after buffering.
func NewOptions(method, url string, body interface{}) (*Options, error) {
	return NewOptionsWithContext(context.Background(), method, url, body)
}

// NewOptionsWithContext returns new Options given a method, URL, and
// optional body. The redirect hop budget is initialized to
// DefaultRedirects.
//
// Parameter body may be nil (empty body), or it may be a string, url.Values,
// []byte, io.Reader, or io.ReadCloser. If body is an io.Reader, it is
// read to the end and buffered into a []byte. If body is an
// io.ReadCloser, it is closed after buffering.
func NewOptionsWithContext(ctx context.Context, method, url string, body interface{}) (*Options, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = "GET"
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("reqlight/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	b, err := BodyBytes(body)
	if err != nil {
		return nil, err
	}
	return &Options{
		ctx:             ctx,
		Method:          method,
		URL:             u,
		Header:          make(http.Header),
		Body:            b,
		Host:            u.Host,
		FollowRedirects: DefaultRedirects,
	}, nil
}

// Context returns the options' context. The context governs
// cancellation of the whole exchange. To change the context, use
// WithContext.
//
// The returned context is always non-nil; it defaults to the
// background context.
func (o *Options) Context() context.Context {
	if o.ctx != nil {
		return o.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of o with its context changed to
// ctx, which must be non-nil.
//
// The context controls the entire lifetime of the exchange, including:
// establishing the connection, awaiting response headers, reading the
// response body (or pulling a streamed body), and any redirect hops.
func (o *Options) WithContext(ctx context.Context) *Options {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	o2 := new(Options)
	*o2 = *o
	o2.ctx = ctx
	return o2
}

// Hop returns the options for a redirect re-issue against u: a shallow
// copy of o with the URL replaced by u, the Host override reset to the
// new URL's host, and the redirect hop budget decremented by one.
// Headers, credentials, body, timeout, and context are preserved
// across the hop.
func (o *Options) Hop(u *urlpkg.URL) *Options {
	o2 := new(Options)
	*o2 = *o
	o2.URL = u
	o2.Host = u.Host
	o2.FollowRedirects--
	return o2
}

// SetBasicAuth sets the User and Password fields to use HTTP Basic
// Authentication with the provided username and password.
//
// With HTTP Basic Authentication the provided username and password
// are not encrypted.
func (o *Options) SetBasicAuth(username, password string) {
	o.User = username
	o.Password = password
}

// ToRequest creates an HTTP request corresponding to the given options.
// The context of the new request is set to ctx, which may not be nil.
func (o *Options) ToRequest(ctx context.Context) *http.Request {
	r := template.WithContext(ctx)
	r.Method = o.Method
	r.URL = o.URL
	r.Header = o.Header
	if o.User != "" && o.Password != "" {
		r.Header = cloneHeader(o.Header)
		r.Header.Set("Authorization", "Basic "+basicAuth(o.User, o.Password))
	}
	if len(o.Body) > 0 {
		r.Body = io.NopCloser(bytes.NewReader(o.Body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(o.Body)), nil
		}
		r.ContentLength = int64(len(o.Body))
	}
	r.Host = o.Host
	return r
}

func cloneHeader(h http.Header) http.Header {
	h2 := make(http.Header, len(h))
	for k, v := range h {
		h2[k] = append([]string(nil), v...)
	}
	return h2
}

// basicAuth is lifted verbatim from net/http/client.go.
//
// See 2 (end of page 4) https://www.ietf.org/rfc/rfc2617.txt
// "To receive authorization, the client sends the userid and password,
// separated by a single colon (":") character, within a base64
// encoded string in the credentials."
// It is not meant to be urlencoded.
func basicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

func validMethod(method string) bool {
	/*
	     Method         = "OPTIONS"                ; Section 9.2
	                    | "GET"                    ; Section 9.3
	                    | "HEAD"                   ; Section 9.4
	                    | "POST"                   ; Section 9.5
	                    | "PUT"                    ; Section 9.6
	                    | "DELETE"                 ; Section 9.7
	                    | "TRACE"                  ; Section 9.8
	                    | "CONNECT"                ; Section 9.9
	                    | extension-method
	   extension-method = token
	     token          = 1*<any CHAR except CTLs or separators>

	   We don't need to check for length more than 1 because we always
	   interpret the empty string as "GET".
	*/
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !isTokenRune(r)
}

// isTokenRune is lifted verbatim from x/net/http/httpguts/httplex.go
// (but converted to non-exported). It classifies a rune as being valid
// for a token as defined in https://tools.ietf.org/html/rfc7230#section-3.2.6
func isTokenRune(r rune) bool {
	i := int(r)
	return i < len(isTokenTable) && isTokenTable[i]
}

var isTokenTable = [127]bool{
	'!': true, '#': true, '$': true, '%': true, '&': true, '\'': true,
	'*': true, '+': true, '-': true, '.': true,
	'0': true, '1': true, '2': true, '3': true, '4': true,
	'5': true, '6': true, '7': true, '8': true, '9': true,
	'A': true, 'B': true, 'C': true, 'D': true, 'E': true, 'F': true,
	'G': true, 'H': true, 'I': true, 'J': true, 'K': true, 'L': true,
	'M': true, 'N': true, 'O': true, 'P': true, 'Q': true, 'R': true,
	'S': true, 'T': true, 'U': true, 'V': true, 'W': true, 'X': true,
	'Y': true, 'Z': true,
	'^': true, '_': true, '`': true,
	'a': true, 'b': true, 'c': true, 'd': true, 'e': true, 'f': true,
	'g': true, 'h': true, 'i': true, 'j': true, 'k': true, 'l': true,
	'm': true, 'n': true, 'o': true, 'p': true, 'q': true, 'r': true,
	's': true, 't': true, 'u': true, 'v': true, 'w': true, 'x': true,
	'y': true, 'z': true,
	'|': true, '~': true,
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
