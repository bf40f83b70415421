// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqlight

import (
	"context"
	"io"
	"net/http"
	urlpkg "net/url"
	"time"

	"github.com/reqlight/reqlight/cancel"
	"github.com/reqlight/reqlight/fault"
	"github.com/reqlight/reqlight/proxy"
	"github.com/reqlight/reqlight/redirect"
	"github.com/reqlight/reqlight/request"
	"github.com/reqlight/reqlight/stream"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package. It must
	// NOT follow redirects itself: the Client owns redirect following,
	// so an HTTPDoer that chases redirects will hide the hops from the
	// Client's hop budget and event handlers.
	Do(r *http.Request) (*http.Response, error)
}

var emptyHandlers = HandlerGroup{}

// legacyNoContent is the non-standard success status some legacy
// stacks report in place of 204 No Content.
const legacyNoContent = 1223

// A Client issues single HTTP(S) request/response exchanges with proxy
// support, bounded redirect following, content decoding, cooperative
// cancellation, and a choice of buffered or streamed response bodies.
// Its zero value is a valid configuration: no proxy beyond the
// environment, strict TLS, default redirect policies, no handlers.
//
// Client is safe for concurrent use by multiple goroutines; concurrent
// exchanges share no mutable state beyond the proxy configuration,
// which each exchange only reads.
//
// A Client is higher-level than an HTTPDoer. The HTTPDoer is
// responsible for the mechanics of one request/response round trip,
// such as connection establishment and TLS, while Client layers on
// proxy resolution, explicit redirect hops, content
// decoding, body collection, and error classification.
type Client struct {
	// HTTPDoer overrides the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, the Client builds a transport per exchange
	// from the resolved proxy agent. Setting HTTPDoer bypasses proxy
	// resolution and the per-request Agent and StrictSSL options; it
	// exists chiefly for tests and for callers who manage their own
	// transport.
	HTTPDoer HTTPDoer

	// Proxy holds the proxy URL and TLS strictness applied to
	// exchanges that do not override them. If nil, no proxy is
	// configured and the environment decides.
	Proxy *proxy.Config

	// EagerRedirectPolicy decides, as soon as a hop's response headers
	// arrive and before any body is read, whether to follow a
	// redirect. If nil, redirect.Eager is used.
	EagerRedirectPolicy redirect.Policy

	// RedirectPolicy decides, after a buffered hop's body has been
	// fully read, whether to follow a redirect the eager check let
	// through. If nil, redirect.DefaultPolicy is used.
	RedirectPolicy redirect.Policy

	// Handlers allows custom handler chains to be invoked when
	// designated events occur during an exchange.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
}

// Do issues the logical request described by o, buffers the complete
// (content-decoded) response body, and returns the terminal execution
// state.
//
// Do suspends until the terminal hop's body has been fully read,
// following redirects along the way as allowed by the options' hop
// budget and the client's redirect policies. When the budget runs out
// mid-chain, the redirect response itself is the terminal response,
// classified by its own status.
//
// The returned Execution is never nil. The returned error is nil
// exactly when the terminal status is a success (in [200,300), or the
// legacy value 1223). Otherwise the error is one of:
//
// • an abort error (fault.IsAbort reports true) if the exchange was
// cancelled or its timeout elapsed before completion;
//
// • a *ConnectError if the connection could not be established;
//
// • a *BodyError if the transport or decoder failed mid-body;
//
// • a *ResponseError carrying the full Execution if the exchange
// completed with a non-success status, so callers can branch on the
// status and inspect headers and body.
//
// For simple use cases, the Get, Head, and Post methods may prove
// easier to use than Do.
func (c *Client) Do(o *request.Options) (*request.Execution, error) {
	e, handlers := c.start(o)
	ctx, cancelCtx := exchangeContext(o)
	defer cancelCtx()

	cur := o
	for {
		// Each hop resolves its own agent: a redirect can cross scheme
		// or land on a host the environment exempts from proxying, so
		// the hop-0 proxy decision does not carry over.
		resp, err := c.hop(ctx, cur, e, c.doer(c.agent(cur)), handlers)
		if err != nil {
			e.Err = err
			e.State = failState(err)
			handlers.run(AfterHop, e)
			break
		}

		// Pre-body redirect: restart the exchange against the target
		// before reading any of this hop's body.
		if u, ok := c.eagerPolicy().Follow(e); ok {
			drainAndClose(resp.Body)
			cur = c.followed(e, cur, u, handlers)
			continue
		}

		e.State = request.Buffering
		handlers.run(BeforeReadBody, e)
		body, err := c.readBody(ctx, cur, resp)
		if err != nil {
			e.Err = err
			e.State = failState(err)
			handlers.run(AfterHop, e)
			break
		}

		// Post-body redirect: layered on the eager check as defense
		// in depth, for policies that only decide once the body has
		// completed.
		if u, ok := c.redirectPolicy().Follow(e); ok {
			cur = c.followed(e, cur, u, handlers)
			continue
		}

		e.Body = body
		e.State = request.Complete
		if !successStatus(e.StatusCode()) {
			e.Err = &ResponseError{Execution: e}
		}
		handlers.run(AfterHop, e)
		break
	}

	e.End = time.Now()
	handlers.run(AfterExecutionEnd, e)
	return e, e.Err
}

// Stream issues the logical request described by o and returns as soon
// as response headers are received, exposing the body as a lazy,
// single-pass byte sequence.
//
// Streamed exchanges never follow redirects: a redirect status is
// returned like any other, with whatever body the server sent.
// Content decoding still applies. Cancelling the options' context
// (or exceeding the timeout) terminates the sequence with an
// abort-identified error on the caller's next pull.
//
// The returned error is non-nil only when no response was obtained at
// all: an abort error or a *ConnectError. Status classification is the
// caller's business in streamed mode.
func (c *Client) Stream(o *request.Options) (*stream.Response, error) {
	e, handlers := c.start(o)
	ctx, cancelCtx := exchangeContext(o)

	resp, err := c.hop(ctx, o, e, c.doer(c.agent(o)), handlers)
	if err != nil {
		e.Err = err
		e.State = failState(err)
		handlers.run(AfterHop, e)
		e.End = time.Now()
		handlers.run(AfterExecutionEnd, e)
		cancelCtx()
		return nil, err
	}

	e.State = request.Streaming
	body := stream.New(ctx, decodeBody(o.Method, resp), func(err error) {
		switch {
		case err == nil:
			e.State = request.Drained
		case fault.IsAbort(err) || fault.IsTimeout(err):
			e.Err = err
			e.State = request.Aborted
		default:
			e.Err = &BodyError{URL: o.URL.String(), Err: err}
			e.State = request.Failed
		}
		e.End = time.Now()
		handlers.run(AfterHop, e)
		handlers.run(AfterExecutionEnd, e)
		cancelCtx()
	})
	return &stream.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// start allocates the execution and fires BeforeExecutionStart.
func (c *Client) start(o *request.Options) (*request.Execution, *HandlerGroup) {
	e := &request.Execution{
		Options: o,
		State:   request.Pending,
	}
	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}
	handlers.run(BeforeExecutionStart, e)
	e.Start = time.Now()
	return e, handlers
}

// hop performs one request/response leg: build the request, fire
// BeforeHop, send, and classify any transport error. On success the
// execution holds the response and AfterHeaders has fired.
func (c *Client) hop(ctx context.Context, o *request.Options, e *request.Execution, doer HTTPDoer, handlers *HandlerGroup) (*http.Response, error) {
	e.State = request.Connecting
	e.Response = nil
	e.Request = o.ToRequest(ctx)
	handlers.run(BeforeHop, e)
	resp, err := doer.Do(e.Request)
	if err != nil {
		if fault.IsAbort(err) || fault.IsTimeout(err) {
			return nil, err
		}
		return nil, &ConnectError{
			URL:   o.URL.String(),
			Proxy: c.proxyName(o),
			Err:   err,
		}
	}
	e.Response = resp
	e.State = request.HeadersReceived
	handlers.run(AfterHeaders, e)
	return resp, nil
}

// followed records a followed redirect and produces the next hop's
// options.
func (c *Client) followed(e *request.Execution, cur *request.Options, u *urlpkg.URL, handlers *HandlerGroup) *request.Options {
	e.Redirects++
	handlers.run(AfterRedirect, e)
	e.Hop++
	return cur.Hop(u)
}

// readBody drains and content-decodes one hop's body. The cancellation
// bridge guards the read: if the exchange's context fires while the
// read is blocked, the body is destroyed out from under it and the
// abort identity wins over the destroyed read's error.
func (c *Client) readBody(ctx context.Context, o *request.Options, resp *http.Response) ([]byte, error) {
	rc := decodeBody(o.Method, resp)
	release := cancel.Attach(ctx, func() { _ = resp.Body.Close() })
	defer release()
	defer func() { _ = rc.Close() }()

	body, err := io.ReadAll(rc)
	if err == nil {
		return body, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil && !fault.IsAbort(err) && !fault.IsTimeout(err) {
		return nil, ctxErr
	}
	if fault.IsAbort(err) || fault.IsTimeout(err) {
		return nil, err
	}
	return nil, &BodyError{URL: o.URL.String(), Err: err}
}

// Get issues a GET to the specified URL, using the same policies
// followed by Do.
//
// To make a request with custom headers, use request.NewOptions and
// Client.Do.
func (c *Client) Get(url string) (*request.Execution, error) {
	return Get(c, url)
}

// Head issues a HEAD to the specified URL, using the same policies
// followed by Do.
//
// To make a request with custom headers, use request.NewOptions and
// Client.Do.
func (c *Client) Head(url string) (*request.Execution, error) {
	return Head(c, url)
}

// Post issues a POST to the specified URL, using the same policies
// followed by Do.
//
// The body parameter may be nil for an empty body, or may be any of
// the types supported by request.NewOptions, request.BodyBytes, and
// reqlight.Post, namely: string; []byte; url.Values; io.Reader; and io.ReadCloser.
//
// To make a request with custom headers, use request.NewOptions and
// Client.Do.
func (c *Client) Post(url, contentType string, body interface{}) (*request.Execution, error) {
	return Post(c, url, contentType, body)
}

// PostForm issues a POST to the specified URL, with data's keys and
// values URL-encoded as the request body.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
// To set other headers, use request.NewOptions and Client.Do.
func (c *Client) PostForm(url string, data urlpkg.Values) (*request.Execution, error) {
	return PostForm(c, url, data)
}

func (c *Client) eagerPolicy() redirect.Policy {
	if c.EagerRedirectPolicy != nil {
		return c.EagerRedirectPolicy
	}
	return redirect.Eager
}

func (c *Client) redirectPolicy() redirect.Policy {
	if c.RedirectPolicy != nil {
		return c.RedirectPolicy
	}
	return redirect.DefaultPolicy
}

// agent resolves the transport agent for one exchange: the per-request
// Agent override if any, else the proxy resolver's decision. It is nil
// when HTTPDoer is set, which owns the transport outright.
func (c *Client) agent(o *request.Options) http.RoundTripper {
	if c.HTTPDoer != nil {
		return nil
	}
	if o.Agent != nil {
		return o.Agent
	}
	return proxy.Resolve(c.Proxy, o.URL, nil, o.StrictSSL).RoundTripper()
}

// proxyName names the proxy involved in an exchange for error
// messages, or returns the empty string for a direct connection.
func (c *Client) proxyName(o *request.Options) string {
	if c.HTTPDoer != nil || o.Agent != nil {
		return ""
	}
	a := proxy.Resolve(c.Proxy, o.URL, nil, o.StrictSSL)
	if !a.Proxied() {
		return ""
	}
	return a.Proxy.Host
}

// doer wraps the resolved agent in an http.Client that leaves
// redirects to this package, or returns the installed HTTPDoer.
func (c *Client) doer(agent http.RoundTripper) HTTPDoer {
	if c.HTTPDoer != nil {
		return c.HTTPDoer
	}
	return &http.Client{
		Transport: agent,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// exchangeContext derives the context governing one exchange,
// arming the options' timeout when one is set.
func exchangeContext(o *request.Options) (context.Context, context.CancelFunc) {
	ctx := o.Context()
	if o.Timeout > 0 {
		return context.WithTimeout(ctx, o.Timeout)
	}
	return context.WithCancel(ctx)
}

// failState maps a terminal error to the Aborted or Failed state.
// Timeouts are a cancellation source and land in Aborted, though their
// error identity stays distinct from a user-triggered abort.
func failState(err error) request.State {
	if fault.IsAbort(err) || fault.IsTimeout(err) {
		return request.Aborted
	}
	return request.Failed
}

// successStatus classifies a terminal status: the 2xx range, plus the
// legacy 1223 stand-in for 204.
func successStatus(statusCode int) bool {
	return (statusCode >= 200 && statusCode < 300) || statusCode == legacyNoContent
}

// drainAndClose discards the remainder of a redirect hop's body so the
// connection can be reused, then closes it.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}
