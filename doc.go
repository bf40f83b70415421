// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package reqlight provides a small, robust HTTP client with proxy
support, bounded redirect following, gzip/deflate response decoding,
cooperative cancellation, and buffered or streamed response bodies,
within a simple and familiar interface.

Create a Client to begin making requests.

	client := &reqlight.Client{}
	e, err := client.Get("https://www.example.com")
	...
	e, err := client.Post("https://www.example.com/upload",
		"application/json", &buf)

Or use the package-level functions, which share DefaultClient:

	o, err := request.NewOptions("GET", "https://www.example.com", nil)
	...
	e, err := reqlight.Do(o)

A buffered exchange resolves once the terminal response body has been
fully read and content-decoded; the Execution carries status, headers,
and body whether the status was a success or not. A non-success status
is returned as a *ResponseError wrapping the same Execution, so
callers can branch on the status code. Use the fault package to tell
cancellation apart from network failure by error identity:

	e, err := client.Do(o)
	var respErr *reqlight.ResponseError
	switch {
	case err == nil:
		// 2xx, use e.Body
	case fault.IsAbort(err):
		// cancelled
	case errors.As(err, &respErr):
		// HTTP failure, inspect respErr.Execution
	default:
		// connection or mid-body failure
	}

To receive a response body incrementally instead of buffering it, use
Stream, which returns status and headers as soon as they arrive and a
pull-based body sequence:

	sr, err := client.Stream(o)
	...
	for {
		chunk, err := sr.Body.Next()
		if err == io.EOF {
			break
		}
		...
	}

Requests are routed through a proxy according to an explicit proxy
configuration or, failing that, the HTTP_PROXY/HTTPS_PROXY environment
variables; see package proxy. Configure sets the process-wide default:

	reqlight.Configure("http://proxy.corp.example:3128", true)

Redirects are followed hop by hop against an explicit budget
(request.Options.FollowRedirects, default 5); see package redirect for
the policies involved. Streamed exchanges never follow redirects.

To hook into the fine-grained details of an exchange, install a
handler into the appropriate handler chain:

	handlers := &reqlight.HandlerGroup{}
	handlers.PushBack(reqlight.BeforeHop, reqlight.HandlerFunc(
		func(_ reqlight.Event, e *request.Execution) {
			fmt.Printf("hop %d to %s\n", e.Hop, e.Request.URL)
		}))
	client := &reqlight.Client{Handlers: handlers}

LogHandler adapts a structured logger (github.com/apex/log) into such
a handler.

Package reqlight provides basic interfaces for each method of the
client (Doer, Streamer, Getter, Header, Poster, and FormPoster), a
combined Executor interface, and utility functions for working with a
Doer (Get, Head, Post, and PostForm).
*/
package reqlight
