// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Options (describes a logical
HTTP request) and Execution (describes the state of one exchange made
from those options). These two types are fundamental to issuing
requests with this library.

The first core type is Options, which represents a logical HTTP
request.

Options describes how to issue a request, potentially involving several
sequential HTTP exchanges if the server answers with redirects the
client is allowed to follow. For those familiar with the Go standard
HTTP library, net/http, Options looks like a stripped-down http.Request
structure with all server-side fields removed and the body replaced
with a simple []byte, because Options requires a pre-buffered request
body. Fields are named and typed consistently with http.Request
wherever possible.

Create options to make a request:

	o, err := request.NewOptions("GET", "https://example.com", nil)
	...
	e, err := client.Do(o)
	...

Options may be assigned a context to allow the exchange, including any
redirect hops, to be cancelled:

	o, err := request.NewOptionsWithContext(ctx, "POST", "https://example.com/upload", body)
	...

Cancelling the context aborts whichever stage of the exchange is live
at that moment. The abort surfaces as an error recognizable with
fault.IsAbort, distinct from network and protocol failures.

The second core type is Execution, which represents the state of a
single exchange: which redirect hop is in flight, the most recent
response and buffered body, the terminal error if any, and the state
machine position. Execution is both the output type of the client's
buffered methods and the input type for callbacks invoked during the
exchange: redirect policies and event handlers. You will typically not
allocate Execution instances yourself, but will instead work with the
ones handed out by the client.
*/
package request
