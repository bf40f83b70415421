// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package redirect provides policies controlling if and how the client
// follows HTTP redirect responses within an exchange.
//
// The client consults two policies at two distinct points. As soon as
// response headers arrive it consults its eager policy (Eager by
// default), which can restart the exchange against the redirect target
// before any body is read. After a buffered body has been fully read
// it consults its buffered policy (DefaultPolicy by default) as a
// second, body-completion-time check. Both checks draw down the same
// hop budget carried in the request options; when the budget is
// exhausted, the redirect response itself becomes the terminal
// response.
//
// Streamed exchanges never follow redirects: a redirect status is
// handed to the caller with the stream, like any other response.
package redirect
