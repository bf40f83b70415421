// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package stream exposes a response body as a lazy, pull-based,
// single-pass byte sequence.
//
// A streamed exchange yields a Response with status and headers
// available as soon as they are received and the body behind a Reader.
// The caller pulls chunks one at a time with Next; each pull is a
// suspend point, and chunks arrive in the order the transport
// delivered them. Cancelling the exchange's context terminates the
// sequence with an error recognizable by fault.IsAbort, never with a
// silent end-of-stream.
package stream
