// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cancel bridges a context's cancellation signal into whichever
// stage of an HTTP exchange currently owns a destroyable resource: the
// outbound connection attempt, the raw response stream, or a streamed
// body exposed to the caller.
//
// A cancellation signal is one-shot: it may already be in the triggered
// state when a stage attaches (the destroy function then runs
// immediately), or it may fire later (the destroy function runs exactly
// once, whenever it fires). Stages that complete release their
// attachment, so a later cancellation does not touch resources that are
// already gone.
package cancel

import "context"

// Attach arranges for destroy to be called when ctx is cancelled. If
// ctx is already cancelled, destroy is called synchronously before
// Attach returns. Otherwise destroy is called at most once, from a
// separate goroutine, when ctx fires.
//
// The returned release function detaches destroy; call it when the
// guarded resource has completed its work and no longer needs to be
// destroyed on cancellation. Release is idempotent and must be called
// eventually to avoid leaking the watcher goroutine. It does not wait
// for an in-flight destroy to finish.
func Attach(ctx context.Context, destroy func()) (release func()) {
	if ctx.Err() != nil {
		destroy()
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			destroy()
		case <-done:
		}
	}()

	var released bool
	return func() {
		if !released {
			released = true
			close(done)
		}
	}
}
