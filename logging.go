// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqlight

import (
	"github.com/apex/log"

	"github.com/reqlight/reqlight/request"
)

// LogHandler returns an event handler that logs exchange progress to
// the given structured logger at debug level, and terminal errors at
// warn level. Install it on every event to trace a client:
//
//	handlers := &reqlight.HandlerGroup{}
//	handlers.PushBackAll(reqlight.LogHandler(log.Log))
//	client := &reqlight.Client{Handlers: handlers}
//
// The library core never logs on its own; all observability goes
// through handlers.
func LogHandler(logger log.Interface) Handler {
	return HandlerFunc(func(evt Event, e *request.Execution) {
		entry := logger.WithFields(log.Fields{
			"event": evt.Name(),
			"url":   e.Options.URL.String(),
			"hop":   e.Hop,
			"state": e.State.String(),
		})
		if code := e.StatusCode(); code != 0 {
			entry = entry.WithField("status", code)
		}
		if evt == AfterExecutionEnd {
			entry = entry.WithField("duration", e.Duration().String())
			if e.Err != nil {
				entry.WithError(e.Err).Warn("exchange ended")
				return
			}
		}
		entry.Debug("exchange event")
	})
}
