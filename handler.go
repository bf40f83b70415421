// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqlight

import (
	"github.com/reqlight/reqlight/request"
)

// A HandlerGroup holds the event handler chains installed in a Client.
// A chain runs in installation order each time its event occurs during
// an exchange, once per occurrence: a BeforeHop handler runs once per
// request hop, an AfterRedirect handler once per followed redirect,
// and so on.
//
// The zero value is an empty group ready for use.
type HandlerGroup struct {
	chains map[Event][]Handler
}

// PushBack appends h to the handler chain for evt. It panics if h is
// nil or evt is not one of the events listed by Events.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("reqlight: nil handler")
	}
	if evt < 0 || evt >= eventSentinel {
		panic("reqlight: unknown event")
	}

	if g.chains == nil {
		g.chains = make(map[Event][]Handler, numEvents)
	}
	g.chains[evt] = append(g.chains[evt], h)
}

// PushBackAll appends h to the handler chain for every event, in the
// order Events lists them. It suits handlers that observe the whole
// exchange timeline, such as LogHandler.
func (g *HandlerGroup) PushBackAll(h Handler) {
	for _, evt := range Events() {
		g.PushBack(evt, h)
	}
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	for _, h := range g.chains[evt] {
		h.Handle(evt, e)
	}
}

// A Handler handles the occurrence of an event during an exchange.
type Handler interface {
	Handle(Event, *request.Execution)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers. If f is a function with appropriate
// signature, then HandlerFunc(f) is a Handler that calls f.
type HandlerFunc func(Event, *request.Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}
