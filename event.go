// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqlight

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// exchange starts.
	//
	// When Client fires BeforeExecutionStart, the execution is
	// non-nil but the only field that has been set is the options.
	BeforeExecutionStart Event = iota
	// BeforeHop identifies the event that occurs before each request
	// hop within the exchange: once before the initial request, and
	// once before each followed redirect.
	//
	// When Client fires BeforeHop, the execution's request field is
	// set to the HTTP request that WILL BE sent after all BeforeHop
	// handlers have finished.
	//
	// BeforeHop handlers may modify the execution's request, or some
	// of its fields, thus changing the HTTP request that will be sent.
	// However, BeforeHop handlers should clone request fields which
	// have reference types (URL and Header) before changing them to
	// avoid side effects on the options.
	BeforeHop
	// AfterHeaders identifies the event that occurs when a hop's
	// response status and headers have been received, before any of
	// the body is read and before the pre-body redirect check runs.
	//
	// When Client fires AfterHeaders, the execution's response field
	// is set.
	AfterHeaders
	// BeforeReadBody identifies the event that occurs in a buffered
	// exchange after the pre-body redirect check has declined to
	// follow, and before the response body is read and buffered.
	//
	// BeforeReadBody never fires for a hop whose redirect is followed
	// pre-body, and never fires in a streamed exchange.
	BeforeReadBody
	// AfterRedirect identifies the event that occurs after the client
	// has decided to follow a redirect, before the next hop's request
	// is built.
	//
	// When Client fires AfterRedirect, the execution's redirect
	// counter has been incremented and its response field still holds
	// the redirect response being followed.
	AfterRedirect
	// AfterHop identifies the event that occurs after the exchange's
	// terminal hop is concluded, whether it concluded successfully or
	// in an error. Hops that end in a followed redirect fire
	// AfterRedirect instead.
	//
	// When Client fires AfterHop, either the execution's response
	// field or its error field OR BOTH may be set to non-nil values,
	// but it will never be the case that both are nil.
	AfterHop
	// AfterExecutionEnd identifies the event that occurs after the
	// exchange ends. For a buffered exchange it fires when the
	// terminal response's body has been read (or reading failed); for
	// a streamed exchange it fires when the stream terminates.
	//
	// When Client fires AfterExecutionEnd, the execution is in its
	// terminal state and the end time is set.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events typed as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeHop",
	"AfterHeaders",
	"BeforeReadBody",
	"AfterRedirect",
	"AfterHop",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in an
// exchange made by Client, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeHop,
		AfterHeaders,
		BeforeReadBody,
		AfterRedirect,
		AfterHop,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
