// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package redirect

import (
	urlpkg "net/url"

	"github.com/reqlight/reqlight/request"
)

// A Policy decides whether the client should follow a redirect
// response, and against which URL the next hop should be issued.
//
// Implementations of Policy must be safe for concurrent use by
// multiple goroutines.
//
// Use the built-in policies Eager and DefaultPolicy, construct one
// from a status test with StatusCode, or implement your own. Use
// PolicyFunc to convert an ordinary function into a Policy.
type Policy interface {
	// Follow examines the current exchange state and returns the
	// resolved target of the next hop and true if the redirect should
	// be followed, or nil and false otherwise.
	Follow(e *request.Execution) (*urlpkg.URL, bool)
}

// The PolicyFunc type is an adapter to allow the use of ordinary
// functions as redirect policies. If f is a function with the
// appropriate signature, PolicyFunc(f) is a Policy that calls f.
type PolicyFunc func(e *request.Execution) (*urlpkg.URL, bool)

// Follow calls f(e).
func (f PolicyFunc) Follow(e *request.Execution) (*urlpkg.URL, bool) {
	return f(e)
}

// DefaultPolicy is the redirect policy applied after a buffered
// response body has been fully read. It follows statuses 300, 301,
// 302, 303, and 307 when a Location header is present and the
// remaining hop budget is positive.
var DefaultPolicy Policy = StatusCode(300, 301, 302, 303, 307)

// Eager is the redirect policy applied as soon as response headers are
// received, before any body is read. It follows any status in
// [300,400) when a Location header is present and the remaining hop
// budget is positive.
//
// Eager normally short-circuits DefaultPolicy: a hop it follows never
// reaches the body-completion redirect check. Both draw from the same
// hop budget.
var Eager Policy = PolicyFunc(func(e *request.Execution) (*urlpkg.URL, bool) {
	s := e.StatusCode()
	if s < 300 || s >= 400 {
		return nil, false
	}
	return target(e)
})

// Never is a policy that never follows redirects. It is useful if you
// want the client to hand every redirect response back to the caller
// regardless of the hop budget.
var Never Policy = PolicyFunc(func(e *request.Execution) (*urlpkg.URL, bool) {
	return nil, false
})

// StatusCode constructs a redirect policy which follows exactly the
// listed response statuses, subject to the standard conditions: a
// Location header must be present, the resolved target must be valid,
// and the remaining hop budget must be positive.
func StatusCode(ss ...int) Policy {
	ss2 := make([]int, len(ss))
	copy(ss2, ss)
	return PolicyFunc(func(e *request.Execution) (*urlpkg.URL, bool) {
		for _, s := range ss2 {
			if e.StatusCode() == s {
				return target(e)
			}
		}
		return nil, false
	})
}

// target applies the conditions common to every built-in policy and
// resolves the Location header.
func target(e *request.Execution) (*urlpkg.URL, bool) {
	if budget(e) <= 0 {
		return nil, false
	}
	location := e.Header().Get("Location")
	if location == "" {
		return nil, false
	}
	base := e.Options.URL
	if e.Request != nil {
		base = e.Request.URL
	}
	u, err := Resolve(location, base)
	if err != nil {
		return nil, false
	}
	return u, true
}

// budget returns the remaining hop budget at the current hop: the
// options' initial budget less the redirects already followed.
func budget(e *request.Execution) int {
	return e.Options.FollowRedirects - e.Redirects
}

// Resolve resolves a Location header value against the URL of the
// request hop that produced it. An absolute location is used as-is; a
// path-only or otherwise relative location is resolved against the
// originating scheme, host, and port.
func Resolve(location string, base *urlpkg.URL) (*urlpkg.URL, error) {
	ref, err := urlpkg.Parse(location)
	if err != nil {
		return nil, err
	}
	if ref.IsAbs() {
		return ref, nil
	}
	return base.ResolveReference(ref), nil
}
