// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fault

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// A Category is the failure category of a particular error, as reported
// by function Categorize().
//
// Categories are assigned by error identity (errors.Is and errors.As on
// the error and its wrapped causes), never by matching message text.
// This is what lets callers reliably tell a deliberate cancellation
// apart from a network failure whose message happens to mention
// cancellation.
type Category int

const (
	// Not indicates a nil error or an error that fits no other
	// category.
	Not Category = iota
	// Abort indicates the exchange was cancelled via its context. The
	// distinguishing identity is context.Canceled anywhere in the
	// error's cause chain.
	//
	// Abort takes precedence over every other category: an error that
	// is both a cancellation and, say, a connection reset is an Abort.
	Abort
	// Timeout indicates a deadline was exceeded, either the exchange's
	// own timeout or one imposed by the transport. The distinguishing
	// identities are context.DeadlineExceeded in the cause chain, or
	// any wrapped cause whose Timeout() method reports true.
	Timeout
	// Connection indicates a failure establishing or using the network
	// connection: DNS resolution, connection refused or reset, or a
	// TLS handshake failure.
	Connection
)

// Categorize returns the failure category of the given error. A nil
// error produces Not.
//
// In assessing the category, Categorize looks at wrapped cause errors
// contained within err, not just err itself. It never inspects error
// message text.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	if errors.Is(err, context.Canceled) {
		return Abort
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return Connection
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.EHOSTUNREACH, syscall.ENETUNREACH, syscall.EPIPE:
			return Connection
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return Connection
	}

	return Not
}

// IsAbort reports whether err represents a cancellation of the exchange
// (Category Abort). It is the identity check callers should use to
// branch on cancellation versus every other failure mode.
func IsAbort(err error) bool {
	return Categorize(err) == Abort
}

// IsTimeout reports whether err represents an exceeded deadline
// (Category Timeout).
func IsTimeout(err error) bool {
	return Categorize(err) == Timeout
}

type hasTimeout interface {
	Timeout() bool
}
