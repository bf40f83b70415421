// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package fault classifies errors from an HTTP exchange by identity:
// cancellation, timeout, connection failure, or none of the above.
// Classification drives the library's error taxonomy and lets callers
// branch on what went wrong without matching message text.
//
// Package fault is extremely lightweight, as it depends only on the
// standard library, so it doesn't bring any significant dependencies
// when imported as a standalone package.
package fault
