// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"io"
	urlpkg "net/url"
)

const badBodyTypeMsg = "reqlight/request: invalid type (for body use nil, " +
	"string, []byte, url.Values, io.Reader or io.ReadCloser)"

// BodyBytes coerces the generic body parameter accepted by NewOptions
// and the POST helpers into the byte slice an Options carries. Bodies
// are always fully buffered up front: a redirect hop may need to send
// the body again, which a one-shot reader cannot do.
//
// The accepted types are:
//
// • nil, for an empty body, yielding a nil slice.
//
// • string and []byte, used as-is (a []byte is not copied).
//
// • url.Values, URL-encoded for form posts.
//
// • io.Reader and io.ReadCloser, read to the end; a ReadCloser is
// closed whether or not the read succeeded. A read or close error is
// returned with a nil slice.
//
// Any other type yields an error.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case urlpkg.Values:
		return []byte(x.Encode()), nil
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		closeErr := x.Close()
		if err != nil {
			return nil, err
		}
		if closeErr != nil {
			return nil, closeErr
		}
		return b, nil
	case io.Reader:
		b, err := io.ReadAll(x)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, errors.New(badBodyTypeMsg)
	}
}
