// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqlight

import (
	urlpkg "net/url"

	"github.com/reqlight/reqlight/request"
	"github.com/reqlight/reqlight/stream"
)

// Doer is the interface that wraps the basic Do method.
//
// Do issues the logical request described by the options, buffers the
// response body, and returns the terminal execution state (and error,
// if any). Client implements the Doer interface, and any other Doer
// implementation must behave substantially the same as Client.Do.
type Doer interface {
	Do(o *request.Options) (*request.Execution, error)
}

// Streamer is the interface that wraps the basic Stream method.
//
// Stream issues the logical request described by the options and
// returns status, headers, and a pull-based body sequence as soon as
// response headers arrive. Client implements the Streamer interface,
// and any other Streamer implementation must behave substantially the
// same as Client.Stream.
type Streamer interface {
	Stream(o *request.Options) (*stream.Response, error)
}

// Getter is the interface that wraps the basic Get method.
//
// Get issues a GET to the specified URL and returns the terminal
// execution state (and error, if any). Client implements the Getter
// interface, and any other Getter implementation must behave
// substantially the same as Client.Get.
//
// Any Doer can be used to emulate a Getter via the Get function.
type Getter interface {
	Get(url string) (*request.Execution, error)
}

// Header is the interface that wraps the basic Head method.
//
// Head issues a HEAD to the specified URL and returns the terminal
// execution state (and error, if any). Client implements the Header
// interface, and any other Header implementation must behave
// substantially the same as Client.Head.
//
// Any Doer can be used to emulate a Header via the Head function.
type Header interface {
	Head(url string) (*request.Execution, error)
}

// Poster is the interface that wraps the basic Post method.
//
// Post issues a POST to the specified URL and returns the terminal
// execution state (and error, if any). Client implements the Poster
// interface, and any other Poster implementation must behave
// substantially the same as Client.Post.
//
// The body parameter may be nil for an empty body, or may be any of
// the types supported by request.NewOptions, request.BodyBytes, and
// reqlight.Post, namely: string; []byte; url.Values; io.Reader; and io.ReadCloser.
//
// Any Doer can be used to emulate a Poster via the Post function.
type Poster interface {
	Post(url, contentType string, body interface{}) (*request.Execution, error)
}

// FormPoster is the interface that wraps the basic PostForm method.
//
// PostForm issues a form POST to the specified URL and returns the
// terminal execution state (and error, if any). Client implements the
// FormPoster interface, and any other FormPoster implementation must
// behave substantially the same as Client.PostForm.
//
// The request body is set to the URL-encoded keys and values from
// data, and the content type is set to
// application/x-www-form-urlencoded.
//
// Any Doer can be used to emulate a FormPoster via the PostForm
// function.
type FormPoster interface {
	PostForm(url string, data urlpkg.Values) (*request.Execution, error)
}

// Executor is the interface that groups the basic Do, Stream, Get,
// Head, Post, and PostForm methods.
//
// Client implements Executor.
type Executor interface {
	Doer
	Streamer
	Getter
	Header
	Poster
	FormPoster
}

// Get uses the specified Doer to issue a GET to the specified URL,
// using the same policies as d.Do.
//
// To make a request with custom headers, use request.NewOptions and
// d.Do.
func Get(d Doer, url string) (*request.Execution, error) {
	o, err := request.NewOptions("GET", url, nil)
	if err != nil {
		return nil, err
	}
	return d.Do(o)
}

// Head uses the specified Doer to issue a HEAD to the specified URL,
// using the same policies as d.Do.
//
// To make a request with custom headers, use request.NewOptions and
// d.Do.
func Head(d Doer, url string) (*request.Execution, error) {
	o, err := request.NewOptions("HEAD", url, nil)
	if err != nil {
		return nil, err
	}
	return d.Do(o)
}

// Post uses the specified Doer to issue a POST to the specified URL,
// using the same policies as d.Do.
//
// The body parameter may be nil for an empty body, or may be any of
// the types supported by Client.Post, request.NewOptions, and
// request.BodyBytes, namely: string; []byte; url.Values; io.Reader; and
// io.ReadCloser.
//
// To make a request with custom headers, use request.NewOptions and
// d.Do.
func Post(d Doer, url, contentType string, body interface{}) (*request.Execution, error) {
	b, err := request.BodyBytes(body)
	if err != nil {
		return nil, err
	}
	o, err := request.NewOptions("POST", url, b)
	if err != nil {
		return nil, err
	}
	o.Header.Set("Content-Type", contentType)
	return d.Do(o)
}

// PostForm uses the specified Doer to issue a POST to the specified
// URL, with data's keys and values URL-encoded as the request body.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
// To set other headers, use request.NewOptions and d.Do.
func PostForm(d Doer, url string, data urlpkg.Values) (*request.Execution, error) {
	return Post(d, url, "application/x-www-form-urlencoded", data)
}
