// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqlight

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqlight/reqlight/fault"
	"github.com/reqlight/reqlight/redirect"
	"github.com/reqlight/reqlight/request"
)

func TestClient(t *testing.T) {
	t.Run("happy path", testClientHappyPath)
	t.Run("zero value", testClientZeroValue)
	t.Run("non-success status", testClientNonSuccessStatus)
	t.Run("redirect", testClientRedirect)
	t.Run("content decoding", testClientContentDecoding)
	t.Run("cancellation", testClientCancellation)
	t.Run("timeout", testClientTimeout)
	t.Run("connect error", testClientConnectError)
	t.Run("stream", testClientStream)
	t.Run("events", testClientEvents)
}

func testClientHappyPath(t *testing.T) {
	t.Parallel()
	binary := make([]byte, 256)
	for i := range binary {
		binary[i] = byte(i)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/text":
			_, _ = io.WriteString(w, "Hello, World!")
		case "/binary":
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write(binary)
		case "/echo-headers":
			w.Header().Set("X-Auth", r.Header.Get("Authorization"))
			for _, v := range r.Header["X-Multi"] {
				w.Header().Add("X-Multi-Echo", v)
			}
			_, _ = io.WriteString(w, "ok")
		case "/empty":
			w.WriteHeader(200)
		}
	}))
	defer server.Close()
	cl := &Client{}

	t.Run("text body byte for byte", func(t *testing.T) {
		e, err := cl.Get(server.URL + "/text")
		require.NoError(t, err)
		assert.Equal(t, 200, e.StatusCode())
		assert.Equal(t, []byte("Hello, World!"), e.Body)
		assert.Equal(t, "Hello, World!", e.Text())
		assert.Equal(t, request.Complete, e.State)
		assert.True(t, e.Ended())
		assert.Zero(t, e.Redirects)
	})
	t.Run("binary body byte for byte", func(t *testing.T) {
		e, err := cl.Get(server.URL + "/binary")
		require.NoError(t, err)
		assert.Equal(t, binary, e.Body)
	})
	t.Run("empty body", func(t *testing.T) {
		e, err := cl.Get(server.URL + "/empty")
		require.NoError(t, err)
		assert.Empty(t, e.Body)
		assert.Equal(t, "", e.Text())
	})
	t.Run("basic auth and repeated headers", func(t *testing.T) {
		o, err := request.NewOptions("GET", server.URL+"/echo-headers", nil)
		require.NoError(t, err)
		o.SetBasicAuth("alice", "s3cret")
		o.Header.Add("X-Multi", "one")
		o.Header.Add("X-Multi", "two")
		e, err := cl.Do(o)
		require.NoError(t, err)
		assert.Equal(t, "Basic YWxpY2U6czNjcmV0", e.Header().Get("X-Auth"))
		assert.Equal(t, []string{"one", "two"}, e.Header()["X-Multi-Echo"])
	})
	t.Run("head", func(t *testing.T) {
		e, err := cl.Head(server.URL + "/text")
		require.NoError(t, err)
		assert.Equal(t, 200, e.StatusCode())
		assert.Empty(t, e.Body)
	})
	t.Run("post", func(t *testing.T) {
		echo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			w.Header().Set("X-Content-Type", r.Header.Get("Content-Type"))
			_, _ = w.Write(b)
		}))
		defer echo.Close()
		e, err := cl.Post(echo.URL, "application/json", `{"a":1}`)
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, e.Text())
		assert.Equal(t, "application/json", e.Header().Get("X-Content-Type"))
	})
}

func testClientZeroValue(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "zero")
	}))
	defer server.Close()
	var cl Client
	e, err := cl.Get(server.URL)
	require.NoError(t, err)
	assert.Equal(t, "zero", e.Text())
}

func testClientNonSuccessStatus(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code, _ := strconv.Atoi(r.URL.Path[1:])
		w.WriteHeader(code)
		_, _ = io.WriteString(w, "failure detail")
	}))
	defer server.Close()
	cl := &Client{}

	for _, code := range []int{400, 404, 500, 503} {
		e, err := cl.Get(server.URL + "/" + strconv.Itoa(code))
		require.Error(t, err)
		var respErr *ResponseError
		require.True(t, errors.As(err, &respErr))
		// The rejection carries the full response so callers can
		// branch on status and inspect the body.
		assert.Equal(t, code, respErr.StatusCode())
		assert.Equal(t, "failure detail", respErr.Execution.Text())
		assert.Same(t, e, respErr.Execution)
		assert.Equal(t, request.Complete, e.State)
		assert.False(t, fault.IsAbort(err))
	}
}

func testClientRedirect(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/foo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/bar")
		w.WriteHeader(301)
	})
	mux.HandleFunc("/bar", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "Bar")
	})
	mux.HandleFunc("/loop", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/loop")
		w.WriteHeader(302)
	})
	mux.HandleFunc("/relay-headers", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/echo")
		w.WriteHeader(307)
	})
	mux.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_, _ = w.Write(append([]byte(r.Header.Get("X-Keep")+":"), b...))
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	cl := &Client{}

	t.Run("follows by default", func(t *testing.T) {
		e, err := cl.Get(server.URL + "/foo")
		require.NoError(t, err)
		assert.Equal(t, 200, e.StatusCode())
		assert.Equal(t, "Bar", e.Text())
		assert.Equal(t, 1, e.Redirects)
		assert.Equal(t, 1, e.Hop)
	})
	t.Run("budget zero disables following", func(t *testing.T) {
		o, err := request.NewOptions("GET", server.URL+"/foo", nil)
		require.NoError(t, err)
		o.FollowRedirects = 0
		e, err := cl.Do(o)
		require.Error(t, err)
		var respErr *ResponseError
		require.True(t, errors.As(err, &respErr))
		assert.Equal(t, 301, e.StatusCode())
		assert.Equal(t, "/bar", e.Header().Get("Location"))
		assert.Zero(t, e.Redirects)
	})
	t.Run("budget exhaustion returns the redirect itself", func(t *testing.T) {
		o, err := request.NewOptions("GET", server.URL+"/loop", nil)
		require.NoError(t, err)
		o.FollowRedirects = 3
		e, err := cl.Do(o)
		require.Error(t, err)
		assert.Equal(t, 302, e.StatusCode())
		assert.Equal(t, 3, e.Redirects)
		assert.Equal(t, request.Complete, e.State)
	})
	t.Run("headers and body preserved across hops", func(t *testing.T) {
		o, err := request.NewOptions("POST", server.URL+"/relay-headers", "payload")
		require.NoError(t, err)
		o.Header.Set("X-Keep", "kept")
		e, err := cl.Do(o)
		require.NoError(t, err)
		assert.Equal(t, "kept:payload", e.Text())
	})
	t.Run("post-body policy alone still follows", func(t *testing.T) {
		// With the eager check disabled, the body-completion-time
		// check picks the redirect up.
		deep := &Client{EagerRedirectPolicy: redirect.Never}
		e, err := deep.Get(server.URL + "/foo")
		require.NoError(t, err)
		assert.Equal(t, 200, e.StatusCode())
		assert.Equal(t, "Bar", e.Text())
		assert.Equal(t, 1, e.Redirects)
	})
	t.Run("streaming never follows", func(t *testing.T) {
		o, err := request.NewOptions("GET", server.URL+"/foo", nil)
		require.NoError(t, err)
		sr, err := cl.Stream(o)
		require.NoError(t, err)
		defer func() { _ = sr.Body.Close() }()
		assert.Equal(t, 301, sr.StatusCode)
		assert.Equal(t, "/bar", sr.Header.Get("Location"))
	})
}

func testClientContentDecoding(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/gzip", func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, _ = io.WriteString(zw, "compressed greetings")
		_ = zw.Close()
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(buf.Bytes())
	})
	mux.HandleFunc("/gzip-empty", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		w.WriteHeader(200)
	})
	mux.HandleFunc("/not-modified", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		w.WriteHeader(304)
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	cl := &Client{}

	t.Run("gzip decoded", func(t *testing.T) {
		e, err := cl.Get(server.URL + "/gzip")
		require.NoError(t, err)
		assert.Equal(t, "compressed greetings", e.Text())
	})
	t.Run("empty gzip body decodes empty", func(t *testing.T) {
		e, err := cl.Get(server.URL + "/gzip-empty")
		require.NoError(t, err)
		assert.Equal(t, 200, e.StatusCode())
		assert.Empty(t, e.Body)
	})
	t.Run("304 never pushed through decoder", func(t *testing.T) {
		e, err := cl.Get(server.URL + "/not-modified")
		require.Error(t, err)
		var respErr *ResponseError
		require.True(t, errors.As(err, &respErr))
		assert.Equal(t, 304, e.StatusCode())
		assert.Equal(t, "", e.Text())
	})
}

func testClientCancellation(t *testing.T) {
	t.Parallel()
	t.Run("already cancelled at call time", func(t *testing.T) {
		var reached bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			_, _ = io.WriteString(w, "never seen")
		}))
		defer server.Close()
		ctx, cancelFn := context.WithCancel(context.Background())
		cancelFn()
		o, err := request.NewOptionsWithContext(ctx, "GET", server.URL, nil)
		require.NoError(t, err)
		e, err := (&Client{}).Do(o)
		require.Error(t, err)
		assert.True(t, fault.IsAbort(err), "got %v", err)
		assert.Equal(t, request.Aborted, e.State)
		assert.True(t, e.Aborted())
		assert.False(t, reached)
	})
	t.Run("cancelled while buffering", func(t *testing.T) {
		// The handler parks until the client abandons the exchange, so
		// the server can shut down once the aborted read has torn the
		// connection down.
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Length", "8")
			w.WriteHeader(200)
			_, _ = io.WriteString(w, "part")
			w.(http.Flusher).Flush()
			<-r.Context().Done()
		}))
		defer server.Close()
		ctx, cancelFn := context.WithCancel(context.Background())
		go func() {
			time.Sleep(50 * time.Millisecond)
			cancelFn()
		}()
		o, err := request.NewOptionsWithContext(ctx, "GET", server.URL, nil)
		require.NoError(t, err)
		e, err := (&Client{}).Do(o)
		require.Error(t, err)
		assert.True(t, fault.IsAbort(err), "got %v", err)
		assert.Equal(t, request.Aborted, e.State)
	})
}

func testClientTimeout(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()
	o, err := request.NewOptions("GET", server.URL, nil)
	require.NoError(t, err)
	o.Timeout = 50 * time.Millisecond
	e, err := (&Client{}).Do(o)
	require.Error(t, err)
	assert.True(t, fault.IsTimeout(err), "got %v", err)
	assert.False(t, fault.IsAbort(err))
	assert.True(t, e.Timeout())
	assert.Equal(t, request.Aborted, e.State)
}

func testClientConnectError(t *testing.T) {
	t.Parallel()
	// A server that is immediately closed leaves a port that refuses
	// connections.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := server.URL
	server.Close()

	e, err := (&Client{}).Get(target)
	require.Error(t, err)
	var connErr *ConnectError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, http.StatusNotFound, connErr.StatusCode())
	assert.Contains(t, connErr.Error(), target)
	assert.Equal(t, request.Failed, e.State)
	assert.Nil(t, e.Response)
}

func testClientStream(t *testing.T) {
	t.Parallel()
	t.Run("headers before body completes", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Ready", "yes")
			w.WriteHeader(200)
			w.(http.Flusher).Flush()
			select {
			case <-release:
			case <-r.Context().Done():
				return
			}
			_, _ = io.WriteString(w, "late body")
		}))
		defer server.Close()
		o, err := request.NewOptions("GET", server.URL, nil)
		require.NoError(t, err)
		sr, err := (&Client{}).Stream(o)
		require.NoError(t, err)
		// Headers are available although the server has not finished
		// writing the body yet.
		assert.Equal(t, 200, sr.StatusCode)
		assert.Equal(t, "yes", sr.Header.Get("X-Ready"))
		release <- struct{}{}
		var got []byte
		for {
			chunk, err := sr.Body.Next()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			got = append(got, chunk...)
		}
		assert.Equal(t, "late body", string(got))
	})
	t.Run("chunks arrive in order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, part := range []string{"alpha ", "beta ", "gamma"} {
				_, _ = io.WriteString(w, part)
				w.(http.Flusher).Flush()
			}
		}))
		defer server.Close()
		o, err := request.NewOptions("GET", server.URL, nil)
		require.NoError(t, err)
		sr, err := (&Client{}).Stream(o)
		require.NoError(t, err)
		var got bytes.Buffer
		for {
			chunk, err := sr.Body.Next()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			got.Write(chunk)
		}
		assert.Equal(t, "alpha beta gamma", got.String())
		assert.Equal(t, io.EOF, sr.Body.Err())
	})
	t.Run("cancel mid-stream", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "first")
			w.(http.Flusher).Flush()
			<-r.Context().Done()
		}))
		defer server.Close()
		ctx, cancelFn := context.WithCancel(context.Background())
		o, err := request.NewOptionsWithContext(ctx, "GET", server.URL, nil)
		require.NoError(t, err)
		sr, err := (&Client{}).Stream(o)
		require.NoError(t, err)
		chunk, err := sr.Body.Next()
		require.NoError(t, err)
		assert.Equal(t, "first", string(chunk))
		cancelFn()
		for {
			_, err = sr.Body.Next()
			if err != nil {
				break
			}
		}
		assert.True(t, fault.IsAbort(err), "got %v", err)
		assert.True(t, fault.IsAbort(sr.Body.Err()))
	})
	t.Run("connect error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		target := server.URL
		server.Close()
		o, err := request.NewOptions("GET", target, nil)
		require.NoError(t, err)
		sr, err := (&Client{}).Stream(o)
		require.Error(t, err)
		assert.Nil(t, sr)
		var connErr *ConnectError
		assert.True(t, errors.As(err, &connErr))
	})
}

func testClientEvents(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/foo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/bar")
		w.WriteHeader(302)
	})
	mux.HandleFunc("/bar", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "Bar")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	var seen []string
	handlers := &HandlerGroup{}
	handlers.PushBackAll(HandlerFunc(func(evt Event, e *request.Execution) {
		seen = append(seen, evt.Name())
	}))
	cl := &Client{Handlers: handlers}

	e, err := cl.Get(server.URL + "/foo")
	require.NoError(t, err)
	assert.Equal(t, "Bar", e.Text())
	assert.Equal(t, []string{
		"BeforeExecutionStart",
		"BeforeHop",
		"AfterHeaders",
		"AfterRedirect",
		"BeforeHop",
		"AfterHeaders",
		"BeforeReadBody",
		"AfterHop",
		"AfterExecutionEnd",
	}, seen)
}

func TestSuccessStatus(t *testing.T) {
	assert.True(t, successStatus(200))
	assert.True(t, successStatus(204))
	assert.True(t, successStatus(299))
	assert.True(t, successStatus(1223))
	assert.False(t, successStatus(199))
	assert.False(t, successStatus(300))
	assert.False(t, successStatus(301))
	assert.False(t, successStatus(404))
	assert.False(t, successStatus(500))
}
