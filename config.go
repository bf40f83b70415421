// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqlight

import (
	"fmt"
	urlpkg "net/url"

	"github.com/reqlight/reqlight/proxy"
	"github.com/reqlight/reqlight/request"
	"github.com/reqlight/reqlight/stream"
)

// DefaultClient is the client used by the package-level Do and Stream
// functions, and the client whose proxy configuration Configure
// mutates. Its starting state is the zero Client: no configured proxy,
// strict TLS.
var DefaultClient = &Client{}

// Configure sets the proxy URL and TLS strictness applied by
// DefaultClient to all subsequent exchanges that do not override them
// per request. An empty proxyURL clears the configured proxy, leaving
// the environment variables to decide per request.
//
// Configure is expected to be called rarely, typically once at
// startup or when a settings change is observed. It is not
// synchronized against in-flight exchanges; an exchange racing a
// Configure call may observe either configuration.
func Configure(proxyURL string, strictSSL bool) error {
	cfg := &proxy.Config{InsecureSSL: !strictSSL}
	if proxyURL != "" {
		u, err := urlpkg.Parse(proxyURL)
		if err != nil {
			return fmt.Errorf("reqlight: invalid proxy URL %q: %w", proxyURL, err)
		}
		cfg.URL = u
	}
	DefaultClient.Proxy = cfg
	return nil
}

// Do issues a request using DefaultClient, buffering the response
// body. See Client.Do.
func Do(o *request.Options) (*request.Execution, error) {
	return DefaultClient.Do(o)
}

// Stream issues a request using DefaultClient, exposing the response
// body as a pull-based sequence. See Client.Stream.
func Stream(o *request.Options) (*stream.Response, error) {
	return DefaultClient.Stream(o)
}
