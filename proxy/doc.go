// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package proxy decides whether an exchange is routed through an HTTP
// proxy and constructs the transport agent that carries the decision.
//
// Resolution order for the proxy URL is: explicit per-request
// override, then the configured Config.URL, then the environment
// (HTTP_PROXY/http_proxy for http targets; HTTPS_PROXY/https_proxy,
// falling back to the HTTP variables, for https targets, with
// NO_PROXY/no_proxy honored). A resolved URL with a non-http(s) scheme
// yields a direct connection rather than an error.
package proxy
