// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package proxy

import (
	"crypto/tls"
	"net/http"
	urlpkg "net/url"
	"os"

	"golang.org/x/net/http/httpproxy"
)

// A Config holds the proxy URL and TLS strictness applied to exchanges
// that do not override them. The zero value means no configured proxy
// and strict TLS, which is the library's starting state.
//
// Config is read on every exchange. Updates are expected to be rare
// and are not guarded against concurrent reads; last write wins and a
// stale read is tolerated.
type Config struct {
	// URL is the configured proxy URL, or nil when no proxy is
	// configured and the environment decides.
	URL *urlpkg.URL

	// InsecureSSL disables certificate validation during TLS
	// negotiation with the proxy and with the ultimate endpoint. The
	// zero value keeps validation strict.
	InsecureSSL bool
}

// An Agent is the connection-establishment object for one exchange: a
// transport that dials either directly or through the resolved proxy,
// carrying the TLS strictness to apply during negotiation. For HTTPS
// targets behind an HTTP(S) proxy the transport tunnels via HTTP
// CONNECT; for HTTP targets it forwards plainly.
type Agent struct {
	// Proxy is the proxy the agent routes through, or nil for a direct
	// connection.
	Proxy *urlpkg.URL

	// StrictSSL records whether certificate validation failures abort
	// the connection.
	StrictSSL bool

	transport *http.Transport
}

// RoundTripper returns the agent's transport. The transport is built
// once per agent; connection reuse beyond that is whatever net/http
// provides.
func (a *Agent) RoundTripper() http.RoundTripper {
	if a.transport == nil {
		a.transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: !a.StrictSSL},
		}
		if a.Proxy != nil {
			a.transport.Proxy = http.ProxyURL(a.Proxy)
		}
	}
	return a.transport
}

// Proxied reports whether the agent routes through a proxy.
func (a *Agent) Proxied() bool {
	return a.Proxy != nil
}

// Resolve decides whether and how an exchange against target should be
// routed through a proxy, and returns the agent to use.
//
// The proxy URL is taken from the first of: the explicit override, the
// config's URL, or the environment variables matching the target's
// scheme (HTTPS_PROXY/https_proxy for an https target, falling back to
// HTTP_PROXY/http_proxy; http targets consult only the HTTP
// variables; NO_PROXY/no_proxy exclusions are honored). A proxy URL
// whose scheme is not http or https is treated as absent, yielding a
// direct agent rather than a failed exchange.
//
// TLS strictness is the override if non-nil, else the config's
// default. Resolution is pure given its inputs: resolving twice yields
// equivalent agents.
func Resolve(cfg *Config, target *urlpkg.URL, override *urlpkg.URL, strict *bool) *Agent {
	if cfg == nil {
		cfg = &Config{}
	}

	strictSSL := !cfg.InsecureSSL
	if strict != nil {
		strictSSL = *strict
	}

	proxyURL := override
	if proxyURL == nil {
		proxyURL = cfg.URL
	}
	if proxyURL == nil {
		proxyURL = fromEnvironment(target)
	}
	if !validScheme(proxyURL) {
		proxyURL = nil
	}

	return &Agent{Proxy: proxyURL, StrictSSL: strictSSL}
}

// fromEnvironment resolves the proxy for target from the process
// environment. HTTPS targets fall back to the HTTP proxy variables
// when no HTTPS-specific variable is set.
func fromEnvironment(target *urlpkg.URL) *urlpkg.URL {
	httpProxy := getenvAny("HTTP_PROXY", "http_proxy")
	httpsProxy := getenvAny("HTTPS_PROXY", "https_proxy")
	if httpsProxy == "" {
		httpsProxy = httpProxy
	}
	cfg := &httpproxy.Config{
		HTTPProxy:  httpProxy,
		HTTPSProxy: httpsProxy,
		NoProxy:    getenvAny("NO_PROXY", "no_proxy"),
	}
	u, err := cfg.ProxyFunc()(target)
	if err != nil {
		return nil
	}
	return u
}

func getenvAny(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

func validScheme(u *urlpkg.URL) bool {
	return u != nil && (u.Scheme == "http" || u.Scheme == "https")
}
