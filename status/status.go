// Copyright 2026 The reqlight Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package status maps HTTP status codes to human-readable error
// descriptions. It is a pure lookup table: codes below 400 have no
// description, recognized 4xx/5xx codes map to a fixed text, and any
// other code of 400 or above falls back to a generic description.
package status

import "fmt"

var texts = map[int]string{
	400: "Bad request. The request cannot be fulfilled due to bad syntax.",
	401: "Unauthorized. The server is refusing to respond.",
	403: "Forbidden. The server is refusing to respond.",
	404: "Not Found. The requested location could not be found.",
	405: "Method not allowed. A request was made using a request method not supported by that location.",
	406: "Not Acceptable. The server can only generate a response that is not accepted by the client.",
	407: "Proxy Authentication Required. The client must first authenticate itself with the proxy.",
	408: "Request Timeout. The server timed out waiting for the request.",
	409: "Conflict. The request could not be completed because of a conflict in the request.",
	410: "Gone. The requested page is no longer available.",
	411: "Length Required. The \"Content-Length\" is not defined.",
	412: "Precondition Failed. The precondition given in the request evaluated to false by the server.",
	413: "Request Entity Too Large. The server will not accept the request, because the request entity is too large.",
	414: "Request-URI Too Long. The server will not accept the request, because the URL is too long.",
	415: "Unsupported Media Type. The server will not accept the request, because the media type is not supported.",
	500: "Internal Server Error.",
	501: "Not Implemented. The server either does not recognize the request method, or it lacks the ability to fulfill the request.",
	503: "Service Unavailable. The server is currently unavailable (overloaded or down).",
}

// Text returns a human-readable description of an HTTP error status
// code. It returns the empty string for codes below 400, since those do
// not represent errors. For codes of 400 or above with no recognized
// description, it returns a generic fallback naming the code.
func Text(code int) string {
	if code < 400 {
		return ""
	}
	if text, ok := texts[code]; ok {
		return text
	}
	return fmt.Sprintf("HTTP status code %d", code)
}
