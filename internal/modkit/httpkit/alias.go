// Package httpkit gives modules the routing, auth and response helpers they mount with
// so they never import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "unirank/internal/platform/net/http"
)

type (
	// Envelope is the JSON body every endpoint answers with
	Envelope = phttp.Envelope

	// Response is what return-style handlers produce
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router
)

// File returns a download response that bypasses the envelope
func File(name, contentType string, body []byte) Response {
	return phttp.File(name, contentType, body)
}

// Call adapts a handler returning (data, error); a returned Response is written as is
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Get mounts fn under GET
func Get(r Router, path string, fn func(*http.Request) (any, error)) { r.Get(path, Call(fn)) }

// Post mounts fn under POST
func Post(r Router, path string, fn func(*http.Request) (any, error)) { r.Post(path, Call(fn)) }

// Delete mounts fn under DELETE
func Delete(r Router, path string, fn func(*http.Request) (any, error)) { r.Delete(path, Call(fn)) }
