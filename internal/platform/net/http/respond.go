// Package http carries the chi router seam, the server wrapper, and the response envelope
package http

import (
	"mime"
	stdhttp "net/http"
	"strconv"

	pnet "unirank/internal/platform/net"

	"github.com/goccy/go-json"
)

// Envelope is the body of every JSON response
type Envelope struct {
	pnet.Wire
	Data any `json:"data,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return-style handlers produce
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
	// Raw bypasses the envelope and is written as is
	Raw []byte
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if resp.Raw != nil {
		w.Header().Set("Content-Length", strconv.Itoa(len(resp.Raw)))
		w.WriteHeader(status)
		_, _ = w.Write(resp.Raw)
		return
	}

	reqID := pnet.RequestID(r.Context())
	if err, ok := resp.Body.(error); ok && err != nil {
		code, wire := pnet.Error(err, reqID)
		JSON(w, code, Envelope{Wire: wire})
		return
	}
	JSON(w, status, Envelope{
		Wire: pnet.Wire{StatusCode: status, Status: stdhttp.StatusText(status), RequestID: reqID},
		Data: resp.Body,
	})
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error returns a response whose status and envelope derive from err
func Error(err error) Response { return Response{Body: err} }

// File returns a 200 attachment download with the given content type
func File(name, contentType string, body []byte) Response {
	h := stdhttp.Header{}
	h.Set("Content-Type", contentType)
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	if body == nil {
		body = []byte{}
	}
	return Response{Status: stdhttp.StatusOK, Header: h, Raw: body}
}
