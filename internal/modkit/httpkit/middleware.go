package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "unirank/internal/platform/net/http"
	"unirank/internal/platform/net/middleware"
)

// StackOptions tunes the parts of the common stack that differ per deployment
type StackOptions struct {
	CORSOrigins []string
	Secure      middleware.SecureHeadersOptions
	Timeout     time.Duration
	SlowRequest time.Duration
}

// CommonStack returns the /api/v1 middleware slice with default options
func CommonStack() []func(http.Handler) http.Handler {
	return CommonStackWith(StackOptions{})
}

// CommonStackWith returns the /api/v1 middleware slice, outermost first
func CommonStackWith(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.SlowRequest <= 0 {
		o.SlowRequest = 500 * time.Millisecond
	}
	cors := middleware.CORSOptions{}
	if len(o.CORSOrigins) > 0 {
		cors.AllowedOrigins = o.CORSOrigins
		cors.AllowedHeaders = []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", AdminHeader}
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.RecoverJSON,

		middleware.NoCache(),
		middleware.SecureHeaders(o.Secure),
		middleware.CORS(cors),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}

// Auth wires the auth middleware to the envelope writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
