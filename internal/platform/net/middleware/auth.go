package middleware

import (
	"net/http"

	"unirank/internal/platform/logger"
	pnet "unirank/internal/platform/net"
)

// AuthPort authenticates a request and names its caller
type AuthPort interface {
	Authenticate(r *http.Request) (subject string, err error)
}

// Auth rejects requests the port refuses, writing the mapped error with write.
// A nil port lets everything through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			sub, err := p.Authenticate(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithSubject(r.Context(), sub)
			ctx = logger.WithSubject(ctx, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
