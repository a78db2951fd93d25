package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "unirank/internal/platform/errors"
	pnet "unirank/internal/platform/net"
	"unirank/internal/platform/net/middleware"
)

type fakePort struct {
	sub string
	err error
}

func (f fakePort) Authenticate(*http.Request) (string, error) { return f.sub, f.err }

func writeStatus(w http.ResponseWriter, status int, _ any) { w.WriteHeader(status) }

func TestAuth(t *testing.T) {
	cases := []struct {
		name     string
		port     middleware.AuthPort
		wantCode int
		wantSub  string
		reached  bool
	}{
		{"nil port", nil, http.StatusOK, "", true},
		{"accepted", fakePort{sub: "admin"}, http.StatusOK, "admin", true},
		{"rejected", fakePort{err: perr.Unauthorizedf("invalid admin key")}, http.StatusUnauthorized, "", false},
		{"foreign error", fakePort{err: errors.New("boom")}, http.StatusInternalServerError, "", false},
	}
	for _, c := range cases {
		var reached bool
		var sub string
		h := middleware.Auth(c.port, writeStatus)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			sub = pnet.Subject(r.Context())
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/universities", nil))
		if rec.Code != c.wantCode || reached != c.reached || sub != c.wantSub {
			t.Fatalf("%s: code %d reached %v sub %q", c.name, rec.Code, reached, sub)
		}
	}
}
