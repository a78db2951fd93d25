package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perrs "unirank/internal/platform/errors"
)

// AdminHeader carries the admin key on protected routes
const AdminHeader = "X-Admin-Key"

// AdminSubject is the subject recorded for callers holding the admin key
const AdminSubject = "admin"

// TokenFunc checks a presented credential and returns the subject it belongs to
type TokenFunc func(token string) (subject string, err error)

// Port implements middleware.AuthPort by extracting a credential and delegating to a TokenFunc
type Port struct {
	check TokenFunc
}

// NewPortFunc builds a Port around fn
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{check: fn}
}

// NewAdminKeyPort builds a Port that accepts exactly key
// an empty key rejects every request
func NewAdminKeyPort(key string) *Port {
	return NewPortFunc(AdminKey(key))
}

// AdminKey returns a TokenFunc comparing tokens to key in constant time
func AdminKey(key string) TokenFunc {
	want := []byte(key)
	return func(token string) (string, error) {
		if len(want) == 0 {
			return "", perrs.Unauthorizedf("admin access disabled")
		}
		if subtle.ConstantTimeCompare([]byte(token), want) != 1 {
			return "", perrs.Unauthorizedf("invalid admin key")
		}
		return AdminSubject, nil
	}
}

// Credential returns the admin credential from the X-Admin-Key header, the key query
// parameter, or an Authorization Bearer token, in that order
func Credential(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(AdminHeader)); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.URL.Query().Get("key")); v != "" {
		return v
	}
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer"
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(s[len(prefix):])
}

// Authenticate extracts the credential and returns the subject it belongs to
func (p *Port) Authenticate(r *http.Request) (string, error) {
	raw := Credential(r)
	if raw == "" {
		return "", perrs.Unauthorizedf("missing admin key")
	}
	if p.check == nil {
		return "", perrs.Unauthorizedf("invalid admin key")
	}
	sub, err := p.check(raw)
	if err != nil {
		return "", perrs.Unauthorizedf("invalid admin key")
	}
	return sub, nil
}
