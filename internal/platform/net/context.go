// Package net carries request scoped ids between middleware, handlers and the logger
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keySubject ctxKey = "subject"

// WithRequestID stores id where chi's RequestID middleware would
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, id)
}

// RequestID returns the request id on the context, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithSubject records who passed the auth middleware
func WithSubject(ctx context.Context, subject string) context.Context {
	if subject == "" {
		return ctx
	}
	return context.WithValue(ctx, keySubject, subject)
}

// Subject returns the authenticated caller, or "" on open routes
func Subject(ctx context.Context) string {
	s, _ := ctx.Value(keySubject).(string)
	return s
}
