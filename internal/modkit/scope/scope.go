// Package scope carries string attributes across module boundaries on a context
package scope

import "context"

type ctxKey struct{}

// With returns a child context carrying key=value on top of the attributes already on ctx
func With(ctx context.Context, key, value string) context.Context {
	parent, _ := ctx.Value(ctxKey{}).(map[string]string)
	next := make(map[string]string, len(parent)+1)
	for k, v := range parent {
		next[k] = v
	}
	next[key] = value
	return context.WithValue(ctx, ctxKey{}, next)
}

// Get returns the attribute stored under key
func Get(ctx context.Context, key string) (string, bool) {
	attrs, _ := ctx.Value(ctxKey{}).(map[string]string)
	v, ok := attrs[key]
	return v, ok
}
