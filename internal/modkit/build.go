package modkit

import (
	"net/http"

	"unirank/internal/modkit/httpkit"
)

// Option adjusts how a module is built
type Option func(*Built)

// WithName overrides the module name used by the port registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix mounts the module under prefix; empty mounts it at the parent root
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares adds per module middleware, applied in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands the module the ports its host wired for it
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithRegister attaches extra endpoints after the module's own
func WithRegister(fn func(httpkit.Router)) Option { return func(b *Built) { b.Register = fn } }

// Built is the resolved option set
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(httpkit.Router)
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// PortsAs returns the injected ports when they have type T
func PortsAs[T any](b Built) (T, bool) {
	p, ok := b.Ports.(T)
	return p, ok
}

// Mount applies the module middleware under the prefix (or a root group), then routes and the extra register
func (b Built) Mount(r httpkit.Router, routes func(httpkit.Router)) {
	mount := func(rr httpkit.Router) {
		for _, mw := range b.Mw {
			rr.Use(mw)
		}
		routes(rr)
		if b.Register != nil {
			b.Register(rr)
		}
	}
	if b.Prefix == "" {
		r.Group(mount)
		return
	}
	r.Route(b.Prefix, mount)
}
