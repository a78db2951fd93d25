// Package module mounts the meta endpoints
package module

import (
	"time"

	modkit "unirank/internal/modkit"
	"unirank/internal/modkit/httpkit"
	"unirank/internal/platform/store"
	str "unirank/internal/platform/strings"

	metahttp "unirank/internal/services/api/meta/http"
)

// Module implements modkit.Module for /meta
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs the meta module. A failing sql store fails readiness, a failing redis only degrades it
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)
	b.Prefix = str.MustPrefix(b.Prefix)

	sql, _ := deps.SQL.(store.Pinger)
	kv, _ := deps.KV.(store.Pinger)
	return &Module{b: b, deps: metahttp.Deps{
		ServiceName: deps.Cfg.Prefix("CORE_API_").MayString("SERVICE_NAME", "unirank-api"),
		StartedAt:   time.Now(),
		Probes: []metahttp.Probe{
			{Name: "sql", Required: true, Target: sql},
			{Name: "redis", Target: kv},
		},
	}}
}

// MountRoutes mounts the meta routes under the prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Ports exposes nothing
func (m *Module) Ports() any { return nil }
