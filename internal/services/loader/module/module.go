// Package module wires the loader worker and exposes its ports
package module

import (
	"unirank/internal/adapters/ingest/tabular"
	"unirank/internal/core/normalize"
	"unirank/internal/modkit"
	"unirank/internal/modkit/httpkit"
	"unirank/internal/services/loader/domain"
	"unirank/internal/services/loader/repo"
	"unirank/internal/services/loader/service"
)

// Ports defines the loader module ports
type Ports struct {
	Loader    service.Service
	Scheduler *Scheduler
}

// Injected are the ports the loader consumes from its host
type Injected struct {
	Invalidator domain.Invalidator
	Fetcher     tabular.Fetcher
}

// ModuleName is the registry name of the loader's Ports
const ModuleName = "loader"

// Module implements the loader worker module
type Module struct {
	name  string
	ports Ports
}

// New constructs the loader module. It mounts no routes
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName(ModuleName)}, opts...)...)
	o := FromConfig(deps.Cfg)

	in, _ := modkit.PortsAs[Injected](b)
	if in.Fetcher == nil {
		in.Fetcher = tabular.NewHTTPFetcherWithTimeout(o.FetchTimeout)
	}

	svc := service.New(deps.SQL, repo.NewSQL(), service.Config{
		Normalizer:  normalize.New(),
		Fetcher:     in.Fetcher,
		RemoteURL:   o.RemoteURL,
		Invalidator: in.Invalidator,
	})

	return &Module{name: b.Name, ports: Ports{
		Loader:    svc,
		Scheduler: NewScheduler(svc, o),
	}}
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return m.name }

// MountRoutes is a no-op as the loader has no routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
