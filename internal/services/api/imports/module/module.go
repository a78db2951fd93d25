// Package module wires the import endpoints into the API using modkit
package module

import (
	"unirank/internal/core/normalize"
	modkit "unirank/internal/modkit"
	"unirank/internal/modkit/httpkit"
	"unirank/internal/platform/net/middleware"
	str "unirank/internal/platform/strings"
	imphttp "unirank/internal/services/api/imports/http"
	impsvc "unirank/internal/services/api/imports/service"
	loaderdom "unirank/internal/services/loader/domain"
)

// Ports declares what the host injects. Loader is required; a nil Admin
// leaves every write open, so hosts without a key should not mount this module
type Ports struct {
	Loader     loaderdom.LoaderPort
	Normalizer *normalize.Normalizer
	Admin      middleware.AuthPort
}

// Module implements the imports module
type Module struct {
	b     modkit.Built
	admin middleware.AuthPort
	opts  Options
	svc   impsvc.Service
}

// New constructs the imports module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("imports"),
		modkit.WithPrefix("/import"),
	}, opts...)...)

	in, ok := modkit.PortsAs[Ports](b)
	if !ok || in.Loader == nil {
		panic("imports module requires Ports with a Loader")
	}
	return &Module{
		b:     b,
		admin: in.Admin,
		opts:  FromConfig(deps.Cfg),
		svc:   impsvc.New(in.Loader, in.Normalizer),
	}
}

// MountRoutes mounts the upload, refresh and template routes under the prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		imphttp.Register(rr, m.svc, m.admin, imphttp.Options{
			MaxUploadBytes: m.opts.MaxUploadBytes,
			MaxConcurrent:  m.opts.MaxConcurrent,
		})
	})
}

// Ports returns the service for cross module use
func (m *Module) Ports() any { return m.svc }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }
