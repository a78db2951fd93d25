// Package module wires the universities endpoints into the API using modkit
package module

import (
	"unirank/internal/core/ranking"
	modkit "unirank/internal/modkit"
	"unirank/internal/modkit/httpkit"
	"unirank/internal/platform/net/middleware"
	str "unirank/internal/platform/strings"
	"unirank/internal/services/api/universities/domain"
	unihttp "unirank/internal/services/api/universities/http"
	unirepo "unirank/internal/services/api/universities/repo"
	unisvc "unirank/internal/services/api/universities/service"
)

// Ports declares what the host injects. Source defaults to the sql table;
// a nil Admin leaves the bulk delete unmounted
type Ports struct {
	Source  ranking.Source
	Clearer domain.Clearer
	Admin   middleware.AuthPort
}

// Module implements the universities module
type Module struct {
	b   modkit.Built
	in  Ports
	svc unisvc.Service
}

// New constructs the universities module. Its routes sit at the API root
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("universities")}, opts...)...)

	in, _ := modkit.PortsAs[Ports](b)
	if in.Source == nil {
		if deps.SQL == nil {
			panic("universities module requires a Source port or a sql store")
		}
		in.Source = unirepo.NewSource(deps.SQL, unirepo.NewSQL())
	}
	return &Module{b: b, in: in, svc: unisvc.New(in.Source, in.Clearer)}
}

// MountRoutes mounts the listing routes, plus the admin delete when an Admin port is set
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { unihttp.Register(rr, m.svc, m.in.Admin) })
}

// Ports returns the service for cross module use
func (m *Module) Ports() any { return m.svc }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }
