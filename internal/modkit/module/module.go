// Package module looks up module ports by type or by registered name
package module

import phttp "unirank/internal/platform/net/http"

// Module mirrors modkit.Module so this package stays free of modkit imports
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
