// Package modkit assembles API modules from shared deps and functional options
package modkit

import (
	"unirank/internal/modkit/repokit"
	"unirank/internal/platform/config"
	"unirank/internal/platform/logger"
	phttp "unirank/internal/platform/net/http"
	"unirank/internal/platform/store"
)

// Module mounts routes and exposes ports other modules can consume
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// Deps are the process wide handles every module may use; SQL and KV can be nil
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	SQL repokit.TxRunner
	KV  store.KV
}
