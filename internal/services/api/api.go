// Package api provides the HTTP API for the application
package api

import (
	"strings"
	"time"

	"unirank/internal/core/ranking"
	"unirank/internal/platform/config"
	"unirank/internal/platform/logger"
	phttp "unirank/internal/platform/net/http"
	"unirank/internal/platform/net/middleware"
	"unirank/internal/platform/store"

	"unirank/internal/modkit"
	"unirank/internal/modkit/httpkit"
	"unirank/internal/modkit/module"
	"unirank/internal/modkit/swaggerkit"

	importsmod "unirank/internal/services/api/imports/module"
	metamod "unirank/internal/services/api/meta/module"
	unimod "unirank/internal/services/api/universities/module"
	unirepo "unirank/internal/services/api/universities/repo"

	// Loader worker module (owns the LoaderPort and the refresh schedule)
	loadermod "unirank/internal/services/loader/module"
)

// Source modes
const (
	SourceStore  = "store"
	SourceMemory = "memory"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	// Source is store or memory; memory serves the seed set read only
	Source      string
	AdminKey    string
	CORSOrigins []string
	CacheTTL    time.Duration
}

// FromConfig fills the deployment knobs from apiCfg (CORE_API_*) and root (CORE_CACHE_*)
func FromConfig(root config.Conf) Options {
	apiCfg := root.Prefix("CORE_API_")
	return Options{
		Config:         root,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		Source:         strings.ToLower(apiCfg.MayEnum("SOURCE", SourceStore, SourceStore, SourceMemory)),
		AdminKey:       apiCfg.MayString("ADMIN_KEY", ""),
		CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
		CacheTTL:       root.Prefix("CORE_CACHE_").MayDuration("TTL", 10*time.Minute),
	}
}

// Runtime is what the host drives after mounting; Loader is nil in memory mode
type Runtime struct {
	Loader *loadermod.Module
	Cache  *ranking.CachedSource
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) Runtime {
	var rt Runtime

	// bare liveness probe ahead of routing; /api/v1/health reports the details
	r.Use(middleware.Heartbeat("/health"))

	// shared deps for modules
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.SQL = opt.Store.SQL
		deps.KV = opt.Store.KV
	}

	mods := []module.Module{metamod.New(deps)}

	if opt.Source == SourceMemory || deps.SQL == nil {
		// seed set only; nothing writes so no admin routes
		mods = append(mods, unimod.New(deps, modkit.WithPorts(unimod.Ports{
			Source: ranking.NewMemory(ranking.Seed()),
		})))
	} else {
		var cache ranking.Cache = ranking.NewMemoryCache()
		if deps.KV != nil {
			cache = deps.KV
		}
		rt.Cache = ranking.Cached(unirepo.NewSource(deps.SQL, unirepo.NewSQL()), cache, opt.CacheTTL)

		// Construct the loader first and extract its LoaderPort
		rt.Loader = loadermod.New(deps, modkit.WithPorts(loadermod.Injected{Invalidator: rt.Cache}))
		loader := module.MustPortsOf[loadermod.Ports](rt.Loader).Loader

		admin := httpkit.NewAdminKeyPort(opt.AdminKey)
		mods = append(mods,
			unimod.New(deps, modkit.WithPorts(unimod.Ports{
				Source:  rt.Cache,
				Clearer: loader,
				Admin:   admin,
			})),
			importsmod.New(deps, modkit.WithPorts(importsmod.Ports{
				Loader: loader,
				Admin:  admin,
			})),
			rt.Loader, // registered for its ports; mounts nothing
		)
	}

	stack := httpkit.CommonStackWith(httpkit.StackOptions{CORSOrigins: opt.CORSOrigins})

	// Swagger + profiler
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
	return rt
}
