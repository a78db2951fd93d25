// Package http serves the liveness, readiness and build info endpoints
package http

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"unirank/internal/core/version"
	"unirank/internal/modkit/httpkit"
	"unirank/internal/platform/store"
)

// Readiness states
const (
	StateOK       = "ok"
	StateFail     = "fail"
	StateSkipped  = "skipped"
	StateDegraded = "degraded"
)

const probeTimeout = 2 * time.Second

// Probe names a backend to ping. A nil Target is reported as skipped; a
// failing Required probe fails readiness, any other failure degrades it
type Probe struct {
	Name     string
	Required bool
	Target   store.Pinger
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Probes      []Probe
}

type handlers struct{ Deps }

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := handlers{d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"unirank-api"`
	Now     string `json:"now"     example:"2025-09-03T13:05:00Z"`
}

// ProbeResult is the outcome of one probe
type ProbeResult struct {
	Name     string `json:"name"            example:"sql"`
	Required bool   `json:"required"        example:"true"`
	Status   string `json:"status"          example:"ok"`
	Error    string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
	Millis   int64  `json:"ms"              example:"3"`
}

// ReadyResponse is the readiness summary over every probe
type ReadyResponse struct {
	Status string        `json:"status" example:"ok"`
	Checks []ProbeResult `json:"checks"`
}

// ServiceResponse describes the running process
type ServiceResponse struct {
	Name       string `json:"name"       example:"unirank-api"`
	Started    string `json:"started"    example:"2025-09-03T13:00:00Z"`
	Uptime     int64  `json:"uptime"     example:"300"`
	GoVersion  string `json:"goVersion"  example:"go1.25.0"`
	Goroutines int    `json:"goroutines" example:"12"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.ServiceName, Now: time.Now().UTC().Format(time.RFC3339)}, nil
}

// @Summary Readiness with backend probes
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	out := ReadyResponse{Status: StateOK, Checks: make([]ProbeResult, 0, len(h.Probes))}
	for _, p := range h.Probes {
		res := run(ctx, p)
		out.Checks = append(out.Checks, res)
		switch {
		case res.Status != StateFail:
		case p.Required:
			out.Status = StateFail
		case out.Status == StateOK:
			out.Status = StateDegraded
		}
	}
	if out.Status == StateFail {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

func run(ctx context.Context, p Probe) ProbeResult {
	res := ProbeResult{Name: p.Name, Required: p.Required, Status: StateSkipped}
	if p.Target == nil {
		return res
	}
	start := time.Now()
	err := p.Target.Ping(ctx)
	res.Millis = time.Since(start).Milliseconds()
	res.Status = StateOK
	if err != nil {
		res.Status, res.Error = StateFail, err.Error()
	}
	return res
}

// @Summary Build information
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h handlers) version(*http.Request) (any, error) {
	return version.Info(h.ServiceName), nil
}

// @Summary Process information and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:       h.ServiceName,
		Started:    h.StartedAt.UTC().Format(time.RFC3339),
		Uptime:     int64(time.Since(h.StartedAt) / time.Second),
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
	}, nil
}
