// Package http provides http transport for universities
package http

import (
	stdhttp "net/http"
	"strconv"

	"unirank/internal/core/ranking"
	"unirank/internal/modkit/httpkit"
	perr "unirank/internal/platform/errors"
	"unirank/internal/platform/net/http/bind"
	"unirank/internal/platform/net/middleware"
	"unirank/internal/services/api/universities/domain"
	svc "unirank/internal/services/api/universities/service"
)

// Register mounts the universities endpoints; admin guards the bulk delete
func Register(r httpkit.Router, s svc.Service, admin middleware.AuthPort) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/universities", h.list)
	httpkit.Get(r, "/universities/{id}", h.get)
	httpkit.Get(r, "/countries", h.countries)
	httpkit.Get(r, "/years", h.years)

	if admin != nil {
		httpkit.Protected(r, admin, func(pr httpkit.Router) {
			httpkit.Delete(pr, "/universities", h.deleteAll)
		})
	}
}

type handlers struct{ svc svc.Service }

// swagger:route GET /universities Universities universitiesList
// @Summary Filtered, sorted, paginated rankings
// @Tags Universities
// @Produce json
// @Param country query string false "Country substring"
// @Param year query string false "Ranking year"
// @Param search query string false "University or country substring"
// @Param sortBy query string false "Sort field" default(rank)
// @Param sortOrder query string false "ASC or DESC, anything else is ASC" default(ASC)
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} ranking.PageResult "ok"
// @Router /universities [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context(), domain.ClipQuery(ranking.ParseSpec(r.URL.Query())))
}

// swagger:route GET /universities/{id} Universities universitiesGet
// @Summary One university record
// @Tags Universities
// @Produce json
// @Param id path int true "Record id"
// @Success 200 {object} ranking.Record "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /universities/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	raw := httpkit.Param(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "id must be a positive integer"), "id")
	}
	if err := bind.Struct(domain.IDParam{ID: id}); err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// swagger:route GET /countries Universities universitiesCountries
// @Summary Distinct countries
// @Tags Universities
// @Produce json
// @Success 200 {array} string "ok"
// @Router /countries [get]
func (h *handlers) countries(r *stdhttp.Request) (any, error) {
	return h.svc.Countries(r.Context())
}

// swagger:route GET /years Universities universitiesYears
// @Summary Distinct ranking years, newest first
// @Tags Universities
// @Produce json
// @Success 200 {array} int "ok"
// @Router /years [get]
func (h *handlers) years(r *stdhttp.Request) (any, error) {
	return h.svc.Years(r.Context())
}

// swagger:route DELETE /universities Universities universitiesDeleteAll
// @Summary Delete every record
// @Tags Universities
// @Security AdminKey
// @Produce json
// @Success 200 {object} domain.DeleteResult "ok"
// @Failure 401 {object} httpkit.Envelope "unauthorized"
// @Router /universities [delete]
func (h *handlers) deleteAll(r *stdhttp.Request) (any, error) {
	return h.svc.DeleteAll(r.Context())
}
