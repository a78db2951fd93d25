// Package http provides http transport for imports
package http

import (
	"errors"
	stdhttp "net/http"
	"strconv"
	"strings"

	"unirank/internal/adapters/ingest/tabular"
	"unirank/internal/modkit/httpkit"
	perr "unirank/internal/platform/errors"
	"unirank/internal/platform/net/http/bind"
	"unirank/internal/platform/net/middleware"
	"unirank/internal/services/api/imports/domain"
	svc "unirank/internal/services/api/imports/service"
)

// Options tune the upload route
type Options struct {
	MaxUploadBytes int64
	// MaxConcurrent caps in flight uploads; 0 leaves them unthrottled
	MaxConcurrent int
}

// Register mounts the import endpoints; admin guards every write
func Register(r httpkit.Router, s svc.Service, admin middleware.AuthPort, o Options) {
	if o.MaxUploadBytes <= 0 {
		o.MaxUploadBytes = domain.DefaultMaxUploadBytes
	}
	h := &handlers{svc: s, maxBytes: o.MaxUploadBytes}

	httpkit.Get(r, "/template", h.template)

	httpkit.Protected(r, admin, func(pr httpkit.Router) {
		pr.Group(func(up httpkit.Router) {
			// slack for the multipart envelope around the file
			up.Use(middleware.RequestSize(o.MaxUploadBytes + 64<<10))
			if o.MaxConcurrent > 0 {
				up.Use(middleware.Throttle(o.MaxConcurrent))
			}
			httpkit.Post(up, "/", h.upload)
		})
		httpkit.Post(pr, "/cohorts/{year}", h.cohort)
	})
}

type handlers struct {
	svc      svc.Service
	maxBytes int64
}

// swagger:route POST /import Imports importsUpload
// @Summary Upload a ranking sheet
// @Tags Imports
// @Security AdminKey
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "csv, xlsx or xls, at most 5 MiB"
// @Param year formData int false "Replace this ranking year with the upload"
// @Success 200 {object} domain.Result "ok"
// @Failure 400 {object} httpkit.Envelope "validation error with requiredFields and sampleData"
// @Failure 401 {object} httpkit.Envelope "unauthorized"
// @Failure 422 {object} httpkit.Envelope "unreadable sheet"
// @Router /import [post]
func (h *handlers) upload(r *stdhttp.Request) (any, error) {
	if r.ContentLength > h.maxBytes+64<<10 {
		return nil, h.tooLarge()
	}
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var mbe *stdhttp.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, h.tooLarge()
		}
		return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "expected a multipart form with a file field"), "file")
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	f, fh, err := r.FormFile("file")
	if err != nil {
		return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "no file uploaded"), "file")
	}
	defer func() { _ = f.Close() }()
	if fh.Size > h.maxBytes {
		return nil, h.tooLarge()
	}

	up := domain.Upload{Name: fh.Filename, Body: f}
	if raw := strings.TrimSpace(r.FormValue("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "year must be an integer"), "year")
		}
		if err := bind.Struct(domain.CohortParam{Year: year}); err != nil {
			return nil, err
		}
		up.ReplaceYear = &year
	}
	return h.svc.Import(r.Context(), up)
}

func (h *handlers) tooLarge() error {
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "file exceeds the %d byte limit", h.maxBytes), "file")
}

// swagger:route POST /import/cohorts/{year} Imports importsCohort
// @Summary Replace one ranking year from the published remote sheet
// @Tags Imports
// @Security AdminKey
// @Produce json
// @Param year path int true "Ranking year"
// @Success 200 {object} domain.Result "ok"
// @Failure 503 {object} httpkit.Envelope "remote sheet unavailable"
// @Router /import/cohorts/{year} [post]
func (h *handlers) cohort(r *stdhttp.Request) (any, error) {
	year, err := strconv.Atoi(httpkit.Param(r, "year"))
	if err != nil {
		return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "year must be an integer"), "year")
	}
	if err := bind.Struct(domain.CohortParam{Year: year}); err != nil {
		return nil, err
	}
	return h.svc.RefreshCohort(r.Context(), year)
}

// swagger:route GET /import/template Imports importsTemplate
// @Summary Download the xlsx import template
// @Tags Imports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "university_template.xlsx"
// @Router /import/template [get]
func (h *handlers) template(r *stdhttp.Request) (any, error) {
	b, err := h.svc.Template(r.Context())
	if err != nil {
		return nil, err
	}
	return httpkit.File(tabular.TemplateName, tabular.ContentTypeXLSX, b), nil
}
