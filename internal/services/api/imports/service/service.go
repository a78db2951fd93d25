// Package service contains the import workflows
package service

import (
	"context"
	"fmt"
	"strings"

	"unirank/internal/adapters/ingest/tabular"
	"unirank/internal/core/normalize"
	"unirank/internal/modkit/scope"
	perr "unirank/internal/platform/errors"
	"unirank/internal/platform/logger"
	"unirank/internal/services/api/imports/domain"
	loaderdom "unirank/internal/services/loader/domain"
	loadersvc "unirank/internal/services/loader/service"
)

// Service defines the imports service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service on top of the loader port
type Svc struct {
	loader loaderdom.LoaderPort
	norm   *normalize.Normalizer
}

// New constructs the imports service
func New(loader loaderdom.LoaderPort, norm *normalize.Normalizer) *Svc {
	if loader == nil {
		panic("imports.Service requires a non nil LoaderPort")
	}
	if norm == nil {
		norm = normalize.New()
	}
	return &Svc{loader: loader, norm: norm}
}

// Import decodes an uploaded sheet, checks the header carries the required columns and loads it
func (s *Svc) Import(ctx context.Context, up domain.Upload) (domain.Result, error) {
	if _, ok := tabular.FormatOf(up.Name); !ok {
		return domain.Result{}, perr.WithField(
			perr.Newf(perr.ErrorCodeValidation, "unsupported file type; upload .csv, .xlsx or .xls"), "file")
	}
	ctx = scope.With(ctx, loadersvc.SourceKey, "upload:"+up.Name)

	res, err := tabular.Decode(up.Name, up.Body)
	if err != nil {
		return domain.Result{}, loadersvc.DecodeErr(err)
	}
	if len(res.Rows) == 0 {
		return domain.Result{}, perr.Newf(perr.ErrorCodeValidation, "file contains no data rows")
	}
	if missing := normalize.MissingColumns(res.Header, normalize.Required...); len(missing) > 0 {
		return domain.Result{}, RequiredFieldsError(missing, res.Rows[0])
	}
	if res.Skipped > 0 {
		logger.C(ctx).Warn().Str("component", "imports").Str("file", up.Name).
			Int("skipped", res.Skipped).Msg("malformed lines skipped")
	}

	norm, sc := s.norm, loaderdom.Scope{}
	if up.ReplaceYear != nil {
		norm, sc = s.norm.WithYear(*up.ReplaceYear), loaderdom.YearScope(*up.ReplaceYear)
	}
	sum, err := s.loader.Load(ctx, norm.Batch(res.Rows), sc)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Message: "import finished", Summary: sum}, nil
}

// RefreshCohort replaces year from the configured remote sheet
func (s *Svc) RefreshCohort(ctx context.Context, year int) (domain.Result, error) {
	sum, err := s.loader.ReplaceCohort(ctx, year)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Message: fmt.Sprintf("cohort %d refreshed", year), Summary: sum}, nil
}

// Template returns the xlsx import template
func (s *Svc) Template(_ context.Context) ([]byte, error) {
	b, err := tabular.Template()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "build template")
	}
	return b, nil
}

// RequiredFieldsError reports the required columns absent from sample
func RequiredFieldsError(missing []normalize.Field, sample normalize.Row) error {
	names := make([]string, len(missing))
	for i, f := range missing {
		names[i] = string(f)
	}
	required := make([]string, len(normalize.Required))
	for i, f := range normalize.Required {
		required[i] = string(f)
	}
	err := perr.WithField(
		perr.Newf(perr.ErrorCodeValidation, "missing required fields: %s", strings.Join(names, ", ")),
		names[0],
	)
	return perr.WithDetails(err, map[string]any{
		"requiredFields": required,
		"sampleData":     sample,
	})
}
