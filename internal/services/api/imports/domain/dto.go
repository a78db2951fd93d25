// Package domain holds DTOs and ports for the import endpoints
package domain

import (
	"context"
	"io"

	loaderdom "unirank/internal/services/loader/domain"
)

// DefaultMaxUploadBytes bounds an uploaded sheet
const DefaultMaxUploadBytes = 5 << 20

// CohortParam is the validated path parameter of the cohort refresh
type CohortParam struct {
	Year int `param:"year" validate:"year"`
}

// Result is the upload or refresh outcome
type Result struct {
	Message string `json:"message" example:"import finished"`
	loaderdom.Summary
}

// Upload is one decoded request: the client file name, its body, and an optional cohort to replace
type Upload struct {
	Name        string
	Body        io.Reader
	ReplaceYear *int
}

// ServicePort is the import surface of the module
type ServicePort interface {
	Import(ctx context.Context, up Upload) (Result, error)
	RefreshCohort(ctx context.Context, year int) (Result, error)
	Template(ctx context.Context) ([]byte, error)
}
