// Package domain holds DTOs and ports for the universities endpoints
package domain

import (
	"context"
	"unicode/utf8"

	"unirank/internal/core/ranking"
)

// Longest country and search filters honoured; longer input is truncated
const (
	MaxCountryLen = 100
	MaxSearchLen  = 200
)

// ClipQuery truncates the free text filters of a listing request to their caps
func ClipQuery(s ranking.Spec) ranking.Spec {
	s.Country = clip(s.Country, MaxCountryLen)
	s.Search = clip(s.Search, MaxSearchLen)
	return s
}

func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// IDParam is the validated path parameter of the detail route
type IDParam struct {
	ID int64 `param:"id" validate:"min=1"`
}

// DeleteResult reports a bulk delete
type DeleteResult struct {
	Deleted int64 `json:"deleted" example:"500"`
}

// ServicePort is the read and bulk delete surface of the module
type ServicePort interface {
	List(ctx context.Context, spec ranking.Spec) (ranking.PageResult, error)
	Get(ctx context.Context, id int64) (ranking.Record, error)
	Countries(ctx context.Context) ([]string, error)
	Years(ctx context.Context) ([]int, error)
	DeleteAll(ctx context.Context) (DeleteResult, error)
}

// Clearer deletes every record; the loader owns it
type Clearer interface {
	Clear(ctx context.Context) (int64, error)
}
