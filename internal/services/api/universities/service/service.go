// Package service contains the universities read workflows
package service

import (
	"context"

	"unirank/internal/core/ranking"
	perr "unirank/internal/platform/errors"
	"unirank/internal/services/api/universities/domain"
)

// Service defines the universities service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service over any record source
type Svc struct {
	src     ranking.Source
	clearer domain.Clearer
}

// New constructs the service; clearer may be nil for read only deployments
func New(src ranking.Source, clearer domain.Clearer) *Svc {
	if src == nil {
		panic("universities.Service requires a non nil Source")
	}
	return &Svc{src: src, clearer: clearer}
}

func (s *Svc) all(ctx context.Context) ([]ranking.Record, error) {
	recs, err := s.src.All(ctx)
	if err != nil {
		return nil, perr.FromStore(err, "load universities")
	}
	return recs, nil
}

// List filters, sorts and paginates the record set
func (s *Svc) List(ctx context.Context, spec ranking.Spec) (ranking.PageResult, error) {
	recs, err := s.all(ctx)
	if err != nil {
		return ranking.PageResult{}, err
	}
	return ranking.Run(recs, spec), nil
}

// Get returns one record by id
func (s *Svc) Get(ctx context.Context, id int64) (ranking.Record, error) {
	recs, err := s.all(ctx)
	if err != nil {
		return ranking.Record{}, err
	}
	rec, ok := ranking.Find(recs, id)
	if !ok {
		return ranking.Record{}, perr.NotFoundf("university %d not found", id)
	}
	return rec, nil
}

// Countries lists the distinct countries
func (s *Svc) Countries(ctx context.Context) ([]string, error) {
	recs, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.Countries(recs), nil
}

// Years lists the distinct years, newest first
func (s *Svc) Years(ctx context.Context) ([]int, error) {
	recs, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.Years(recs), nil
}

// DeleteAll removes every record through the loader
func (s *Svc) DeleteAll(ctx context.Context) (domain.DeleteResult, error) {
	if s.clearer == nil {
		return domain.DeleteResult{}, perr.Forbiddenf("records are read only")
	}
	n, err := s.clearer.Clear(ctx)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	return domain.DeleteResult{Deleted: n}, nil
}
