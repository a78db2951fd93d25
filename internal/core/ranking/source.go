package ranking

import (
	"context"
	"slices"
)

// Source yields the full record set the query engine works over
type Source interface {
	All(ctx context.Context) ([]Record, error)
}

// SourceFunc adapts a function to Source
type SourceFunc func(ctx context.Context) ([]Record, error)

// All calls f
func (f SourceFunc) All(ctx context.Context) ([]Record, error) { return f(ctx) }

// Memory is a fixed in process record set
type Memory struct {
	records []Record
}

// NewMemory copies records into a read only Source
func NewMemory(records []Record) *Memory {
	return &Memory{records: slices.Clone(records)}
}

// All returns a copy so callers may sort it freely
func (m *Memory) All(context.Context) ([]Record, error) {
	return slices.Clone(m.records), nil
}
