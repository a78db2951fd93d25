package store

// Dialect names the sql flavour behind a RowQuerier
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Dialecter is implemented by adapters and their transaction queriers
type Dialecter interface{ Dialect() Dialect }

// DialectOf reports the dialect of q, defaulting to postgres for foreign implementations
func DialectOf(q any) Dialect {
	if d, ok := q.(Dialecter); ok {
		return d.Dialect()
	}
	return DialectPostgres
}
