package backup

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	// DumpTable returns every row of table in rowid order with raw column
	// names and scalar types.
	DumpTable(ctx context.Context, table string) ([]Row, error)
	ClearTable(ctx context.Context, table string) error
	// ResetSequences restarts the autoincrement counters of tables.
	ResetSequences(ctx context.Context, tables []string) error
	// InsertRows writes rows verbatim, primary keys included.
	InsertRows(ctx context.Context, table string, rows []Row) error
}
