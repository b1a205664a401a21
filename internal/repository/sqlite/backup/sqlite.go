package backup

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
	backupdomain "surety/internal/domain/backup"
)

type SQLiteRepository struct {
	db *gorm.DB
}

func NewSQLite(db *gorm.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Transaction(ctx context.Context, fn func(backupdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SQLiteRepository{db: tx})
	})
}

func (r *SQLiteRepository) DumpTable(ctx context.Context, table string) ([]backupdomain.Row, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	rows, err := r.db.WithContext(ctx).Raw("SELECT * FROM " + quoteIdent(table) + " ORDER BY rowid").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := make([]backupdomain.Row, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}

		row := make(backupdomain.Row, len(columns))
		for i, column := range columns {
			if raw, ok := values[i].([]byte); ok {
				row[column] = string(raw)
				continue
			}
			row[column] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) ClearTable(ctx context.Context, table string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec("DELETE FROM " + quoteIdent(table)).Error
}

func (r *SQLiteRepository) ResetSequences(ctx context.Context, tables []string) error {
	if len(tables) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Exec("DELETE FROM sqlite_sequence WHERE name IN ?", tables).Error
}

// InsertRows writes the union of the rows' keys as columns. Keys a row lacks
// are bound as NULL. Keys that are not columns of table reject the batch.
func (r *SQLiteRepository) InsertRows(ctx context.Context, table string, rows []backupdomain.Row) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	known, err := r.tableColumns(ctx, table)
	if err != nil {
		return err
	}

	seen := make(map[string]struct{})
	var columns []string
	for _, row := range rows {
		for key := range row {
			if _, ok := seen[key]; ok {
				continue
			}
			if _, ok := known[key]; !ok {
				return fmt.Errorf("%w: unknown column %s.%s", backupdomain.ErrInvalidBackup, table, key)
			}
			seen[key] = struct{}{}
			columns = append(columns, key)
		}
	}
	if len(columns) == 0 {
		return fmt.Errorf("%w: rows for %s have no columns", backupdomain.ErrInvalidBackup, table)
	}
	sort.Strings(columns)

	quoted := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = quoteIdent(column)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	statement := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoteIdent(table), strings.Join(quoted, ", "), placeholders)

	for _, row := range rows {
		args := make([]any, len(columns))
		for i, column := range columns {
			args[i] = row[column]
		}
		if err := r.db.WithContext(ctx).Exec(statement, args...).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) tableColumns(ctx context.Context, table string) (map[string]struct{}, error) {
	var names []string
	if err := r.db.WithContext(ctx).Raw("SELECT name FROM pragma_table_info(?)", table).Scan(&names).Error; err != nil {
		return nil, err
	}
	columns := make(map[string]struct{}, len(names))
	for _, name := range names {
		columns[name] = struct{}{}
	}
	return columns, nil
}

func checkTable(table string) error {
	for _, known := range backupdomain.InsertOrder {
		if known.Name == table {
			return nil
		}
	}
	return fmt.Errorf("unknown table %q", table)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
