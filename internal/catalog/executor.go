package catalog

import (
	"context"
	"strings"

	"db-migcheck/internal/validation"

	"github.com/jmoiron/sqlx"
)

// Executor runs a catalog query and returns every row keyed by lowercased
// column name.
type Executor interface {
	Query(ctx context.Context, query string, args ...interface{}) ([]validation.Row, error)
}

// SQLExecutor is the Executor over a sqlx pool.
type SQLExecutor struct {
	db *sqlx.DB
}

func NewSQLExecutor(db *sqlx.DB) *SQLExecutor {
	return &SQLExecutor{db: db}
}

func (e *SQLExecutor) Query(ctx context.Context, query string, args ...interface{}) ([]validation.Row, error) {
	rows, err := e.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []validation.Row
	for rows.Next() {
		raw := make(map[string]interface{})
		if err := rows.MapScan(raw); err != nil {
			return nil, err
		}
		// Oracle and Snowflake report unquoted aliases in upper case.
		row := make(validation.Row, len(raw))
		for k, v := range raw {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[strings.ToLower(k)] = v
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
