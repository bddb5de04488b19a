package catalog

import (
	"context"
	"errors"
	"time"

	"db-migcheck/internal/dialect"
	"db-migcheck/internal/validation"

	"go.uber.org/zap"
)

// ProgressFunc is told how many of total inventory queries have finished.
type ProgressFunc func(done, total int)

// Side fetches the catalog of one database.
type Side struct {
	Role    validation.Side
	Dialect dialect.Dialect
	Exec    Executor
	Conn    dialect.Conn
	Host    string
	// ExactCounts replaces statistics-based row counts with COUNT(*).
	ExactCounts bool
	Logger      *zap.Logger
}

func (s *Side) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Side) query(ctx context.Context, purpose, schema string, q dialect.Query) ([]validation.Row, error) {
	start := time.Now()
	rows, err := s.Exec.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, &QueryExecutionError{Side: s.Role, Purpose: purpose, Schema: schema, Err: err}
	}
	s.log().Debug("catalog query",
		zap.String("side", string(s.Role)),
		zap.String("purpose", purpose),
		zap.String("schema", schema),
		zap.Int("rows", len(rows)),
		zap.Duration("took", time.Since(start)))
	return rows, nil
}

// FetchSchemas lists the schemas of the side.
func (s *Side) FetchSchemas(ctx context.Context) ([]validation.Row, error) {
	return s.query(ctx, "schemas", "", s.Dialect.SchemasQuery(s.Conn))
}

// FetchInventory lists the schemas and, for each one, every supported
// object type.
func (s *Side) FetchInventory(ctx context.Context, progress ProgressFunc) (validation.RawInventory, error) {
	raw := validation.RawInventory{
		Side:    s.Role,
		Objects: make(map[string]map[validation.ObjectType][]validation.Row),
	}

	schemas, err := s.FetchSchemas(ctx)
	if err != nil {
		return raw, err
	}
	raw.Schemas = schemas

	names, err := s.schemaNames(schemas)
	if err != nil {
		return raw, err
	}

	total := len(names) * len(validation.ObjectTypes)
	done := 0
	if progress != nil {
		progress(done, total)
	}

	for _, name := range names {
		byType := make(map[validation.ObjectType][]validation.Row)
		for _, t := range validation.ObjectTypes {
			if q, ok := s.Dialect.ObjectQuery(t, name); ok {
				rows, err := s.query(ctx, string(t)+"s", name, q)
				if err != nil {
					return raw, err
				}
				byType[t] = rows
			}
			done++
			if progress != nil {
				progress(done, total)
			}
		}
		raw.Objects[name] = byType
	}

	s.log().Info("inventory fetched",
		zap.String("side", string(s.Role)),
		zap.Int("schemas", len(names)))
	return raw, nil
}

// FetchRowCounts returns schema_name, table_name, row_count rows. Dialects
// without a statistics query, or ExactCounts, count every table.
func (s *Side) FetchRowCounts(ctx context.Context) ([]validation.Row, error) {
	if q, ok := s.Dialect.RowCountQuery(s.Conn); ok && !s.ExactCounts {
		return s.query(ctx, "row counts", "", q)
	}

	schemas, err := s.FetchSchemas(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.schemaNames(schemas)
	if err != nil {
		return nil, err
	}

	var out []validation.Row
	for _, schema := range names {
		q, ok := s.Dialect.ObjectQuery(validation.Table, schema)
		if !ok {
			continue
		}
		tables, err := s.query(ctx, "tables", schema, q)
		if err != nil {
			return nil, err
		}
		for _, t := range tables {
			table, err := t.Text(validation.Table.NameField())
			if err != nil {
				return nil, s.malformed(err, schema)
			}
			counted, err := s.query(ctx, "row count", schema, s.Dialect.CountTableQuery(schema, table))
			if err != nil {
				return nil, err
			}
			if len(counted) == 0 {
				continue
			}
			out = append(out, validation.Row{
				"schema_name": schema,
				"table_name":  table,
				"row_count":   counted[0]["row_count"],
			})
		}
	}
	return out, nil
}

// FetchDetails reads version, size and encoding of the database.
func (s *Side) FetchDetails(ctx context.Context) (validation.DatabaseDetail, error) {
	version, err := s.query(ctx, "version", "", s.Dialect.VersionQuery(s.Conn))
	if err != nil {
		return validation.DatabaseDetail{}, err
	}
	size, err := s.query(ctx, "database size", "", s.Dialect.SizeQuery(s.Conn))
	if err != nil {
		return validation.DatabaseDetail{}, err
	}
	encoding, err := s.query(ctx, "encoding", "", s.Dialect.EncodingQuery(s.Conn))
	if err != nil {
		return validation.DatabaseDetail{}, err
	}

	d, err := validation.CollectDetails(s.Endpoint(), version, size, encoding)
	if err != nil {
		return validation.DatabaseDetail{}, s.malformed(err, "")
	}
	return d, nil
}

// FetchDatatypes returns the per-type column counts and the column listing.
func (s *Side) FetchDatatypes(ctx context.Context) (counts, details []validation.Row, err error) {
	counts, err = s.query(ctx, "datatype counts", "", s.Dialect.DatatypeCountQuery(s.Conn))
	if err != nil {
		return nil, nil, err
	}
	details, err = s.query(ctx, "datatypes", "", s.Dialect.DatatypeDetailsQuery(s.Conn))
	if err != nil {
		return nil, nil, err
	}
	return counts, details, nil
}

// Version returns the server version string.
func (s *Side) Version(ctx context.Context) (string, error) {
	rows, err := s.query(ctx, "version", "", s.Dialect.VersionQuery(s.Conn))
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", &QueryExecutionError{Side: s.Role, Purpose: "version", Err: validation.ErrEmptyResult}
	}
	v, err := rows[0].Text("version")
	if err != nil {
		return "", s.malformed(err, "")
	}
	return v, nil
}

// Endpoint names the side for reports.
func (s *Side) Endpoint() validation.Endpoint {
	return validation.Endpoint{Engine: s.Dialect.Name(), Database: s.Conn.Database, Host: s.Host}
}

func (s *Side) schemaNames(rows []validation.Row) ([]string, error) {
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		n, err := r.Text("schema_name")
		if err != nil {
			return nil, s.malformed(err, "")
		}
		names = append(names, n)
	}
	return names, nil
}

// malformed stamps the side and schema on a MalformedRowError.
func (s *Side) malformed(err error, schema string) error {
	var m *validation.MalformedRowError
	if errors.As(err, &m) {
		m.Side = s.Role
		if m.Schema == "" {
			m.Schema = schema
		}
	}
	return err
}
