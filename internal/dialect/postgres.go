package dialect

import "db-migcheck/internal/validation"

type PostgresDialect struct {
	// Driver is "postgres" (lib/pq) or "pgx".
	Driver string
}

const postgresSystemSchemas = `('pg_catalog', 'information_schema', 'aws_sqlserver_ext', 'aws_sqlserver_ext_data')`

var postgresObjects = map[validation.ObjectType]string{
	validation.Table: `
SELECT lower(table_schema) AS schema_name, lower(table_name) AS table_name
FROM information_schema.tables
WHERE table_type = 'BASE TABLE' AND lower(table_schema) = lower($1)
ORDER BY 2`,
	validation.View: `
SELECT lower(table_schema) AS schema_name, lower(table_name) AS view_name
FROM information_schema.tables
WHERE table_type = 'VIEW' AND lower(table_schema) = lower($1)
ORDER BY 2`,
	validation.Procedure: `
SELECT lower(n.nspname) AS schema_name, lower(p.proname) AS procedure_name
FROM pg_proc p
JOIN pg_namespace n ON p.pronamespace = n.oid
WHERE p.prokind = 'p' AND lower(n.nspname) = lower($1)
ORDER BY 2`,
	validation.Function: `
SELECT lower(n.nspname) AS schema_name, lower(p.proname) AS function_name
FROM pg_proc p
JOIN pg_namespace n ON p.pronamespace = n.oid
WHERE p.prokind = 'f' AND lower(n.nspname) = lower($1)
ORDER BY 2`,
	validation.Index: `
SELECT lower(schemaname) AS schema_name, lower(indexname) AS index_name
FROM pg_indexes
WHERE lower(schemaname) = lower($1)
ORDER BY 2`,
	validation.Trigger: `
SELECT DISTINCT lower(trigger_schema) AS schema_name, lower(trigger_name) AS trigger_name
FROM information_schema.triggers
WHERE lower(trigger_schema) = lower($1)
ORDER BY 2`,
	// Column defaults count as constraints, matching how SQL Server models them.
	validation.Constraint: `
SELECT lower(n.nspname) AS schema_name, lower(c.conname) AS constraint_name
FROM pg_constraint c
JOIN pg_namespace n ON n.oid = c.connamespace
WHERE c.contype IN ('p', 'f', 'u', 'c') AND c.conrelid <> 0 AND lower(n.nspname) = lower($1)
UNION
SELECT lower(table_schema), lower(column_name)
FROM information_schema.columns
WHERE column_default IS NOT NULL AND lower(table_schema) = lower($1)
ORDER BY 2`,
	validation.Sequence: `
SELECT lower(n.nspname) AS schema_name, lower(c.relname) AS sequence_name
FROM pg_class c
JOIN pg_namespace n ON n.oid = c.relnamespace
WHERE c.relkind = 'S' AND lower(n.nspname) = lower($1)
ORDER BY 2`,
}

func (d *PostgresDialect) Name() string { return "postgres" }

func (d *PostgresDialect) DriverName() string {
	if d.Driver == "" {
		return "postgres"
	}
	return d.Driver
}

func (d *PostgresDialect) SchemasQuery(c Conn) Query {
	return bind(`
SELECT lower(nspname) AS schema_name
FROM pg_catalog.pg_namespace
WHERE nspname NOT LIKE 'pg_toast%'
  AND nspname NOT LIKE 'pg_temp%'
  AND lower(nspname) NOT IN `+postgresSystemSchemas+`
  AND $1::text IS NOT NULL
ORDER BY 1`, c.Database)
}

func (d *PostgresDialect) ObjectQuery(t validation.ObjectType, schema string) (Query, bool) {
	return objectQuery(postgresObjects, t, schema)
}

// RowCountQuery reads planner statistics; reltuples is -1 for tables never
// analyzed.
func (d *PostgresDialect) RowCountQuery(c Conn) (Query, bool) {
	return bind(`
SELECT lower(n.nspname) AS schema_name, lower(c.relname) AS table_name, c.reltuples::bigint AS row_count
FROM pg_class c
JOIN pg_namespace n ON n.oid = c.relnamespace
WHERE c.relkind IN ('r', 'p')
  AND n.nspname NOT LIKE 'pg_toast%'
  AND lower(n.nspname) NOT IN `+postgresSystemSchemas+`
  AND $1::text IS NOT NULL
ORDER BY 1, 2`, c.Database), true
}

func (d *PostgresDialect) CountTableQuery(schema, table string) Query {
	return countTable(d, schema, table)
}

func (d *PostgresDialect) VersionQuery(c Conn) Query {
	return bind(`SELECT version() AS version WHERE $1::text IS NOT NULL`, c.Database)
}

func (d *PostgresDialect) SizeQuery(c Conn) Query {
	return bind(`SELECT pg_size_pretty(pg_database_size(COALESCE(NULLIF($1::text, ''), current_database()))) AS database_size`, c.Database)
}

func (d *PostgresDialect) EncodingQuery(c Conn) Query {
	return bind(`
SELECT 'Encoding = ' || pg_encoding_to_char(encoding) || ', Collation = ' || datcollate AS encoding
FROM pg_database
WHERE datname = COALESCE(NULLIF($1::text, ''), current_database())`, c.Database)
}

func (d *PostgresDialect) DatatypeCountQuery(c Conn) Query {
	return bind(`
SELECT lower(data_type) AS data_type, COUNT(*) AS count
FROM information_schema.columns
WHERE lower(table_schema) NOT IN `+postgresSystemSchemas+`
  AND $1::text IS NOT NULL
GROUP BY lower(data_type)
ORDER BY 1`, c.Database)
}

func (d *PostgresDialect) DatatypeDetailsQuery(c Conn) Query {
	return bind(`
SELECT table_schema AS schema_name, table_name, column_name, data_type
FROM information_schema.columns
WHERE lower(table_schema) NOT IN `+postgresSystemSchemas+`
  AND $1::text IS NOT NULL
ORDER BY 1, 2, 3`, c.Database)
}

func (d *PostgresDialect) QuoteIdentifier(name string) string {
	return quoteWith(name, `"`, `"`)
}
