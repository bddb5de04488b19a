package dialect

import (
	"strings"

	"db-migcheck/internal/validation"
)

// SnowflakeDialect reads INFORMATION_SCHEMA of the connected database.
// Snowflake has no indexes or triggers.
type SnowflakeDialect struct{}

var snowflakeObjects = map[validation.ObjectType]string{
	validation.Table: `
SELECT lower(table_schema) AS schema_name, lower(table_name) AS table_name
FROM information_schema.tables
WHERE table_type = 'BASE TABLE' AND lower(table_schema) = lower(?)
ORDER BY 2`,
	validation.View: `
SELECT lower(table_schema) AS schema_name, lower(table_name) AS view_name
FROM information_schema.views
WHERE lower(table_schema) = lower(?)
ORDER BY 2`,
	validation.Procedure: `
SELECT lower(procedure_schema) AS schema_name, lower(procedure_name) AS procedure_name
FROM information_schema.procedures
WHERE lower(procedure_schema) = lower(?)
ORDER BY 2`,
	validation.Function: `
SELECT lower(function_schema) AS schema_name, lower(function_name) AS function_name
FROM information_schema.functions
WHERE lower(function_schema) = lower(?)
ORDER BY 2`,
	validation.Constraint: `
SELECT lower(constraint_schema) AS schema_name, lower(constraint_name) AS constraint_name
FROM information_schema.table_constraints
WHERE lower(constraint_schema) = lower(?)
ORDER BY 2`,
	validation.Sequence: `
SELECT lower(sequence_schema) AS schema_name, lower(sequence_name) AS sequence_name
FROM information_schema.sequences
WHERE lower(sequence_schema) = lower(?)
ORDER BY 2`,
}

func (d *SnowflakeDialect) Name() string       { return "snowflake" }
func (d *SnowflakeDialect) DriverName() string { return "snowflake" }

func (d *SnowflakeDialect) SchemasQuery(c Conn) Query {
	return bind(`SELECT lower(schema_name) AS schema_name FROM information_schema.schemata WHERE schema_name <> 'INFORMATION_SCHEMA' AND ? IS NOT NULL ORDER BY 1`, c.Database)
}

func (d *SnowflakeDialect) ObjectQuery(t validation.ObjectType, schema string) (Query, bool) {
	return objectQuery(snowflakeObjects, t, schema)
}

func (d *SnowflakeDialect) RowCountQuery(c Conn) (Query, bool) {
	return bind(`
SELECT lower(table_schema) AS schema_name, lower(table_name) AS table_name, COALESCE(row_count, 0) AS row_count
FROM information_schema.tables
WHERE table_type = 'BASE TABLE' AND table_schema <> 'INFORMATION_SCHEMA' AND ? IS NOT NULL
ORDER BY 1, 2`, c.Database), true
}

func (d *SnowflakeDialect) CountTableQuery(schema, table string) Query {
	return countTable(d, schema, table)
}

func (d *SnowflakeDialect) VersionQuery(c Conn) Query {
	return bind(`SELECT CURRENT_VERSION() AS version WHERE ? IS NOT NULL`, c.Database)
}

// SizeQuery reports megabytes of table storage.
func (d *SnowflakeDialect) SizeQuery(c Conn) Query {
	return bind(`SELECT ROUND(COALESCE(SUM(bytes), 0) / 1024 / 1024, 2) AS database_size FROM information_schema.tables WHERE ? IS NOT NULL`, c.Database)
}

// EncodingQuery is constant: Snowflake stores all text as UTF-8.
func (d *SnowflakeDialect) EncodingQuery(c Conn) Query {
	return bind(`SELECT 'UTF-8' AS encoding WHERE ? IS NOT NULL`, c.Database)
}

func (d *SnowflakeDialect) DatatypeCountQuery(c Conn) Query {
	return bind(`
SELECT lower(data_type) AS data_type, COUNT(*) AS count
FROM information_schema.columns
WHERE table_schema <> 'INFORMATION_SCHEMA' AND ? IS NOT NULL
GROUP BY lower(data_type)
ORDER BY 1`, c.Database)
}

func (d *SnowflakeDialect) DatatypeDetailsQuery(c Conn) Query {
	return bind(`
SELECT table_schema AS schema_name, table_name, column_name, data_type
FROM information_schema.columns
WHERE table_schema <> 'INFORMATION_SCHEMA' AND ? IS NOT NULL
ORDER BY 1, 2, 3`, c.Database)
}

// QuoteIdentifier upper-cases the name, matching how unquoted Snowflake
// identifiers are stored.
func (d *SnowflakeDialect) QuoteIdentifier(name string) string {
	return quoteWith(strings.ToUpper(name), `"`, `"`)
}
