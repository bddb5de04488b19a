package dialect

import "db-migcheck/internal/validation"

// SqliteDialect covers the main database of a SQLite file. SQLite keeps no
// row statistics, so row counts fall back to COUNT(*) per table.
type SqliteDialect struct{}

var sqliteObjects = map[validation.ObjectType]string{
	validation.Table: `
SELECT 'main' AS schema_name, lower(name) AS table_name
FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND lower(?) = 'main'
ORDER BY 2`,
	validation.View: `
SELECT 'main' AS schema_name, lower(name) AS view_name
FROM sqlite_master
WHERE type = 'view' AND lower(?) = 'main'
ORDER BY 2`,
	validation.Index: `
SELECT 'main' AS schema_name, lower(name) AS index_name
FROM sqlite_master
WHERE type = 'index' AND name NOT LIKE 'sqlite_autoindex_%' AND lower(?) = 'main'
ORDER BY 2`,
	validation.Trigger: `
SELECT 'main' AS schema_name, lower(name) AS trigger_name
FROM sqlite_master
WHERE type = 'trigger' AND lower(?) = 'main'
ORDER BY 2`,
}

func (d *SqliteDialect) Name() string       { return "sqlite" }
func (d *SqliteDialect) DriverName() string { return "sqlite" }

func (d *SqliteDialect) SchemasQuery(c Conn) Query {
	return bind(`SELECT 'main' AS schema_name WHERE ? IS NOT NULL`, c.Database)
}

func (d *SqliteDialect) ObjectQuery(t validation.ObjectType, schema string) (Query, bool) {
	return objectQuery(sqliteObjects, t, schema)
}

func (d *SqliteDialect) RowCountQuery(c Conn) (Query, bool) {
	return Query{}, false
}

func (d *SqliteDialect) CountTableQuery(schema, table string) Query {
	return countTable(d, schema, table)
}

func (d *SqliteDialect) VersionQuery(c Conn) Query {
	return bind(`SELECT 'SQLite ' || sqlite_version() AS version WHERE ? IS NOT NULL`, c.Database)
}

// SizeQuery reports bytes, page count times page size.
func (d *SqliteDialect) SizeQuery(c Conn) Query {
	return bind(`SELECT c.page_count * s.page_size AS database_size FROM pragma_page_count() c, pragma_page_size() s WHERE ? IS NOT NULL`, c.Database)
}

func (d *SqliteDialect) EncodingQuery(c Conn) Query {
	return bind(`SELECT encoding FROM pragma_encoding() WHERE ? IS NOT NULL`, c.Database)
}

func (d *SqliteDialect) DatatypeCountQuery(c Conn) Query {
	return bind(`
SELECT lower(p.type) AS data_type, COUNT(*) AS count
FROM sqlite_master m, pragma_table_info(m.name) p
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%' AND ? IS NOT NULL
GROUP BY lower(p.type)
ORDER BY 1`, c.Database)
}

func (d *SqliteDialect) DatatypeDetailsQuery(c Conn) Query {
	return bind(`
SELECT 'main' AS schema_name, m.name AS table_name, p.name AS column_name, lower(p.type) AS data_type
FROM sqlite_master m, pragma_table_info(m.name) p
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%' AND ? IS NOT NULL
ORDER BY 2, 3`, c.Database)
}

func (d *SqliteDialect) QuoteIdentifier(name string) string {
	return quoteWith(name, `"`, `"`)
}
