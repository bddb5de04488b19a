package dialect

import "db-migcheck/internal/validation"

type MSSQLDialect struct{}

// go-mssqldb binds positional arguments as @p1, @p2 ...

var mssqlObjects = map[validation.ObjectType]string{
	validation.Table: `
		SELECT lower(TABLE_SCHEMA) AS schema_name, lower(TABLE_NAME) AS table_name
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_TYPE = 'BASE TABLE' AND lower(TABLE_SCHEMA) = lower(@p1)
		ORDER BY TABLE_NAME`,
	validation.View: `
		SELECT lower(TABLE_SCHEMA) AS schema_name, lower(TABLE_NAME) AS view_name
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_TYPE = 'VIEW' AND lower(TABLE_SCHEMA) = lower(@p1)
		ORDER BY TABLE_NAME`,
	validation.Procedure: `
		SELECT lower(SCHEMA_NAME(schema_id)) AS schema_name, lower(name) AS procedure_name
		FROM sys.objects
		WHERE type = 'P' AND lower(SCHEMA_NAME(schema_id)) = lower(@p1)
		ORDER BY name`,
	validation.Function: `
		SELECT lower(SCHEMA_NAME(schema_id)) AS schema_name, lower(name) AS function_name
		FROM sys.objects
		WHERE type IN ('FN', 'IF', 'TF') AND lower(SCHEMA_NAME(schema_id)) = lower(@p1)
		ORDER BY name`,
	validation.Index: `
		SELECT lower(sc.name) AS schema_name, lower(i.name) AS index_name
		FROM sys.indexes i
		INNER JOIN sys.objects o ON i.object_id = o.object_id
		INNER JOIN sys.schemas sc ON o.schema_id = sc.schema_id
		WHERE i.name IS NOT NULL AND o.type = 'U' AND lower(sc.name) = lower(@p1)
		ORDER BY i.name`,
	validation.Trigger: `
		SELECT lower(SCHEMA_NAME(schema_id)) AS schema_name, lower(name) AS trigger_name
		FROM sys.objects
		WHERE type = 'TR' AND lower(SCHEMA_NAME(schema_id)) = lower(@p1)
		ORDER BY name`,
	validation.Constraint: `
		SELECT lower(SCHEMA_NAME(schema_id)) AS schema_name, lower(name) AS constraint_name
		FROM sys.objects
		WHERE type IN ('PK', 'F', 'UQ', 'C', 'D') AND lower(SCHEMA_NAME(schema_id)) = lower(@p1)
		ORDER BY name`,
	validation.Sequence: `
		SELECT lower(SCHEMA_NAME(schema_id)) AS schema_name, lower(name) AS sequence_name
		FROM sys.sequences
		WHERE lower(SCHEMA_NAME(schema_id)) = lower(@p1)
		ORDER BY name`,
}

func (d *MSSQLDialect) Name() string       { return "mssql" }
func (d *MSSQLDialect) DriverName() string { return "sqlserver" }

// SchemasQuery skips guest, INFORMATION_SCHEMA, sys and the fixed database
// role schemas.
func (d *MSSQLDialect) SchemasQuery(c Conn) Query {
	return bind(`
		SELECT lower(name) AS schema_name
		FROM sys.schemas
		WHERE schema_id NOT IN (2, 3, 4) AND schema_id < 16384 AND @p1 IS NOT NULL
		ORDER BY name`, c.Database)
}

func (d *MSSQLDialect) ObjectQuery(t validation.ObjectType, schema string) (Query, bool) {
	return objectQuery(mssqlObjects, t, schema)
}

// RowCountQuery sums heap or clustered index partition rows.
func (d *MSSQLDialect) RowCountQuery(c Conn) (Query, bool) {
	return bind(`
		SELECT lower(SCHEMA_NAME(o.schema_id)) AS schema_name, lower(o.name) AS table_name, SUM(p.rows) AS row_count
		FROM sys.objects o
		INNER JOIN sys.partitions p ON o.object_id = p.object_id
		WHERE o.type = 'U' AND o.is_ms_shipped = 0 AND p.index_id < 2 AND @p1 IS NOT NULL
		GROUP BY o.schema_id, o.name
		ORDER BY 1, 2`, c.Database), true
}

func (d *MSSQLDialect) CountTableQuery(schema, table string) Query {
	return countTable(d, schema, table)
}

func (d *MSSQLDialect) VersionQuery(c Conn) Query {
	return bind(`SELECT @@VERSION AS version WHERE @p1 IS NOT NULL`, c.Database)
}

// SizeQuery reports megabytes of data files.
func (d *MSSQLDialect) SizeQuery(c Conn) Query {
	return bind(`
		SELECT CAST(SUM(size) * 8 / 1024.0 AS DECIMAL(18, 2)) AS database_size
		FROM sys.master_files
		WHERE type = 0 AND DB_NAME(database_id) = COALESCE(NULLIF(@p1, ''), DB_NAME())`, c.Database)
}

func (d *MSSQLDialect) EncodingQuery(c Conn) Query {
	return bind(`SELECT CONVERT(sysname, DATABASEPROPERTYEX(COALESCE(NULLIF(@p1, ''), DB_NAME()), 'Collation')) AS encoding`, c.Database)
}

func (d *MSSQLDialect) DatatypeCountQuery(c Conn) Query {
	return bind(`
		SELECT CASE WHEN c.CHARACTER_MAXIMUM_LENGTH = -1 THEN c.DATA_TYPE + 'max' ELSE c.DATA_TYPE END AS data_type, COUNT(*) AS count
		FROM sys.tables t
		INNER JOIN sys.schemas s ON t.schema_id = s.schema_id
		INNER JOIN INFORMATION_SCHEMA.COLUMNS c ON t.name = c.TABLE_NAME AND s.name = c.TABLE_SCHEMA
		WHERE t.type = 'U' AND s.principal_id NOT IN (2, 3, 4) AND @p1 IS NOT NULL
		GROUP BY CASE WHEN c.CHARACTER_MAXIMUM_LENGTH = -1 THEN c.DATA_TYPE + 'max' ELSE c.DATA_TYPE END
		ORDER BY 1`, c.Database)
}

func (d *MSSQLDialect) DatatypeDetailsQuery(c Conn) Query {
	return bind(`
		SELECT s.name AS schema_name, t.name AS table_name, c.COLUMN_NAME AS column_name,
			CASE WHEN c.CHARACTER_MAXIMUM_LENGTH = -1 THEN c.DATA_TYPE + 'max' ELSE c.DATA_TYPE END AS data_type
		FROM sys.tables t
		INNER JOIN sys.schemas s ON t.schema_id = s.schema_id
		INNER JOIN INFORMATION_SCHEMA.COLUMNS c ON t.name = c.TABLE_NAME AND s.name = c.TABLE_SCHEMA
		WHERE t.type = 'U' AND s.principal_id NOT IN (2, 3, 4) AND @p1 IS NOT NULL
		ORDER BY s.name, t.name, c.COLUMN_NAME`, c.Database)
}

func (d *MSSQLDialect) QuoteIdentifier(name string) string {
	return quoteWith(name, "[", "]")
}
