package dialect

import "db-migcheck/internal/validation"

type MysqlDialect struct{}

const mysqlSystemSchemas = `('mysql', 'information_schema', 'performance_schema', 'sys')`

var mysqlObjects = map[validation.ObjectType]string{
	validation.Table: `SELECT lower(TABLE_SCHEMA) AS schema_name, lower(TABLE_NAME) AS table_name FROM information_schema.TABLES WHERE TABLE_TYPE = 'BASE TABLE' AND lower(TABLE_SCHEMA) = lower(?) ORDER BY 1, 2`,
	validation.View:  `SELECT lower(TABLE_SCHEMA) AS schema_name, lower(TABLE_NAME) AS view_name FROM information_schema.VIEWS WHERE lower(TABLE_SCHEMA) = lower(?) ORDER BY 1, 2`,
	validation.Procedure: `SELECT lower(ROUTINE_SCHEMA) AS schema_name, lower(ROUTINE_NAME) AS procedure_name FROM information_schema.ROUTINES WHERE ROUTINE_TYPE = 'PROCEDURE' AND lower(ROUTINE_SCHEMA) = lower(?) ORDER BY 1, 2`,
	validation.Function:  `SELECT lower(ROUTINE_SCHEMA) AS schema_name, lower(ROUTINE_NAME) AS function_name FROM information_schema.ROUTINES WHERE ROUTINE_TYPE = 'FUNCTION' AND lower(ROUTINE_SCHEMA) = lower(?) ORDER BY 1, 2`,
	// MySQL index names are only unique per table, so qualify by column.
	validation.Index:      `SELECT lower(TABLE_SCHEMA) AS schema_name, concat(lower(INDEX_NAME), '_', lower(COLUMN_NAME)) AS index_name FROM information_schema.STATISTICS WHERE lower(TABLE_SCHEMA) = lower(?) ORDER BY 1, 2`,
	validation.Trigger:    `SELECT lower(TRIGGER_SCHEMA) AS schema_name, lower(TRIGGER_NAME) AS trigger_name FROM information_schema.TRIGGERS WHERE lower(TRIGGER_SCHEMA) = lower(?) ORDER BY 1, 2`,
	validation.Constraint: `SELECT lower(CONSTRAINT_SCHEMA) AS schema_name, concat(lower(CONSTRAINT_NAME), '_', lower(TABLE_NAME)) AS constraint_name FROM information_schema.TABLE_CONSTRAINTS WHERE CONSTRAINT_TYPE IN ('PRIMARY KEY', 'FOREIGN KEY', 'CHECK', 'UNIQUE') AND lower(CONSTRAINT_SCHEMA) = lower(?) ORDER BY 1, 2`,
	// auto_increment columns stand in for sequences.
	validation.Sequence: `SELECT lower(TABLE_SCHEMA) AS schema_name, concat(lower(TABLE_NAME), '_', lower(COLUMN_NAME)) AS sequence_name FROM information_schema.COLUMNS WHERE EXTRA LIKE '%auto_increment%' AND lower(TABLE_SCHEMA) = lower(?) ORDER BY 1, 2`,
}

func (d *MysqlDialect) Name() string       { return "mysql" }
func (d *MysqlDialect) DriverName() string { return "mysql" }

func (d *MysqlDialect) SchemasQuery(c Conn) Query {
	return bind(`SELECT lower(SCHEMA_NAME) AS schema_name FROM information_schema.SCHEMATA WHERE lower(SCHEMA_NAME) NOT IN `+mysqlSystemSchemas+` AND ? IS NOT NULL ORDER BY 1`, c.Database)
}

func (d *MysqlDialect) ObjectQuery(t validation.ObjectType, schema string) (Query, bool) {
	return objectQuery(mysqlObjects, t, schema)
}

// RowCountQuery reads TABLE_ROWS, which InnoDB only estimates.
func (d *MysqlDialect) RowCountQuery(c Conn) (Query, bool) {
	return bind(`SELECT lower(TABLE_SCHEMA) AS schema_name, lower(TABLE_NAME) AS table_name, COALESCE(TABLE_ROWS, 0) AS row_count FROM information_schema.TABLES WHERE TABLE_TYPE = 'BASE TABLE' AND lower(TABLE_SCHEMA) NOT IN `+mysqlSystemSchemas+` AND ? IS NOT NULL ORDER BY 1, 2`, c.Database), true
}

func (d *MysqlDialect) CountTableQuery(schema, table string) Query {
	return countTable(d, schema, table)
}

func (d *MysqlDialect) VersionQuery(c Conn) Query {
	return bind(`SELECT version() AS version FROM DUAL WHERE ? IS NOT NULL`, c.Database)
}

// SizeQuery reports megabytes of data and indexes outside system schemas.
func (d *MysqlDialect) SizeQuery(c Conn) Query {
	return bind(`SELECT ROUND(COALESCE(SUM(DATA_LENGTH + INDEX_LENGTH), 0) / 1024 / 1024, 2) AS database_size FROM information_schema.TABLES WHERE lower(TABLE_SCHEMA) NOT IN `+mysqlSystemSchemas+` AND ? IS NOT NULL`, c.Database)
}

func (d *MysqlDialect) EncodingQuery(c Conn) Query {
	return bind(`SELECT concat('DEFAULT_CHARACTER_SET_NAME: ', DEFAULT_CHARACTER_SET_NAME, '; DEFAULT_COLLATION_NAME: ', DEFAULT_COLLATION_NAME) AS encoding FROM information_schema.SCHEMATA WHERE lower(SCHEMA_NAME) = lower(COALESCE(NULLIF(?, ''), DATABASE()))`, c.Database)
}

func (d *MysqlDialect) DatatypeCountQuery(c Conn) Query {
	return bind(`SELECT lower(DATA_TYPE) AS data_type, COUNT(*) AS count FROM information_schema.COLUMNS WHERE lower(TABLE_SCHEMA) NOT IN `+mysqlSystemSchemas+` AND ? IS NOT NULL GROUP BY lower(DATA_TYPE) ORDER BY 1`, c.Database)
}

func (d *MysqlDialect) DatatypeDetailsQuery(c Conn) Query {
	return bind(`SELECT TABLE_SCHEMA AS schema_name, TABLE_NAME AS table_name, COLUMN_NAME AS column_name, DATA_TYPE AS data_type FROM information_schema.COLUMNS WHERE lower(TABLE_SCHEMA) NOT IN `+mysqlSystemSchemas+` AND ? IS NOT NULL ORDER BY 1, 2, 3`, c.Database)
}

func (d *MysqlDialect) QuoteIdentifier(name string) string {
	return quoteWith(name, "`", "`")
}
