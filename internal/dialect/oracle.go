package dialect

import (
	"strings"

	"db-migcheck/internal/validation"
)

// OracleDialect scopes the catalog to the connecting user. Packages are
// listed as schemas because conversion tools turn each package into one.
type OracleDialect struct{}

var oracleObjects = map[validation.ObjectType]string{
	validation.Table: `
SELECT lower(t.OWNER) AS schema_name, lower(t.TABLE_NAME) AS table_name
FROM ALL_TABLES t
WHERE lower(t.OWNER) = lower(:1)
  AND t.TEMPORARY <> 'Y'
  AND t.TABLE_NAME NOT LIKE 'BIN$%'
  AND t.TABLE_NAME NOT LIKE 'MLOG$%'
  AND t.TABLE_NAME NOT LIKE 'DR$%'
  AND NOT EXISTS (SELECT 1 FROM ALL_MVIEWS m WHERE m.OWNER = t.OWNER AND m.MVIEW_NAME = t.TABLE_NAME)
ORDER BY 2`,
	validation.View: `
SELECT lower(OWNER) AS schema_name, lower(OBJECT_NAME) AS view_name
FROM ALL_OBJECTS
WHERE OBJECT_TYPE IN ('VIEW', 'MATERIALIZED VIEW') AND TEMPORARY <> 'Y' AND lower(OWNER) = lower(:1)
ORDER BY 2`,
	validation.Procedure: `
SELECT lower(OWNER) AS schema_name, lower(OBJECT_NAME) AS procedure_name
FROM ALL_OBJECTS
WHERE OBJECT_TYPE = 'PROCEDURE' AND TEMPORARY <> 'Y' AND lower(OWNER) = lower(:1)
ORDER BY 2`,
	validation.Function: `
SELECT lower(OWNER) AS schema_name, lower(OBJECT_NAME) AS function_name
FROM ALL_OBJECTS
WHERE OBJECT_TYPE = 'FUNCTION' AND TEMPORARY <> 'Y' AND lower(OWNER) = lower(:1)
ORDER BY 2`,
	validation.Index: `
SELECT lower(OWNER) AS schema_name, lower(INDEX_NAME) AS index_name
FROM ALL_INDEXES
WHERE INDEX_TYPE <> 'LOB' AND INDEX_NAME NOT LIKE 'I_SNAP$%' AND lower(OWNER) = lower(:1)
ORDER BY 2`,
	validation.Trigger: `
SELECT lower(OWNER) AS schema_name, lower(TRIGGER_NAME) AS trigger_name
FROM ALL_TRIGGERS
WHERE lower(OWNER) = lower(:1)
ORDER BY 2`,
	// NOT NULL checks are column properties elsewhere, so they are skipped.
	validation.Constraint: `
SELECT lower(OWNER) AS schema_name, lower(CONSTRAINT_NAME) AS constraint_name
FROM ALL_CONSTRAINTS
WHERE CONSTRAINT_TYPE = 'C'
  AND upper(SEARCH_CONDITION_VC) NOT LIKE '%IS NOT NULL'
  AND lower(OWNER) = lower(:1)
ORDER BY 2`,
	validation.Sequence: `
SELECT lower(SEQUENCE_OWNER) AS schema_name, lower(SEQUENCE_NAME) AS sequence_name
FROM ALL_SEQUENCES
WHERE lower(SEQUENCE_OWNER) = lower(:1)
ORDER BY 2`,
}

func (d *OracleDialect) Name() string       { return "oracle" }
func (d *OracleDialect) DriverName() string { return "oracle" }

func (d *OracleDialect) SchemasQuery(c Conn) Query {
	return bind(`
WITH o AS (SELECT lower(:1) AS owner FROM DUAL)
SELECT lower(u.USERNAME) AS schema_name
FROM ALL_USERS u, o
WHERE lower(u.USERNAME) = o.owner
UNION
SELECT lower(a.OBJECT_NAME)
FROM ALL_OBJECTS a, o
WHERE lower(a.OWNER) = o.owner AND a.OBJECT_TYPE = 'PACKAGE'`, c.Username)
}

func (d *OracleDialect) ObjectQuery(t validation.ObjectType, schema string) (Query, bool) {
	return objectQuery(oracleObjects, t, schema)
}

// RowCountQuery reads optimizer statistics; tables never analyzed show -1.
func (d *OracleDialect) RowCountQuery(c Conn) (Query, bool) {
	return bind(`
SELECT lower(OWNER) AS schema_name, lower(TABLE_NAME) AS table_name, NVL(NUM_ROWS, -1) AS row_count
FROM ALL_TABLES
WHERE lower(OWNER) = lower(:1)
ORDER BY 1, 2`, c.Username), true
}

func (d *OracleDialect) CountTableQuery(schema, table string) Query {
	return countTable(d, schema, table)
}

func (d *OracleDialect) VersionQuery(c Conn) Query {
	return bind(`
SELECT PRODUCT || ' ' || VERSION AS version
FROM PRODUCT_COMPONENT_VERSION
WHERE PRODUCT LIKE 'Oracle%' AND ROWNUM = 1 AND :1 IS NOT NULL`, c.Username)
}

// SizeQuery reports megabytes of segments owned by the user.
func (d *OracleDialect) SizeQuery(c Conn) Query {
	return bind(`SELECT ROUND(NVL(SUM(BYTES), 0) / 1024 / 1024, 2) AS database_size FROM USER_SEGMENTS WHERE :1 IS NOT NULL`, c.Username)
}

func (d *OracleDialect) EncodingQuery(c Conn) Query {
	return bind(`SELECT VALUE AS encoding FROM NLS_DATABASE_PARAMETERS WHERE PARAMETER = 'NLS_CHARACTERSET' AND :1 IS NOT NULL`, c.Username)
}

func (d *OracleDialect) DatatypeCountQuery(c Conn) Query {
	return bind(`
SELECT lower(c.DATA_TYPE) AS data_type, COUNT(*) AS count
FROM ALL_TAB_COLUMNS c
JOIN ALL_TABLES t ON t.OWNER = c.OWNER AND t.TABLE_NAME = c.TABLE_NAME
WHERE lower(c.OWNER) = lower(:1)
GROUP BY lower(c.DATA_TYPE)
ORDER BY 1`, c.Username)
}

func (d *OracleDialect) DatatypeDetailsQuery(c Conn) Query {
	return bind(`
SELECT lower(c.OWNER) AS schema_name, lower(c.TABLE_NAME) AS table_name, lower(c.COLUMN_NAME) AS column_name, c.DATA_TYPE AS data_type
FROM ALL_TAB_COLUMNS c
JOIN ALL_TABLES t ON t.OWNER = c.OWNER AND t.TABLE_NAME = c.TABLE_NAME
WHERE lower(c.OWNER) = lower(:1)
ORDER BY 1, 2, 3`, c.Username)
}

// QuoteIdentifier upper-cases the name, matching how unquoted Oracle
// identifiers are stored.
func (d *OracleDialect) QuoteIdentifier(name string) string {
	return quoteWith(strings.ToUpper(name), `"`, `"`)
}
