package dialect

import "db-migcheck/internal/validation"

// Conn is what catalog queries need to know about the connected database.
type Conn struct {
	Database string
	Username string
}

// Query is a statement and its bind arguments.
type Query struct {
	SQL  string
	Args []interface{}
}

// Dialect abstracts database-specific catalog queries.
//
// Every inventory query aliases its columns to the names the validation
// package reads: schema_name, <object_type>_name, table_name, row_count,
// version, database_size, encoding, data_type, count, column_name.
type Dialect interface {
	// Name is the engine label shown in reports.
	Name() string
	// DriverName is the database/sql driver to open.
	DriverName() string

	// Inventory
	SchemasQuery(c Conn) Query
	// ObjectQuery lists objects of one type in a schema. ok is false when
	// the engine has no such object type.
	ObjectQuery(t validation.ObjectType, schema string) (q Query, ok bool)
	// RowCountQuery returns per-table row counts in one statement. ok is
	// false when the engine keeps no such statistics.
	RowCountQuery(c Conn) (q Query, ok bool)
	CountTableQuery(schema, table string) Query

	// Database details
	VersionQuery(c Conn) Query
	SizeQuery(c Conn) Query
	EncodingQuery(c Conn) Query

	// Datatypes
	DatatypeCountQuery(c Conn) Query
	DatatypeDetailsQuery(c Conn) Query

	// Helpers
	QuoteIdentifier(name string) string
}
