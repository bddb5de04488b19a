package dialect

import (
	"fmt"
	"strings"

	"db-migcheck/internal/validation"
)

// bind pairs a statement with its single argument.
func bind(sql string, arg interface{}) Query {
	return Query{SQL: sql, Args: []interface{}{arg}}
}

// quoteWith wraps an identifier, doubling any closing quote inside it.
func quoteWith(name, open, close string) string {
	return open + strings.ReplaceAll(name, close, close+close) + close
}

// countTable is the portable exact row count of one table.
func countTable(d Dialect, schema, table string) Query {
	return Query{SQL: fmt.Sprintf("SELECT COUNT(*) AS row_count FROM %s.%s",
		d.QuoteIdentifier(schema), d.QuoteIdentifier(table))}
}

// objectQuery looks t up in a per-engine template set.
func objectQuery(templates map[validation.ObjectType]string, t validation.ObjectType, schema string) (Query, bool) {
	sql, ok := templates[t]
	if !ok {
		return Query{}, false
	}
	return bind(sql, schema), true
}
