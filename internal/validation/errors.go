package validation

import (
	"errors"
	"fmt"
)

// ErrEmptyResult is returned when a query that must yield a row yielded none.
var ErrEmptyResult = errors.New("query returned no rows")

// MalformedRowError reports a fetched row missing its expected field or
// carrying a value that cannot be read as one.
type MalformedRowError struct {
	Side       Side
	Schema     string
	ObjectType ObjectType
	Field      string
	Problem    string
}

func (e *MalformedRowError) Error() string {
	where := string(e.Side)
	if e.Schema != "" {
		where += " schema " + e.Schema
	}
	if e.ObjectType != "" {
		where += " " + string(e.ObjectType)
	}
	return fmt.Sprintf("malformed %s row: field %q %s", where, e.Field, e.Problem)
}
