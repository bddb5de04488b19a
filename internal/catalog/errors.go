package catalog

import (
	"fmt"

	"db-migcheck/internal/validation"
)

// QueryExecutionError is a failed catalog query. It aborts the run.
type QueryExecutionError struct {
	Side    validation.Side
	Purpose string
	Schema  string
	Err     error
}

func (e *QueryExecutionError) Error() string {
	if e.Schema != "" {
		return fmt.Sprintf("%s: failed to query %s (schema %s): %s", e.Side, e.Purpose, e.Schema, Redact(e.Err.Error()))
	}
	return fmt.Sprintf("%s: failed to query %s: %s", e.Side, e.Purpose, Redact(e.Err.Error()))
}

func (e *QueryExecutionError) Unwrap() error {
	return e.Err
}

// ConnectError is a failed connection attempt. The message is redacted;
// the driver error stays reachable through Unwrap.
type ConnectError struct {
	Engine string
	Err    error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %s", e.Engine, Redact(e.Err.Error()))
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}
