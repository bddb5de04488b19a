package dialect

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedDriver is returned for a driver name with no dialect.
var ErrUnsupportedDriver = errors.New("unsupported driver")

// GetDialect returns the Dialect implementation for a configured driver name.
func GetDialect(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "postgres", "postgresql":
		return &PostgresDialect{Driver: "postgres"}, nil
	case "pgx":
		return &PostgresDialect{Driver: "pgx"}, nil
	case "sqlserver", "mssql":
		return &MSSQLDialect{}, nil
	case "oracle":
		return &OracleDialect{}, nil
	case "mysql":
		return &MysqlDialect{}, nil
	case "snowflake":
		return &SnowflakeDialect{}, nil
	case "sqlite", "sqlite3":
		return &SqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// Ensure interface implementation
var _ Dialect = (*MysqlDialect)(nil)
var _ Dialect = (*PostgresDialect)(nil)
var _ Dialect = (*MSSQLDialect)(nil)
var _ Dialect = (*OracleDialect)(nil)
var _ Dialect = (*SnowflakeDialect)(nil)
var _ Dialect = (*SqliteDialect)(nil)
