package catalog

import (
	"fmt"
	"net"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"db-migcheck/internal/dialect"

	"github.com/go-sql-driver/mysql"
	go_ora "github.com/sijms/go-ora/v2"
	"github.com/snowflakedb/gosnowflake"
)

// Params are the discrete connection settings of a database, as read from
// the config file or a secret.
type Params struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
	// Options are driver-specific query parameters.
	Options map[string]string
}

var defaultPorts = map[string]int{
	"mysql":     3306,
	"postgres":  5432,
	"pgx":       5432,
	"sqlserver": 1433,
	"oracle":    1521,
}

// BuildDSN assembles a connection string for the dialect's driver.
func BuildDSN(d dialect.Dialect, p Params) (string, error) {
	driver := d.DriverName()
	port := p.Port
	if port == 0 {
		port = defaultPorts[driver]
	}

	switch driver {
	case "mysql":
		cfg := mysql.NewConfig()
		cfg.User = p.Username
		cfg.Passwd = p.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(p.Host, strconv.Itoa(port))
		cfg.DBName = p.Database
		if len(p.Options) > 0 {
			cfg.Params = p.Options
		}
		return cfg.FormatDSN(), nil

	case "postgres", "pgx":
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(p.Username, p.Password),
			Host:   net.JoinHostPort(p.Host, strconv.Itoa(port)),
			Path:   "/" + p.Database,
		}
		q := withDefaults(p.Options, map[string]string{"sslmode": "require"})
		u.RawQuery = q.Encode()
		return u.String(), nil

	case "sqlserver":
		u := url.URL{
			Scheme: "sqlserver",
			User:   url.UserPassword(p.Username, p.Password),
			Host:   net.JoinHostPort(p.Host, strconv.Itoa(port)),
		}
		q := withDefaults(p.Options, map[string]string{
			"database":               p.Database,
			"encrypt":                "true",
			"TrustServerCertificate": "true",
		})
		u.RawQuery = q.Encode()
		return u.String(), nil

	case "oracle":
		return go_ora.BuildUrl(p.Host, port, p.Database, p.Username, p.Password, p.Options), nil

	case "snowflake":
		cfg := &gosnowflake.Config{
			Account:   p.Host,
			User:      p.Username,
			Password:  p.Password,
			Database:  p.Database,
			Warehouse: p.Options["warehouse"],
			Role:      p.Options["role"],
			Schema:    p.Options["schema"],
		}
		dsn, err := gosnowflake.DSN(cfg)
		if err != nil {
			return "", fmt.Errorf("failed to build snowflake dsn: %w", err)
		}
		return dsn, nil

	case "sqlite":
		if p.Database == "" {
			return "", fmt.Errorf("sqlite needs a database file path")
		}
		if len(p.Options) == 0 {
			return p.Database, nil
		}
		return "file:" + p.Database + "?" + encodeSorted(p.Options), nil
	}
	return "", fmt.Errorf("%w: %q", dialect.ErrUnsupportedDriver, driver)
}

func withDefaults(options, defaults map[string]string) url.Values {
	q := url.Values{}
	for k, v := range defaults {
		if v != "" {
			q.Set(k, v)
		}
	}
	for k, v := range options {
		q.Set(k, v)
	}
	return q
}

func encodeSorted(options map[string]string) string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(options[k]))
	}
	return strings.Join(parts, "&")
}
