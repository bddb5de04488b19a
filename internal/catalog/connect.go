package catalog

import (
	"context"
	"time"

	"db-migcheck/internal/dialect"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Pool limits for catalog work. Queries run one at a time per side.
const (
	maxOpenConns    = 2
	connMaxLifetime = 10 * time.Minute
)

// Open connects to the database with the dialect's driver and pings it.
// The caller owns the returned pool.
func Open(ctx context.Context, d dialect.Dialect, dsn string, logger *zap.Logger) (*sqlx.DB, error) {
	logger.Debug("connecting",
		zap.String("driver", d.DriverName()),
		zap.String("dsn", SanitizeDSN(d.DriverName(), dsn)))

	db, err := sqlx.ConnectContext(ctx, d.DriverName(), dsn)
	if err != nil {
		return nil, &ConnectError{Engine: d.Name(), Err: err}
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	return db, nil
}
