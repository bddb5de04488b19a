package cmd

import (
	"context"
	"fmt"
	"os"

	"db-migcheck/internal/catalog"
	"db-migcheck/internal/dialect"
	"db-migcheck/internal/secrets"
	"db-migcheck/internal/validation"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type credentialStore interface {
	Credentials(ctx context.Context, secretID string) (secrets.Credentials, error)
}

type passwordPrompter func(label string) (string, error)

func terminalPrompt(label string) (string, error) {
	return secrets.PromptPassword(os.Stderr, label)
}

// resolveParams merges a config entry with its secret and, if asked for, a
// password typed at the terminal. Fields set in the config win over the
// secret.
func resolveParams(ctx context.Context, cfg DBConfig, store credentialStore, prompt passwordPrompter) (catalog.Params, error) {
	p := catalog.Params{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		Database: cfg.Database,
		Options:  cfg.Options,
	}

	if cfg.SecretID != "" {
		if store == nil {
			return p, fmt.Errorf("database %q: no secret store configured", cfg.Label())
		}
		creds, err := store.Credentials(ctx, cfg.SecretID)
		if err != nil {
			return p, err
		}
		p.Host = firstNonEmpty(p.Host, creds.Host)
		p.Username = firstNonEmpty(p.Username, creds.Username)
		p.Password = firstNonEmpty(p.Password, creds.Password)
		p.Database = firstNonEmpty(p.Database, creds.Database)
		if p.Port == 0 {
			p.Port = creds.Port
		}
	}

	if p.Password == "" && cfg.PromptPassword {
		pw, err := prompt(cfg.Label())
		if err != nil {
			return p, err
		}
		p.Password = pw
	}
	return p, nil
}

// openSide connects one configured database. The returned func closes it.
func openSide(ctx context.Context, cfg DBConfig, settings Settings, store credentialStore) (*catalog.Side, func(), error) {
	d, err := dialect.GetDialect(cfg.Driver)
	if err != nil {
		return nil, nil, fmt.Errorf("database %q: %w", cfg.Label(), err)
	}

	p, err := resolveParams(ctx, cfg, store, terminalPrompt)
	if err != nil {
		return nil, nil, err
	}

	dsn := cfg.DSN
	if dsn == "" {
		if dsn, err = catalog.BuildDSN(d, p); err != nil {
			return nil, nil, fmt.Errorf("database %q: %w", cfg.Label(), err)
		}
	}

	db, err := catalog.Open(ctx, d, dsn, Logger)
	if err != nil {
		return nil, nil, err
	}

	role := validation.SourceSide
	if cfg.Role == roleTarget {
		role = validation.TargetSide
	}
	side := &catalog.Side{
		Role:        role,
		Dialect:     d,
		Exec:        catalog.NewSQLExecutor(db),
		Conn:        dialect.Conn{Database: p.Database, Username: p.Username},
		Host:        p.Host,
		ExactCounts: settings.ExactRowCounts,
		Logger:      Logger,
	}
	Logger.Info("connected", zap.String("database", cfg.Label()), zap.String("driver", d.DriverName()))
	return side, func() { db.Close() }, nil
}

// openSides connects source and target. The returned func closes both.
func openSides(ctx context.Context, v *viper.Viper) (source, target *catalog.Side, settings Settings, closeAll func(), err error) {
	settings, err = GetSettings(v)
	if err != nil {
		return nil, nil, settings, nil, err
	}
	srcCfg, tgtCfg, err := GetSideConfigs(v)
	if err != nil {
		return nil, nil, settings, nil, err
	}

	var store credentialStore
	if srcCfg.SecretID != "" || tgtCfg.SecretID != "" {
		s, err := secrets.NewStoreForRegion(ctx, settings.Region)
		if err != nil {
			return nil, nil, settings, nil, err
		}
		store = s
	}

	source, closeSrc, err := openSide(ctx, srcCfg, settings, store)
	if err != nil {
		return nil, nil, settings, nil, err
	}
	target, closeTgt, err := openSide(ctx, tgtCfg, settings, store)
	if err != nil {
		closeSrc()
		return nil, nil, settings, nil, err
	}
	return source, target, settings, func() { closeSrc(); closeTgt() }, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
