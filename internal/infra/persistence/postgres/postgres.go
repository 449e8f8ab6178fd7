package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"storybook/config"
	"storybook/internal/domain/lifecycle"
	"storybook/internal/errors"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolMonitorInterval = 5 * time.Second
	poolWaitWarnAfter   = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the PostgreSQL connection and registers its lifecycle hooks.
// Startup pings the database and begins pool monitoring; shutdown closes
// the pool.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "create postgres client")
	}
	db = db.Session(&gorm.Session{
		// Multi-step writes go through TransactionManager.Execute; GORM's
		// implicit per-statement transaction would only add round trips.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "unwrap sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "ping postgres")
			}

			go monitorPool(monitorCtx, params.Logger, sqlDB)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// monitorPool watches connection pool wait statistics and logs when
// requests are queuing for a connection.
func monitorPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(poolMonitorInterval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitCount := cur.WaitCount - prev.WaitCount
			waitDuration := cur.WaitDuration - prev.WaitDuration
			prev = cur

			if waitCount == 0 {
				continue
			}

			attrs := []slog.Attr{
				slog.Int64("waitCount", waitCount),
				slog.Duration("waitDuration", waitDuration),
				slog.Duration("avgWait", waitDuration/time.Duration(waitCount)),
				slog.Int("maxOpenConns", cur.MaxOpenConnections),
				slog.Int("openConns", cur.OpenConnections),
				slog.Int("inUseConns", cur.InUse),
				slog.Int("idleConns", cur.Idle),
			}

			level := slog.LevelDebug
			if waitDuration >= poolWaitWarnAfter {
				level = slog.LevelWarn
			}
			logger.LogAttrs(ctx, level, "postgres pool wait", attrs...)
		}
	}
}
