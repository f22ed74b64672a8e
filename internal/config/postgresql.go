package config

import (
	"context"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// NewPostgresqlPool opens the traced pool behind the posts API. Pool sizing
// comes from POSTGRES_MAX_CONNS and POSTGRES_MIN_CONNS.
func NewPostgresqlPool(config *koanf.Koanf, log *zap.Logger) *pgxpool.Pool {
	pgxConfig, err := pgxpool.ParseConfig(config.String("POSTGRES_URL"))
	if err != nil {
		log.Fatal("failed to parse postgresql config", zap.Error(err))
	}

	pgxConfig.MaxConns = int32(config.Int("POSTGRES_MAX_CONNS"))
	pgxConfig.MinConns = int32(config.Int("POSTGRES_MIN_CONNS"))
	pgxConfig.MaxConnLifetime = 30 * time.Minute
	pgxConfig.MaxConnIdleTime = 5 * time.Minute
	pgxConfig.HealthCheckPeriod = time.Minute
	pgxConfig.ConnConfig.Tracer = otelpgx.NewTracer()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, pgxConfig)
	if err != nil {
		log.Fatal("failed to create pgx pool", zap.Error(err))
	}

	err = pool.Ping(ctx)
	if err != nil {
		log.Fatal("failed to ping postgresql database", zap.Error(err), zap.Int32("maxConns", pgxConfig.MaxConns))
	}

	log.Info("postgresql pool ready", zap.Int32("maxConns", pgxConfig.MaxConns), zap.Int32("minConns", pgxConfig.MinConns))

	return pool
}
