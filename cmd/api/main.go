package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ferdian3456/virdanfeed/internal/config"
	"github.com/ferdian3456/virdanfeed/internal/delivery/http/middleware"
	"github.com/ferdian3456/virdanfeed/internal/exception"
	requestMiddleware "github.com/ferdian3456/virdanfeed/internal/middleware"
	"github.com/ferdian3456/virdanfeed/internal/observability"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2/middleware/compress"
	zapLog "go.uber.org/zap"
)

func main() {
	time.Local = time.UTC

	zap := config.NewZap(os.Getenv("LOG_LEVEL"))
	koanf := config.NewKoanf(zap)

	shutdownTracer, err := observability.Init(context.Background(), config.LoadObservabilityConfig(koanf, zap), zap)
	if err != nil {
		zap.Fatal("failed to initialize tracing", zapLog.Error(err))
	}

	if koanf.Bool("MIGRATE_ON_START") {
		err = config.RunMigrations(koanf, zap)
		if err != nil {
			zap.Fatal("failed to run migrations", zapLog.Error(err))
		}
	}

	fiber := config.NewFiber("virdanfeed-api")
	rds := config.NewRedisClient(koanf, zap)
	postgresql := config.NewPostgresqlPool(koanf, zap)
	minio := config.NewMinIO(koanf, zap)
	metrics := middleware.NewMetrics()

	fiber.Use(exception.Recovery(zap))
	fiber.Use(otelfiber.Middleware())
	fiber.Use(requestMiddleware.TraceLoggerMiddleware(zap))
	fiber.Use(requestMiddleware.AccessLogMiddleware())
	fiber.Use(metrics.Middleware())
	fiber.Use(middleware.SetupCORS(koanf.String("CORS_ALLOW_ORIGINS")))
	fiber.Use(middleware.SetupRateLimiter(zap, koanf.Int("RATE_LIMIT_MAX")))
	fiber.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	config.Server(&config.ServerConfig{
		Router:  fiber,
		DB:      postgresql,
		DBCache: rds,
		Log:     zap,
		Config:  koanf,
		MinIO:   minio,
		Metrics: metrics,
	})

	GO_SERVER_PORT := koanf.String("GO_SERVER")

	zap.Info("Server is running on: " + GO_SERVER_PORT)

	go func() {
		err := fiber.Listen(GO_SERVER_PORT)
		if err != nil {
			zap.Fatal("error starting server", zapLog.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	zap.Info("got one of stop signals")

	// Flush buffered work before the deadline forces exit.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = fiber.ShutdownWithContext(ctx)
	if err != nil {
		zap.Warn("timeout, forced kill!", zapLog.Error(err))
		_ = zap.Sync()
		os.Exit(1)
	}

	postgresql.Close()
	_ = rds.Close()

	err = shutdownTracer(ctx)
	if err != nil {
		zap.Warn("failed to flush traces", zapLog.Error(err))
	}

	zap.Info("server has shut down gracefully")
	_ = zap.Sync()
}
