package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ferdian3456/virdanfeed/internal/client"
	"github.com/ferdian3456/virdanfeed/internal/config"
	"github.com/ferdian3456/virdanfeed/internal/constant"
	"github.com/ferdian3456/virdanfeed/internal/feed"
	"github.com/ferdian3456/virdanfeed/internal/observability"
	"github.com/ferdian3456/virdanfeed/internal/session"
	"github.com/ferdian3456/virdanfeed/internal/tui"
	zapLog "go.uber.org/zap"
)

func main() {
	// The alt screen owns the terminal, so logs go to a file from the start.
	zap := config.NewFileZap(envOr("FEED_LOG_FILE", "feed.log"), os.Getenv("LOG_LEVEL"))
	defer zap.Sync()

	koanf := config.NewKoanf(zap)

	shutdownTracer, err := observability.Init(context.Background(), config.LoadObservabilityConfig(koanf, zap), zap)
	if err != nil {
		zap.Warn("tracing disabled", zapLog.Error(err))
		shutdownTracer = func(context.Context) error { return nil }
	}

	api := client.New(koanf.String("FEED_API_URL"), zap,
		client.WithToken(koanf.String("FEED_ACCESS_TOKEN")),
		client.WithRateLimit(koanf.Float64("FEED_REQUESTS_PER_SECOND")),
	)

	credentials := session.Credentials{
		Username:    koanf.String("FEED_USERNAME"),
		Password:    koanf.String("FEED_PASSWORD"),
		AccessToken: koanf.String("FEED_ACCESS_TOKEN"),
	}

	controller := feed.New(api, zap)
	app := tui.New(controller, zap, session.ResolveCmd(api, credentials, constant.FEED_REQUEST_TIMEOUT))

	zap.Info("starting feed", zapLog.String("api", koanf.String("FEED_API_URL")))

	_, err = tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := shutdownTracer(ctx); shutdownErr != nil {
		zap.Warn("failed to flush traces", zapLog.Error(shutdownErr))
	}

	if err != nil {
		zap.Error("feed exited with error", zapLog.Error(err))
		_ = zap.Sync()
		fmt.Fprintln(os.Stderr, "feed:", err)
		os.Exit(1)
	}
}

func envOr(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
