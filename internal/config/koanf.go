package config

import (
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

var defaults = map[string]interface{}{
	"GO_SERVER":                ":8080",
	"MINIO_BUCKET_NAME":        "virdanfeed",
	"MINIO_PRESIGN_TTL":        "1h",
	"MIGRATION_PATH":           "db/migrations",
	"POSTGRES_MAX_CONNS":       20,
	"POSTGRES_MIN_CONNS":       2,
	"RATE_LIMIT_MAX":           100,
	"OTEL_SERVICE_NAME":        "virdanfeed",
	"ENVIRONMENT":              "development",
	"FEED_API_URL":             "http://localhost:8080",
	"FEED_LOG_FILE":            "feed.log",
	"FEED_REQUESTS_PER_SECOND": 5,
}

func NewKoanf(log *zap.Logger) *koanf.Koanf {
	k := koanf.New(".")

	// Missing .env is fine in containers where env vars come from compose.
	err := k.Load(file.Provider(".env"), dotenv.Parser())
	if err != nil {
		log.Debug(".env file not found, using environment variables", zap.Error(err))
	}

	// Environment overrides .env.
	err = k.Load(env.Provider("", ".", nil), nil)
	if err != nil {
		log.Fatal("failed to load environment variables", zap.Error(err))
	}

	ApplyDefaults(k)

	return k
}

// ApplyDefaults fills keys that neither .env nor the environment set.
func ApplyDefaults(k *koanf.Koanf) {
	for key, value := range defaults {
		if !k.Exists(key) {
			_ = k.Set(key, value)
		}
	}
}
