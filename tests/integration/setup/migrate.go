package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ferdian3456/virdanfeed/internal/config"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zaptest"
)

func RunMigration(pgURL string, t *testing.T) error {
	t.Log("Running database migrations...")

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	// integration -> tests -> project root
	migrationPath := filepath.Join(wd, "..", "..", "db", "migrations")

	migrationConfig := koanf.New(".")
	_ = migrationConfig.Set("POSTGRES_URL", pgURL)
	_ = migrationConfig.Set("MIGRATION_PATH", migrationPath)

	if err := config.RunMigrations(migrationConfig, zaptest.NewLogger(t)); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	t.Log("Database migrations completed successfully")
	return nil
}
