package config

import (
	"errors"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// RunMigrations applies db/migrations (or MIGRATION_PATH) to POSTGRES_URL.
func RunMigrations(config *koanf.Koanf, log *zap.Logger) error {
	absPath, err := filepath.Abs(config.String("MIGRATION_PATH"))
	if err != nil {
		return err
	}

	m, err := migrate.New("file://"+absPath, config.String("POSTGRES_URL"))
	if err != nil {
		return err
	}
	defer func() {
		_, _ = m.Close()
	}()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, _ := m.Version()
	log.Info("database migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))

	return nil
}
