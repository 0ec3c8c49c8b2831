package mysql

import (
	"database/sql"
	"errors"
	"fmt"

	"ventas/internal/config"
	"ventas/internal/infrastructure/mysql/migrations"

	driver "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// Migrator applies the embedded schema migrations. It owns a dedicated
// connection opened with multiStatements, which the pool used by the
// application does not enable.
type Migrator struct {
	m      *migrate.Migrate
	logger *zap.Logger
}

func NewMigrator(cfg config.DatabaseConfig, logger *zap.Logger) (*Migrator, error) {
	dc := DriverConfig(cfg)
	dc.MultiStatements = true

	connector, err := driver.NewConnector(dc)
	if err != nil {
		return nil, fmt.Errorf("building migration connector: %w", err)
	}
	db := sql.OpenDB(connector)

	dbDriver, err := migratemysql.WithInstance(db, &migratemysql.Config{DatabaseName: cfg.Name})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating migration driver: %w", err)
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		dbDriver.Close()
		return nil, fmt.Errorf("opening embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "mysql", dbDriver)
	if err != nil {
		dbDriver.Close()
		return nil, fmt.Errorf("creating migrate instance: %w", err)
	}

	return &Migrator{m: m, logger: logger}, nil
}

func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.logger.Info("schema already up to date")
			return nil
		}
		return fmt.Errorf("applying migrations: %w", err)
	}
	mg.logger.Info("migrations applied")
	return nil
}

// Down rolls back a single migration step.
func (mg *Migrator) Down() error {
	if err := mg.m.Steps(-1); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("rolling back migration: %w", err)
	}
	mg.logger.Info("migration rolled back")
	return nil
}

// Version reports the current schema version. ok is false when no migration
// has been applied yet.
func (mg *Migrator) Version() (version uint, dirty bool, ok bool, err error) {
	version, dirty, err = mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, fmt.Errorf("reading schema version: %w", err)
	}
	return version, dirty, true, nil
}

func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}
