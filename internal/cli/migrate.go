package cli

import (
	"fmt"

	"ventas/internal/infrastructure/mysql"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *mysql.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *mysql.Migrator) error {
				if err := m.Down(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "rolled back one migration")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *mysql.Migrator) error {
				version, dirty, ok, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatVersion(version, dirty, ok))
				return nil
			})
		},
	})

	return cmd
}

func formatVersion(version uint, dirty, ok bool) string {
	if !ok {
		return "no migrations applied"
	}
	if dirty {
		return fmt.Sprintf("version %d (dirty)", version)
	}
	return fmt.Sprintf("version %d", version)
}

func withMigrator(fn func(m *mysql.Migrator) error) error {
	dbCfg, zapLogger, err := loadDatabaseConfig()
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	m, err := mysql.NewMigrator(*dbCfg, zapLogger)
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(m)
}
