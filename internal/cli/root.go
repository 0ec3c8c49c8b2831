// Package cli implements salesctl, the administration tool for the ventas
// database.
package cli

import (
	"ventas/internal/config"
	"ventas/internal/infrastructure/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "salesctl",
		Short:         "Administer the ventas database",
		Long:          "salesctl applies schema migrations, loads fixtures and hashes passwords for the ventas service.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())
	cmd.AddCommand(newHashPasswordCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

func loadDatabaseConfig() (*config.DatabaseConfig, *zap.Logger, error) {
	dbCfg, logCfg, err := config.LoadDatabase()
	if err != nil {
		return nil, nil, err
	}

	zapLogger, err := logger.New(*logCfg)
	if err != nil {
		return nil, nil, err
	}

	return dbCfg, zapLogger, nil
}
