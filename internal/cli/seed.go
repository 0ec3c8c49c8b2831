package cli

import (
	"fmt"

	"ventas/internal/infrastructure/mysql"
	"ventas/internal/seed"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <fixtures.yaml>",
		Short: "Load users, companies, employees and articles from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtures, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}

			dbCfg, zapLogger, err := loadDatabaseConfig()
			if err != nil {
				return err
			}
			defer zapLogger.Sync()

			db, err := mysql.NewConnection(*dbCfg)
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := seed.NewModule(db, dbCfg.TxTimeout, zapLogger).Apply(cmd.Context(), fixtures)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d companies, %d employees, %d articles\n",
				result.Users, result.Companies, result.Employees, result.Articles)
			return nil
		},
	}
}
