// Package cli defines the propctl maintenance commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/BilawalArif/redfin-clone/internal/config"
	"github.com/BilawalArif/redfin-clone/pkg/database"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var flagEnvFile string

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "propctl",
		Short:         "Maintain the redfin-clone database",
		Long:          "Apply schema migrations, bulk import listings and grant admin access against the server's PostgreSQL database.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagEnvFile != "" {
				// A missing file is fine, the environment may already be set
				_ = godotenv.Load(flagEnvFile)
			}
		},
	}

	root.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "dotenv file to load before reading POSTGRES_* settings")

	root.AddCommand(
		newMigrateCmd(),
		newImportCmd(),
		newPromoteCmd(),
	)

	return root
}

// openDB connects using the POSTGRES_* environment.
func openDB(ctx context.Context) (*database.Postgres, error) {
	pg, err := config.LoadPostgres(ctx)
	if err != nil {
		return nil, err
	}
	return database.NewPostgres(pg.DSN(), pg.Pool())
}

// closeDB closes the database, logging any error to stderr.
func closeDB(db *database.Postgres) {
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
