package cli

import (
	"fmt"

	"github.com/BilawalArif/redfin-clone/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
		RunE:      runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	direction := database.Direction(args[0])

	db, err := openDB(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB(db)

	if err := database.Migrate(db, direction); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied (%s)\n", direction)
	return nil
}
