package cli

import (
	"petclinic/internal/adapters/storage/sqlstore"

	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database schema versions. Use subcommands 'up', 'down', or 'status'.`,
	}

	for _, sub := range []struct{ use, short string }{
		{"up", "Migrate the database to the most recent version"},
		{"down", "Roll back the database by one version"},
		{"status", "Dump the migration status for the current DB"},
	} {
		command := sub.use
		cmd.AddCommand(&cobra.Command{
			Use:   sub.use,
			Short: sub.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.migrate(cmd, command)
			},
		})
	}
	return cmd
}

func (a *app) migrate(cmd *cobra.Command, command string) error {
	db, d, err := a.openDB(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqlstore.Migrate(db, d, command, a.log); err != nil {
		return err
	}
	a.log.Info("migration finished", map[string]any{"command": command, "dialect": string(d)})
	return nil
}
