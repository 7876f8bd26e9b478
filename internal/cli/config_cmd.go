package cli

import (
	"fmt"

	"petclinic/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Config file helpers",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the effective settings",
		Args:  cobra.NoArgs,
		// El archivo todavía no existe: se resuelve sólo con defaults, env y flags.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd, false)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Save(a.cfgPath, a.cfg, force); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", a.cfgPath)
			return err
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}
