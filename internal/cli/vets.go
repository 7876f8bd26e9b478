package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"

	"petclinic/internal/platform/httpclient"

	"github.com/spf13/cobra"
)

func newVetsCommand(a *app) *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "vets [lastName]",
		Short: "Query the vets of a running server",
		Long:  `Without arguments lists every vet; with a last name looks it up (exact match).`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if server == "" {
				server = fmt.Sprintf("http://127.0.0.1:%d", a.cfg.Server.Port)
			}
			c, err := httpclient.New(server, a.cfg.Server.ReadTimeout)
			if err != nil {
				return err
			}

			path := "/vets"
			if len(args) == 1 {
				path = "/vets/name/" + url.PathEscape(args[0])
			}

			var raw json.RawMessage
			if err := c.Get(cmd.Context(), path, &raw); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := json.Indent(&buf, raw, "", "  "); err != nil {
				return fmt.Errorf("format response: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), buf.String())
			return err
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "Base URL of the API (default http://127.0.0.1:<port>)")
	return cmd
}
