package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/prebundle/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dev server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			noWatch, _ := cmd.Flags().GetBool("no-watch")

			return c.app.Serve(cmd.Context(), app.ServeOptions{
				ConfigPath: c.configPath,
				Addr:       addr,
				NoWatch:    noWatch,
			})
		},
	}
	cmd.Flags().StringP("addr", "a", "", "Listen address (overrides server.addr)")
	cmd.Flags().Bool("no-watch", false, "Do not watch files for changes")
	return cmd
}
