package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/prebundle/internal/app"
)

func (c *CLI) newBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle <entry>",
		Short: "Bundle one configured entry and print or write the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")

			return c.app.Bundle(cmd.Context(), app.BundleOptions{
				ConfigPath: c.configPath,
				Entry:      args[0],
				Output:     output,
				Out:        cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write the bundle to this file instead of stdout")
	return cmd
}
