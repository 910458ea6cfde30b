package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/prebundle/internal/ui/style"
)

func (c *CLI) newEntriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entries",
		Short: "List the configured entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := c.app.Entries(cmd.Context(), c.configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if registry.Len() == 0 {
				_, _ = fmt.Fprintln(out, "no entries")
				return nil
			}
			for entry := range registry.Entries() {
				name, relErr := filepath.Rel(registry.Root(), entry.ResolvedFilepath)
				if relErr != nil {
					name = entry.ResolvedFilepath
				}
				_, _ = fmt.Fprintf(out, "%s %s bundler=%s dependencies=%s\n",
					style.Dot,
					style.Bold(filepath.ToSlash(name)),
					entry.Options.Bundler,
					entry.Options.BundleDependencies,
				)
			}
			return nil
		},
	}
}
