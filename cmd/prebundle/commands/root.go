// Package commands implements the CLI commands for prebundle.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/prebundle/internal/app"
	"go.trai.ch/prebundle/internal/build"
	"go.trai.ch/prebundle/internal/core/domain"
)

// CLI represents the command line interface for prebundle.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	configPath string
	verbose    bool
	logJSON    bool
}

// Application represents the application logic interface.
type Application interface {
	ConfigureLogging(verbose, jsonMode bool)
	Serve(ctx context.Context, opts app.ServeOptions) error
	Bundle(ctx context.Context, opts app.BundleOptions) error
	Entries(ctx context.Context, configPath string) (*domain.Registry, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "prebundle",
		Short:         "Pre-bundle selected entries for a dev server on demand",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			c.app.ConfigureLogging(c.verbose, c.logJSON)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "Path to "+domain.DefaultConfigFilename+" (default: discovered from the working directory)")
	flags.BoolVar(&c.verbose, "verbose", false, "Enable debug logging")
	flags.BoolVar(&c.logJSON, "log-json", false, "Write logs as JSON")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newBundleCmd())
	rootCmd.AddCommand(c.newEntriesCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
