// Package cli implements the simex command line tool.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/askiada/go-simex/internal/config"
	"github.com/askiada/go-simex/internal/logger"
)

const version = "0.1.0"

type options struct {
	configPath string
}

// NewRootCommand creates the simex command and its subcommands.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "simex",
		Short:   "Compose simulation pipelines",
		Version: version,
		Long: `Compose start-to-end simulation pipelines from a list of modules.

simex writes an editable parameter file per module and generates a Go driver
program that runs the modules in order, feeding the output of every stage to
the next one.`,
		Example: `  # Generate the driver of the project described by ./simex.yaml
  $ simex generate

  # Write the parameter files of two modules
  $ simex params Source Propagator

  # List the available modules
  $ simex modules`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate(fmt.Sprintf("simex version %s\n", version))
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "project settings file (default ./"+config.FileName+")")

	cmd.AddCommand(
		newGenerateCommand(opts),
		newParamsCommand(),
		newModulesCommand(),
		newGraphCommand(opts),
	)

	return cmd
}

// Execute runs the simex command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// loadProject reads the settings and builds the logger they describe.
func loadProject(cmd *cobra.Command, opts *options) (*config.Settings, *slog.Logger, func() error, error) {
	settings, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	log, closeFn, err := logger.Setup(settings.Log, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, nil, err
	}

	return settings, log, closeFn, nil
}

// quietLogger is used by commands that run without project settings.
func quietLogger(cmd *cobra.Command) *slog.Logger {
	log, err := logger.New(config.LogConfig{Level: "warn", Format: "text"}, cmd.ErrOrStderr())
	if err != nil {
		return slog.Default()
	}

	return log
}
