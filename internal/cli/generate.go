package cli

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-simex/internal/cli/ui"
	"github.com/askiada/go-simex/internal/logger"
	"github.com/askiada/go-simex/pkg/pipeline/composer"
	"github.com/askiada/go-simex/pkg/pipeline/drawer"
	"github.com/askiada/go-simex/pkg/pipeline/registry"
)

func newGenerateCommand(opts *options) *cobra.Command {
	var (
		dir   string
		graph string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "generate the parameter files and the driver of a project",
		Long: `Generate the parameter files and the driver program of a project.

Parameter files that already exist are kept. A driver from a previous run is
backed up to <project>.bak before it is replaced.`,
		Example: `  $ simex generate
  $ simex generate -c runs/run1/simex.yaml --graph run1.dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, log, closeFn, err := loadProject(cmd, opts)
			if err != nil {
				return errors.Wrap(err, "unable to load project")
			}
			defer closeFn() //nolint:errcheck

			if dir != "" {
				settings.Dir = dir
			}
			if graph != "" {
				settings.Graph = graph
			}
			log = logger.WithRunID(log, uuid.NewString())

			reg, err := registry.Open(settings.CatalogPath())
			if err != nil {
				return errors.Wrap(err, "unable to open modules")
			}
			err = reg.Validate(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "invalid modules")
			}

			composerOpts := []composer.Option{
				composer.WithDir(settings.Dir),
				composer.WithLogger(log),
				composer.WithNotices(cmd.OutOrStdout()),
				composer.WithCatalog(settings.Catalog),
			}
			if settings.StrictContracts {
				composerOpts = append(composerOpts, composer.WithStrictContracts())
			}
			if settings.Graph != "" {
				drw, err := drawer.NewDOTDrawer(settings.Graph)
				if err != nil {
					return errors.Wrap(err, "unable to create drawer")
				}
				composerOpts = append(composerOpts, composer.WithDrawer(drw))
			}

			cmp, err := composer.New(reg, composerOpts...)
			if err != nil {
				return err
			}

			res, err := cmp.GenerateDriver(settings.Project, settings.Modules)
			if err != nil {
				return errors.Wrapf(err, "unable to generate %s", settings.Project)
			}

			printResult(cmd, res)

			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "directory the files are written to (default: directory of the settings file)")
	cmd.Flags().StringVar(&graph, "graph", "", "write the pipeline graph to this DOT file")

	return cmd
}

func printResult(cmd *cobra.Command, res *composer.Result) {
	out := cmd.OutOrStdout()

	for _, warning := range res.Warnings {
		ui.PrintWarning(out, "%v", warning)
	}
	for _, failure := range res.Failures {
		ui.PrintError(out, "%v", failure)
	}
	for _, cov := range res.Coverage {
		if !cov.Covered() {
			ui.PrintWarning(out, "%s expects %d path(s) %s does not provide", cov.To, len(cov.Missing), cov.From)
		}
	}
	for _, paramFile := range res.ParamFiles {
		if paramFile.Created {
			ui.PrintInfo(out, "parameter file %s created", paramFile.Path)
		}
	}

	ui.PrintSuccess(out, "driver %s generated", res.Driver)
}
