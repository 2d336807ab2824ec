package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-simex/internal/cli/ui"
	"github.com/askiada/go-simex/pkg/pipeline/composer"
	"github.com/askiada/go-simex/pkg/pipeline/drawer"
	"github.com/askiada/go-simex/pkg/pipeline/registry"
)

func newGraphCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <file.dot>",
		Short: "draw the data flow of a project",
		Long: `Draw the modules of a project to a DOT file. Links between modules turn
from blue to red as the data a module expects goes missing upstream.`,
		Example: `  $ simex graph run1.dot && dot -Tsvg run1.dot > run1.svg`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, log, closeFn, err := loadProject(cmd, opts)
			if err != nil {
				return errors.Wrap(err, "unable to load project")
			}
			defer closeFn() //nolint:errcheck

			reg, err := registry.Open(settings.CatalogPath())
			if err != nil {
				return errors.Wrap(err, "unable to open modules")
			}

			cmp, err := composer.New(reg, composer.WithLogger(log))
			if err != nil {
				return err
			}

			drw, err := drawer.NewDOTDrawer(args[0])
			if err != nil {
				return err
			}

			coverage, err := cmp.Draw(settings.Modules, drw)
			if err != nil {
				return errors.Wrapf(err, "unable to draw %s", settings.Project)
			}
			for _, cov := range coverage {
				if !cov.Covered() {
					ui.PrintWarning(cmd.OutOrStdout(), "%s expects %d path(s) %s does not provide", cov.To, len(cov.Missing), cov.From)
				}
			}
			ui.PrintSuccess(cmd.OutOrStdout(), "graph %s written", args[0])

			return nil
		},
	}

	return cmd
}
