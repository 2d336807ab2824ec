package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-simex/internal/cli/ui"
	"github.com/askiada/go-simex/pkg/pipeline/composer"
	"github.com/askiada/go-simex/pkg/pipeline/registry"
)

func newParamsCommand() *cobra.Command {
	var (
		dir     string
		catalog string
	)

	cmd := &cobra.Command{
		Use:   "params <module>...",
		Short: "write the parameter file of modules",
		Long: `Write <module>_params.yaml for every module. Existing files are kept.`,
		Example: `  $ simex params Source Propagator
  $ simex params --catalog modules.yaml Diffractor`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.Open(catalog)
			if err != nil {
				return errors.Wrap(err, "unable to open modules")
			}

			cmp, err := composer.New(reg, composer.WithDir(dir), composer.WithLogger(quietLogger(cmd)))
			if err != nil {
				return err
			}

			for _, name := range args {
				paramFile, err := cmp.MaterializeStageParameters(name)
				if err != nil {
					return err
				}
				if paramFile.Created {
					ui.PrintSuccess(cmd.OutOrStdout(), "%s created", paramFile.Path)
				} else {
					ui.PrintInfo(cmd.OutOrStdout(), "%s kept", paramFile.Path)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory the parameter files are written to")
	cmd.Flags().StringVar(&catalog, "catalog", "", "module catalog file")

	return cmd
}
