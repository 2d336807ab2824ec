package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-simex/internal/cli/ui"
	"github.com/askiada/go-simex/pkg/pipeline/registry"
)

func newModulesCommand() *cobra.Command {
	var catalog string

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "list the available modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.Open(catalog)
			if err != nil {
				return errors.Wrap(err, "unable to open modules")
			}

			names := reg.Names()
			modules := make([]ui.ModuleInfo, 0, len(names))
			for _, name := range names {
				desc, err := reg.Resolve(name)
				if err != nil {
					return err
				}
				modules = append(modules, ui.ModuleInfo{
					Name:     desc.Name,
					Expects:  len(desc.Contract.ExpectedData()),
					Provides: len(desc.Contract.ProvidedData()),
					Template: desc.TemplatePath,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderModules(modules))

			return nil
		},
	}

	cmd.Flags().StringVar(&catalog, "catalog", "", "module catalog file")

	return cmd
}
