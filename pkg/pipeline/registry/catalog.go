package registry

import (
	"io/fs"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-simex/pkg/pipeline/calculator"
	"github.com/askiada/go-simex/pkg/pipeline/model"
)

// Catalog declares modules backed by external simulation programs.
//
//	modules:
//	  - name: Diffractor
//	    template: Diffractor_params.yaml
//	    command: singfel
//	    input: prop
//	    output: diffr
//	    expected: [/data/arrEhor, /data/arrEver]
//	    provided: [/data/diffr]
type Catalog struct {
	Modules []CatalogModule `yaml:"modules"`
}

// CatalogModule is one module of a catalog.
type CatalogModule struct {
	Name     string   `yaml:"name"`
	Template string   `yaml:"template"`
	Command  string   `yaml:"command"`
	Args     []string `yaml:"args"`
	Input    string   `yaml:"input"`
	Output   string   `yaml:"output"`
	Expected []string `yaml:"expected"`
	Provided []string `yaml:"provided"`
}

// LoadCatalog reads a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read catalog %s", path)
	}

	cat := &Catalog{}
	err = yaml.Unmarshal(data, cat)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode catalog %s", path)
	}

	return cat, nil
}

// RegisterInto registers every catalog module. Templates are read from templates.
func (c *Catalog) RegisterInto(reg *Registry, templates fs.FS) error {
	for _, mod := range c.Modules {
		contract, err := model.NewDataContract(model.Paths(mod.Expected...), model.Paths(mod.Provided...))
		if err != nil {
			return errors.Wrapf(err, "invalid contract for module %s", mod.Name)
		}

		err = reg.Register(mod.Name, Entry{
			Contract:     contract,
			TemplateFS:   templates,
			TemplatePath: mod.Template,
			Factory:      mod.factory(contract),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (m CatalogModule) factory(contract model.DataContract) calculator.Factory {
	name := m.Name
	defaults := calculator.Defaults{InputPath: m.Input, OutputPath: m.Output}
	command := m.Command
	args := append([]string(nil), m.Args...)

	return func(params calculator.Parameters, inputPath, outputPath string) (calculator.Calculator, error) {
		base, err := calculator.NewBase(name, contract, params, inputPath, outputPath, defaults,
			&calculator.CommandBackend{Command: command, Args: args},
		)
		if err != nil {
			return nil, err
		}

		return base, nil
	}
}
