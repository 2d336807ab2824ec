package registry

import (
	"embed"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/askiada/go-simex/pkg/pipeline/calculator"
	"github.com/askiada/go-simex/pkg/pipeline/model"
	"github.com/askiada/go-simex/pkg/pipeline/params"
)

//go:embed templates/*.yaml
var builtinTemplates embed.FS

// Default returns a registry holding the built-in modules.
func Default() *Registry {
	reg := New()
	mustRegister(reg, calculator.PhotonSourceName, calculator.PhotonSourceContract, calculator.NewPhotonSource)
	mustRegister(reg, calculator.PhotonPropagatorName, calculator.PhotonPropagatorContract, calculator.NewPhotonPropagator)

	return reg
}

// Open returns the built-in modules extended with the modules of a catalog file.
// An empty path or a missing file gives the built-in modules only.
func Open(catalogPath string) (*Registry, error) {
	reg := Default()
	if catalogPath == "" {
		return reg, nil
	}

	_, err := os.Stat(catalogPath)
	if errors.Is(err, os.ErrNotExist) {
		return reg, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to stat catalog %s", catalogPath)
	}

	cat, err := LoadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}

	err = cat.RegisterInto(reg, os.DirFS(filepath.Dir(catalogPath)))
	if err != nil {
		return nil, errors.Wrapf(err, "unable to register catalog %s", catalogPath)
	}

	return reg, nil
}

func mustRegister(reg *Registry, name string, contract model.DataContract, factory calculator.Factory) {
	err := reg.Register(name, Entry{
		Contract:     contract,
		TemplateFS:   builtinTemplates,
		TemplatePath: "templates/" + params.FileName(name),
		Factory:      factory,
	})
	if err != nil {
		panic(err)
	}
}
