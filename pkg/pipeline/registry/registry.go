// Package registry resolves stage names to their data contract, parameter template and backend entry point.
package registry

import (
	"context"
	"io/fs"
	"regexp"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-simex/pkg/pipeline/calculator"
	"github.com/askiada/go-simex/pkg/pipeline/model"
)

const validateConcurrency = 8

var validName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Entry is what a module registers. TemplateFS holds the default parameter file of the module at TemplatePath.
type Entry struct {
	Contract     model.DataContract
	TemplateFS   fs.FS
	TemplatePath string
	Factory      calculator.Factory
}

// ModuleDescriptor is the resolved description of a module. A new descriptor is built for every lookup.
type ModuleDescriptor struct {
	Name         string
	Contract     model.DataContract
	TemplateFS   fs.FS
	TemplatePath string
	Factory      calculator.Factory
}

// Registry maps module names to entries. It is not safe for concurrent registration.
type Registry struct {
	entries map[string]Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
	}
}

// Register adds a module.
func (r *Registry) Register(name string, entry Entry) error {
	if !validName.MatchString(name) {
		return errors.Wrapf(ErrInvalidName, "%q", name)
	}
	if _, ok := r.entries[name]; ok {
		return errors.Wrap(ErrModuleExists, name)
	}
	if entry.Factory == nil {
		return errors.Wrap(ErrFactoryMustBeSet, name)
	}
	if entry.TemplateFS == nil || entry.TemplatePath == "" {
		return errors.Wrap(ErrTemplateMustBeSet, name)
	}
	_, err := model.NewDataContract(entry.Contract.ExpectedData(), entry.Contract.ProvidedData())
	if err != nil {
		return errors.Wrapf(err, "invalid contract for module %s", name)
	}

	r.entries[name] = entry

	return nil
}

// Resolve returns the descriptor of a module, or *UnknownModuleError.
func (r *Registry) Resolve(name string) (ModuleDescriptor, error) {
	entry, ok := r.entries[name]
	if !ok {
		return ModuleDescriptor{}, &UnknownModuleError{Name: name, Known: r.Names()}
	}

	return ModuleDescriptor{
		Name:         name,
		Contract:     entry.Contract,
		TemplateFS:   entry.TemplateFS,
		TemplatePath: entry.TemplatePath,
		Factory:      entry.Factory,
	}, nil
}

// Build resolves a module and creates a stage instance.
func (r *Registry) Build(name string, params calculator.Parameters, inputPath, outputPath string) (calculator.Calculator, error) {
	desc, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}

	calc, err := desc.Factory(params, inputPath, outputPath)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create module %s", name)
	}

	return calc, nil
}

// Names returns the registered module names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Validate checks that the parameter template of every module can be read.
func (r *Registry) Validate(ctx context.Context) error {
	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(validateConcurrency)

	for _, name := range r.Names() {
		name := name
		entry := r.entries[name]
		errGrp.Go(func() error {
			if err := dCtx.Err(); err != nil {
				return err
			}
			_, err := fs.Stat(entry.TemplateFS, entry.TemplatePath)
			if err != nil {
				return errors.Wrapf(err, "module %s: unable to read template %s", name, entry.TemplatePath)
			}

			return nil
		})
	}

	return errGrp.Wait()
}
