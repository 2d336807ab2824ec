// Package calculator defines the capability set every calculation stage of a simulation pipeline implements.
//
// A stage is constructed from its parameters, the path of its input data store and the path of its output data
// store. It declares the data it expects and the data it provides through a model.DataContract and runs its
// backend synchronously.
package calculator

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/askiada/go-simex/pkg/pipeline/model"
)

var ErrBackendMustBeSet = errors.New("backend must be set")

// Calculator is a single stage of a simulation pipeline.
type Calculator interface {
	// ExpectedData returns the paths the stage reads from its input store.
	ExpectedData() []model.DataPath
	// ProvidedData returns the paths the stage writes to its output store.
	ProvidedData() []model.DataPath
	// InputPath returns the location of the input store.
	InputPath() string
	// OutputPath returns the location of the output store.
	OutputPath() string
	// Run executes the backend. On success every provided path exists in the output store.
	// On failure the output store must not be trusted.
	Run(ctx context.Context) error
}

// Factory creates a stage from its parameters and data store locations.
type Factory func(params Parameters, inputPath, outputPath string) (Calculator, error)

// Parameters are the calculation parameters of a stage. They are handed to the backend untouched.
type Parameters map[string]any

const commandKey = "command"

// Command returns the backend executable configured in the parameters, or fallback when none is set.
func (p Parameters) Command(fallback string) string {
	if cmd, ok := p[commandKey].(string); ok && cmd != "" {
		return cmd
	}

	return fallback
}

// Keys returns the parameter names in lexical order.
func (p Parameters) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Defaults are the conventional data store locations used when the caller leaves a path empty.
type Defaults struct {
	InputPath  string
	OutputPath string
}

// Base implements Calculator on top of a Backend. Concrete stages embed it.
type Base struct {
	name       string
	contract   model.DataContract
	params     Parameters
	inputPath  string
	outputPath string
	backend    Backend
}

// NewBase creates a stage. Empty paths are replaced by the given defaults.
func NewBase(name string, contract model.DataContract, params Parameters, inputPath, outputPath string, defaults Defaults, backend Backend) (*Base, error) {
	if backend == nil {
		return nil, ErrBackendMustBeSet
	}
	if contract.IsZero() {
		return nil, errors.Errorf("stage %s has no data contract", name)
	}
	if inputPath == "" {
		inputPath = defaults.InputPath
	}
	if outputPath == "" {
		outputPath = defaults.OutputPath
	}
	if params == nil {
		params = Parameters{}
	}

	return &Base{
		name:       name,
		contract:   contract,
		params:     params,
		inputPath:  inputPath,
		outputPath: outputPath,
		backend:    backend,
	}, nil
}

// Name returns the registered name of the stage.
func (b *Base) Name() string {
	return b.name
}

// Parameters returns the calculation parameters.
func (b *Base) Parameters() Parameters {
	return b.params
}

func (b *Base) InputPath() string {
	return b.inputPath
}

func (b *Base) OutputPath() string {
	return b.outputPath
}

func (b *Base) ExpectedData() []model.DataPath {
	return b.contract.ExpectedData()
}

func (b *Base) ProvidedData() []model.DataPath {
	return b.contract.ProvidedData()
}

// Run executes the backend. Failures are reported as *BackendExecutionError.
func (b *Base) Run(ctx context.Context) error {
	err := b.backend.Execute(ctx, Job{
		Stage:      b.name,
		Parameters: b.params,
		InputPath:  b.inputPath,
		OutputPath: b.outputPath,
	})
	if err != nil {
		return &BackendExecutionError{Stage: b.name, Err: err}
	}

	return nil
}

var _ Calculator = (*Base)(nil)
