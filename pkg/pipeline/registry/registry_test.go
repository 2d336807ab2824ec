package registry_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-simex/pkg/pipeline/calculator"
	"github.com/askiada/go-simex/pkg/pipeline/model"
	"github.com/askiada/go-simex/pkg/pipeline/registry"
)

func testEntry(t *testing.T, templates fstest.MapFS, path string) registry.Entry {
	t.Helper()

	contract := model.MustDataContract(model.Paths("/in"), model.Paths("/out"))

	return registry.Entry{
		Contract:     contract,
		TemplateFS:   templates,
		TemplatePath: path,
		Factory: func(params calculator.Parameters, inputPath, outputPath string) (calculator.Calculator, error) {
			return calculator.NewBase("Test", contract, params, inputPath, outputPath, calculator.Defaults{},
				calculator.BackendFunc(func(context.Context, calculator.Job) error { return nil }))
		},
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	templates := fstest.MapFS{"Test_params.yaml": {Data: []byte("parameters: {}\n")}}
	valid := testEntry(t, templates, "Test_params.yaml")

	noFactory := valid
	noFactory.Factory = nil

	noTemplate := valid
	noTemplate.TemplatePath = ""

	noContract := valid
	noContract.Contract = model.DataContract{}

	tcs := map[string]struct {
		name    string
		entry   registry.Entry
		wantErr error
	}{
		"valid":        {name: "Test", entry: valid},
		"empty name":   {name: "", entry: valid, wantErr: registry.ErrInvalidName},
		"invalid name": {name: "../Test", entry: valid, wantErr: registry.ErrInvalidName},
		"no factory":   {name: "Test", entry: noFactory, wantErr: registry.ErrFactoryMustBeSet},
		"no template":  {name: "Test", entry: noTemplate, wantErr: registry.ErrTemplateMustBeSet},
		"no contract":  {name: "Test", entry: noContract, wantErr: model.ErrEmptyExpected},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			reg := registry.New()
			err := reg.Register(tc.name, tc.entry)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)

				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	t.Parallel()

	templates := fstest.MapFS{"Test_params.yaml": {Data: []byte("parameters: {}\n")}}
	reg := registry.New()
	require.NoError(t, reg.Register("Test", testEntry(t, templates, "Test_params.yaml")))

	err := reg.Register("Test", testEntry(t, templates, "Test_params.yaml"))
	assert.ErrorIs(t, err, registry.ErrModuleExists)
}

func TestResolveUnknown(t *testing.T) {
	t.Parallel()

	_, err := registry.Default().Resolve("Detector")
	require.Error(t, err)

	var unknownErr *registry.UnknownModuleError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "Detector", unknownErr.Name)
	assert.Equal(t, []string{"Propagator", "Source"}, unknownErr.Known)
	assert.Contains(t, err.Error(), "Detector")
}

func TestResolveDefault(t *testing.T) {
	t.Parallel()

	reg := registry.Default()
	assert.Equal(t, []string{"Propagator", "Source"}, reg.Names())

	desc, err := reg.Resolve("Propagator")
	require.NoError(t, err)
	assert.Equal(t, "Propagator", desc.Name)
	assert.Equal(t, calculator.PhotonPropagatorContract, desc.Contract)
	assert.Equal(t, "templates/Propagator_params.yaml", desc.TemplatePath)
	require.NotNil(t, desc.Factory)
	require.NotNil(t, desc.TemplateFS)

	require.NoError(t, reg.Validate(context.Background()))
}

func TestBuild(t *testing.T) {
	t.Parallel()

	reg := registry.Default()
	calc, err := reg.Build("Source", calculator.Parameters{"nslices": 3}, "beam.h5", "output/Source")
	require.NoError(t, err)
	assert.Equal(t, "beam.h5", calc.InputPath())
	assert.Equal(t, "output/Source", calc.OutputPath())
	assert.Equal(t, calculator.PhotonSourceContract.ProvidedData(), calc.ProvidedData())

	_, err = reg.Build("Unknown", nil, "", "")
	var unknownErr *registry.UnknownModuleError
	assert.True(t, errors.As(err, &unknownErr))
}

func TestValidateMissingTemplate(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	require.NoError(t, reg.Register("Ok", testEntry(t, fstest.MapFS{"Ok_params.yaml": {Data: []byte("")}}, "Ok_params.yaml")))
	require.NoError(t, reg.Register("Broken", testEntry(t, fstest.MapFS{}, "Broken_params.yaml")))

	err := reg.Validate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")
}
