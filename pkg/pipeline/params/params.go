// Package params reads the per-stage parameter files generated next to a driver program.
//
// A parameter file is YAML:
//
//	input_path: default
//	output_path: default
//	parameters:
//	  photon_energy: 8.0
//
// The literal "default" tells the driver to apply the path convention of the pipeline.
package params

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-simex/pkg/pipeline/calculator"
)

// Default marks a path the driver resolves by convention.
const Default = "default"

// Suffix is appended to a stage name to build its parameter file name.
const Suffix = "_params.yaml"

// File is the content of a stage parameter file.
type File struct {
	InputPath  string                `yaml:"input_path"`
	OutputPath string                `yaml:"output_path"`
	Parameters calculator.Parameters `yaml:"parameters"`
}

// FileName returns the parameter file name of a stage.
func FileName(stage string) string {
	return stage + Suffix
}

// Load reads a parameter file. Missing paths are set to Default.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read parameter file %s", path)
	}

	return Parse(data)
}

// Parse decodes the content of a parameter file.
func Parse(data []byte) (*File, error) {
	file := &File{}
	err := yaml.Unmarshal(data, file)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode parameters")
	}
	if file.InputPath == "" {
		file.InputPath = Default
	}
	if file.OutputPath == "" {
		file.OutputPath = Default
	}
	if file.Parameters == nil {
		file.Parameters = calculator.Parameters{}
	}

	return file, nil
}
