package model

import (
	"github.com/pkg/errors"
)

var (
	ErrEmptyExpected = errors.New("expected data must not be empty")
	ErrEmptyProvided = errors.New("provided data must not be empty")
	ErrDuplicatePath = errors.New("duplicate data path")
)

// DataPath identifies a location inside a hierarchical data store, e.g. "/params/Mesh/nx".
type DataPath string

// DataContract declares the data a stage reads from its input store and the data it guarantees in its output store.
// The zero value is not a valid contract, use NewDataContract.
type DataContract struct {
	expected []DataPath
	provided []DataPath
}

// NewDataContract creates a contract. Both sets must be non-empty and must not repeat a path.
// A path may appear in both sets.
func NewDataContract(expected, provided []DataPath) (DataContract, error) {
	if len(expected) == 0 {
		return DataContract{}, ErrEmptyExpected
	}
	if len(provided) == 0 {
		return DataContract{}, ErrEmptyProvided
	}
	err := checkUnique(expected)
	if err != nil {
		return DataContract{}, errors.Wrap(err, "expected data")
	}
	err = checkUnique(provided)
	if err != nil {
		return DataContract{}, errors.Wrap(err, "provided data")
	}

	return DataContract{
		expected: clonePaths(expected),
		provided: clonePaths(provided),
	}, nil
}

// MustDataContract is like NewDataContract but panics on an invalid contract.
func MustDataContract(expected, provided []DataPath) DataContract {
	contract, err := NewDataContract(expected, provided)
	if err != nil {
		panic(err)
	}

	return contract
}

// ExpectedData returns the paths the stage requires in its input store.
func (c DataContract) ExpectedData() []DataPath {
	return clonePaths(c.expected)
}

// ProvidedData returns the paths the stage guarantees in its output store.
func (c DataContract) ProvidedData() []DataPath {
	return clonePaths(c.provided)
}

// IsZero reports whether the contract was never initialised.
func (c DataContract) IsZero() bool {
	return len(c.expected) == 0 && len(c.provided) == 0
}

// Missing returns the expected paths of c that upstream does not provide, in declaration order.
func (c DataContract) Missing(upstream DataContract) []DataPath {
	provided := make(map[DataPath]struct{}, len(upstream.provided))
	for _, path := range upstream.provided {
		provided[path] = struct{}{}
	}

	var missing []DataPath
	for _, path := range c.expected {
		if _, ok := provided[path]; !ok {
			missing = append(missing, path)
		}
	}

	return missing
}

func checkUnique(paths []DataPath) error {
	seen := make(map[DataPath]struct{}, len(paths))
	for _, path := range paths {
		if _, ok := seen[path]; ok {
			return errors.Wrapf(ErrDuplicatePath, "%q", path)
		}
		seen[path] = struct{}{}
	}

	return nil
}

func clonePaths(paths []DataPath) []DataPath {
	if paths == nil {
		return nil
	}
	cloned := make([]DataPath, len(paths))
	copy(cloned, paths)

	return cloned
}

// Paths converts plain strings to data paths.
func Paths(paths ...string) []DataPath {
	res := make([]DataPath, len(paths))
	for i, path := range paths {
		res[i] = DataPath(path)
	}

	return res
}
