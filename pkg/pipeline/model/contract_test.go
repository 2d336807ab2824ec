package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-simex/pkg/pipeline/model"
)

func TestNewDataContract(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		expected []model.DataPath
		provided []model.DataPath
		wantErr  error
	}{
		"valid": {
			expected: model.Paths("/data/arrEhor", "/params/nval"),
			provided: model.Paths("/data/arrEhor", "/misc/xFWHM"),
		},
		"empty expected": {
			provided: model.Paths("/data/arrEhor"),
			wantErr:  model.ErrEmptyExpected,
		},
		"empty provided": {
			expected: model.Paths("/data/arrEhor"),
			wantErr:  model.ErrEmptyProvided,
		},
		"duplicate expected": {
			expected: model.Paths("/data/arrEhor", "/data/arrEhor"),
			provided: model.Paths("/data/arrEver"),
			wantErr:  model.ErrDuplicatePath,
		},
		"duplicate provided": {
			expected: model.Paths("/data/arrEhor"),
			provided: model.Paths("/version", "/info/contact", "/version"),
			wantErr:  model.ErrDuplicatePath,
		},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			contract, err := model.NewDataContract(tc.expected, tc.provided)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.True(t, contract.IsZero())

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, contract.ExpectedData())
			assert.Equal(t, tc.provided, contract.ProvidedData())
		})
	}
}

func TestDataContractAccessorsAreStable(t *testing.T) {
	t.Parallel()

	contract := model.MustDataContract(model.Paths("/a", "/b"), model.Paths("/c"))
	first := contract.ExpectedData()
	first[0] = "/mutated"

	assert.Equal(t, model.Paths("/a", "/b"), contract.ExpectedData())
	assert.Equal(t, contract.ProvidedData(), contract.ProvidedData())
}

func TestDataContractMissing(t *testing.T) {
	t.Parallel()

	upstream := model.MustDataContract(model.Paths("/in"), model.Paths("/data/arrEhor", "/version"))
	downstream := model.MustDataContract(model.Paths("/data/arrEhor", "/data/arrEver", "/version", "/params/nval"), model.Paths("/out"))

	assert.Equal(t, model.Paths("/data/arrEver", "/params/nval"), downstream.Missing(upstream))
	assert.Empty(t, upstream.Missing(model.MustDataContract(model.Paths("/x"), model.Paths("/in"))))
}

func TestMustDataContractPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		model.MustDataContract(nil, model.Paths("/out"))
	})
}
