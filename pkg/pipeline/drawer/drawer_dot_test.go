package drawer_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-simex/pkg/pipeline/drawer"
)

func TestDOTDrawer(t *testing.T) {
	t.Parallel()

	fileName := filepath.Join(t.TempDir(), "pipeline.dot")
	drw, err := drawer.NewDOTDrawer(fileName)
	require.NoError(t, err)

	require.NoError(t, drw.AddStep("Source"))
	require.NoError(t, drw.AddStep("Propagator"))
	require.NoError(t, drw.AddLink(drawer.StartStep, "Source", 0, 0))
	require.NoError(t, drw.AddLink("Source", "Propagator", 2, 4))
	require.NoError(t, drw.AddLink("Propagator", drawer.EndStep, 0, 0))
	require.NoError(t, drw.Draw())

	data, err := os.ReadFile(fileName)
	require.NoError(t, err)
	got := string(data)

	assert.True(t, strings.HasPrefix(got, "strict digraph {"))
	assert.Contains(t, got, `rankdir="LR"`)
	assert.Contains(t, got, `"start" -> "Source"`)
	assert.Contains(t, got, `"Source" -> "Propagator"`)
	assert.Contains(t, got, `"Propagator" -> "end"`)
	assert.Contains(t, got, `label="missing 2/4"`)
	assert.Contains(t, strings.ToLower(got), `color="#780078"`)
	assert.Contains(t, strings.ToLower(got), `color="#0000f0"`)
	assert.Less(t, strings.Index(got, `"start" [`), strings.Index(got, `"Source" [`))
	assert.Less(t, strings.Index(got, `"Source" [`), strings.Index(got, `"Propagator" [`))
}

func TestDOTDrawerErrors(t *testing.T) {
	t.Parallel()

	drw, err := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "pipeline.dot"))
	require.NoError(t, err)

	assert.Error(t, drw.AddStep(drawer.StartStep))
	assert.Error(t, drw.AddLink("Source", drawer.EndStep, 0, 1))

	drw, err = drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "missing", "pipeline.dot"))
	require.NoError(t, err)
	assert.Error(t, drw.Draw())
}
