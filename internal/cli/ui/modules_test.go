package ui_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-simex/internal/cli/ui"
)

func TestRenderModules(t *testing.T) {
	t.Parallel()

	got := ui.RenderModules([]ui.ModuleInfo{
		{Name: "Propagator", Expects: 11, Provides: 12, Template: "templates/Propagator_params.yaml"},
		{Name: "Source", Expects: 3, Provides: 11, Template: "templates/Source_params.yaml"},
	})

	assert.Contains(t, got, "MODULES")
	assert.Contains(t, got, "Propagator")
	assert.Contains(t, got, "Expects: 11 path(s)")
	assert.Contains(t, got, "Provides: 12 path(s)")
	assert.Contains(t, got, "Template: templates/Source_params.yaml")
	assert.Less(t, strings.Index(got, "Propagator"), strings.Index(got, "Source"))

	assert.Contains(t, ui.RenderModules(nil), "No modules found")
}
