package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-simex/pkg/pipeline/render"
)

func TestRender(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		text    string
		fields  any
		want    string
		wantErr bool
	}{
		"map fields": {
			text:   "Module {{.Name}} reads {{.Previous}}",
			fields: render.Fields{"Name": "Propagator", "Previous": "Source"},
			want:   "Module Propagator reads Source",
		},
		"struct fields": {
			text:   "{{.Name}}",
			fields: struct{ Name string }{Name: "Source"},
			want:   "Source",
		},
		"quote": {
			text:   "x := {{quote .Path}}",
			fields: render.Fields{"Path": `output/"Source"`},
			want:   `x := "output/\"Source\""`,
		},
		"missing field": {
			text:    "{{.Name}} {{.Unknown}}",
			fields:  render.Fields{"Name": "Source"},
			wantErr: true,
		},
		"parse error": {
			text:    "{{.Name",
			fields:  render.Fields{},
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := render.New().Render(name, tc.text, tc.fields)
			if tc.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRenderTwoPass(t *testing.T) {
	t.Parallel()

	engine := render.New()
	inner, err := engine.Render("inner", "{{.Name}} <- {{.Previous}}", render.Fields{"Name": "Propagator", "Previous": "Source"})
	require.NoError(t, err)

	outer, err := engine.Render("outer", "[{{.Inner}}] {{.Name}}", render.Fields{"Inner": inner, "Name": "Propagator"})
	require.NoError(t, err)
	assert.Equal(t, "[Propagator <- Source] Propagator", outer)
}
