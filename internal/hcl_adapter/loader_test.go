package hcl_adapter

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowbricks/internal/model"
	"github.com/vk/flowbricks/internal/testutil"
)

const forecastHCL = `
unit "sales.forecast" {
  name        = "Demand Forecast"
  version     = "1.4.0"
  category    = "forecasting"
  domain      = "sales"
  protected   = true
  tags        = ["timeseries", "ml"]
  description = "Predicts weekly demand."

  input "history" {
    kind = "data"
    column "store_id" {
      type = string
    }
    column "qty" {
      type     = number
      nullable = true
    }
    column "labels" {
      type = list(string)
    }
  }

  input "calendar" {
    kind     = "data"
    required = false
  }

  output "predictions" {
    kind = "data"
    column "store_id" {}
  }
}
`

const prepHCL = `
unit "sales.prep" {
  version = "0.2"

  output "rows" {
    kind = "data"
  }
}

wire {
  from = "sales.prep.rows"
  to   = "sales.forecast.history"
}
`

func TestLoader_Load(t *testing.T) {
	ctx, _ := testutil.Context(t)
	root := testutil.WriteFiles(t, map[string]string{
		"units/forecast.hcl":    forecastHCL,
		"units/nested/prep.hcl": prepHCL,
		"units/README.md":       "not a manifest",
	})

	m, err := NewLoader().Load(ctx, filepath.Join(root, "units"), filepath.Join(root, "missing"))
	require.NoError(t, err)

	want := []model.UnitSummary{
		{
			ID:          "sales.forecast",
			Name:        "Demand Forecast",
			Version:     "1.4.0",
			Category:    "forecasting",
			Domain:      "sales",
			Protected:   true,
			Tags:        []string{"timeseries", "ml"},
			Description: "Predicts weekly demand.",
			Inputs: []model.Port{
				{Name: "history", Kind: "data", Required: true, Schema: []model.Column{
					{Name: "store_id", Type: "string"},
					{Name: "qty", Type: "number", Nullable: true},
					{Name: "labels", Type: "list(string)"},
				}},
				{Name: "calendar", Kind: "data"},
			},
			Outputs: []model.Port{
				{Name: "predictions", Kind: "data", Schema: []model.Column{{Name: "store_id"}}},
			},
		},
		{
			ID:      "sales.prep",
			Version: "0.2",
			Outputs: []model.Port{{Name: "rows", Kind: "data"}},
		},
	}
	if diff := cmp.Diff(want, m.Units); diff != "" {
		t.Errorf("units mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []model.WireHint{{
		Source: model.PortRef{Unit: "sales.prep", Port: "rows"},
		Target: model.PortRef{Unit: "sales.forecast", Port: "history"},
	}}, m.Hints)
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "syntax error",
			files:   map[string]string{"a.hcl": `unit "x" {`},
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "missing version",
			files:   map[string]string{"a.hcl": `unit "x" {}`},
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "unknown block",
			files:   map[string]string{"a.hcl": `step "x" "y" {}`},
			wantErr: "Unsupported block type",
		},
		{
			name: "duplicate unit across files",
			files: map[string]string{
				"a.hcl": `unit "x" { version = "1.0.0" }`,
				"b.hcl": `unit "x" { version = "2.0.0" }`,
			},
			wantErr: `unit "x" is defined in both`,
		},
		{
			name: "unknown column type",
			files: map[string]string{"a.hcl": `
unit "x" {
  version = "1.0.0"
  input "in" {
    kind = "data"
    column "c" { type = decimal }
  }
}`},
			wantErr: `unknown primitive type "decimal"`,
		},
		{
			name: "required on output",
			files: map[string]string{"a.hcl": `
unit "x" {
  version = "1.0.0"
  output "out" {
    kind     = "data"
    required = true
  }
}`},
			wantErr: "outputs cannot set required",
		},
		{
			name:    "malformed wire",
			files:   map[string]string{"a.hcl": "wire {\n  from = \"nodot\"\n  to   = \"x.in\"\n}\n"},
			wantErr: "hint source",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := testutil.Context(t)
			root := testutil.WriteFiles(t, tc.files)
			_, err := NewLoader().Load(ctx, root)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestManifestSource_Units(t *testing.T) {
	ctx, _ := testutil.Context(t)
	root := testutil.WriteFiles(t, map[string]string{"prep.hcl": prepHCL})

	units, err := ManifestSource{Paths: []string{root}}.Units(ctx)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "sales.prep", units[0].ID)
}

func TestTypeExpressions(t *testing.T) {
	ctx, _ := testutil.Context(t)
	root := testutil.WriteFiles(t, map[string]string{"types.hcl": `
unit "t" {
  version = "1.0.0"
  input "in" {
    kind = "data"
    column "a" { type = map(number) }
    column "b" { type = set(bool) }
    column "c" { type = object({ lat = number, "lon" = number }) }
    column "d" { type = any }
  }
}`})

	m, err := NewLoader().Load(ctx, root)
	require.NoError(t, err)
	require.Len(t, m.Units, 1)

	var types []string
	for _, c := range m.Units[0].Inputs[0].Schema {
		types = append(types, c.Type)
	}
	assert.Equal(t, []string{"map(number)", "set(bool)", "object({lat=number,lon=number})", "any"}, types)
}
