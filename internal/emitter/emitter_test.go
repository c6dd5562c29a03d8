package emitter

import (
	"bytes"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowbricks/internal/model"
	"github.com/vk/flowbricks/internal/testutil"
	"gopkg.in/yaml.v3"
)

func fixture() (*model.ResolvedPlan, []model.UnitSummary) {
	units := []model.UnitSummary{
		testutil.Unit("prep", nil, testutil.Ports(testutil.Out("rows", "data"))),
		testutil.Unit("train", testutil.Ports(
			testutil.In("rows", "data"),
			testutil.In("config", "folder"),
			model.Port{Name: "notes", Kind: "text"},
		), testutil.Ports(testutil.Out("model", "model"))),
	}
	plan := &model.ResolvedPlan{
		ExecutionOrder: []string{"prep", "train"},
		Stages:         [][]string{{"prep"}, {"train"}},
		Wiring: []model.Wire{
			{SourceUnit: "prep", SourcePort: "rows", TargetUnit: "train", TargetPort: "rows", Channel: "prep_rows"},
		},
	}
	return plan, units
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("toml")
	assert.ErrorContains(t, err, `unknown output format "toml"`)
}

func TestEmit_Report(t *testing.T) {
	plan, units := fixture()
	var buf bytes.Buffer

	report, err := Emit(&buf, FormatYAML, plan, units)
	require.NoError(t, err)

	assert.Equal(t, []UnwiredInput{
		{Unit: "train", Port: "config", Required: true},
		{Unit: "train", Port: "notes", Required: false},
	}, report.Unwired)
	assert.Equal(t, 1, report.MissingRequired())
}

func TestEmit_YAML(t *testing.T) {
	plan, units := fixture()
	var buf bytes.Buffer

	_, err := Emit(&buf, FormatYAML, plan, units)
	require.NoError(t, err)

	var doc yamlDocument
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, plan.ExecutionOrder, doc.ExecutionOrder)
	assert.Equal(t, plan.Stages, doc.Stages)
	require.Len(t, doc.Steps, 2)
	assert.Equal(t, step{
		Unit:    "train",
		Version: "1.0.0",
		Stage:   1,
		Inputs: map[string]string{
			"rows":   "prep_rows",
			"config": "<unwired:train.config>",
			"notes":  "<unwired:train.notes>",
		},
		Outputs: map[string]string{"model": "train_model"},
	}, doc.Steps[1])
	assert.Nil(t, doc.Steps[0].Inputs)
}

func TestEmit_HCL(t *testing.T) {
	plan, units := fixture()
	var buf bytes.Buffer

	_, err := Emit(&buf, FormatHCL, plan, units)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `step "train" {`)

	file, diags := hclsyntax.ParseConfig(buf.Bytes(), "plan.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())

	var decoded struct {
		ExecutionOrder []string `hcl:"execution_order"`
		Steps          []struct {
			Unit    string            `hcl:"unit,label"`
			Version string            `hcl:"version"`
			Stage   int               `hcl:"stage"`
			Inputs  map[string]string `hcl:"inputs,optional"`
			Outputs map[string]string `hcl:"outputs,optional"`
		} `hcl:"step,block"`
	}
	diags = gohcl.DecodeBody(file.Body, nil, &decoded)
	require.False(t, diags.HasErrors(), diags.Error())

	assert.Equal(t, []string{"prep", "train"}, decoded.ExecutionOrder)
	require.Len(t, decoded.Steps, 2)
	assert.Equal(t, "prep", decoded.Steps[0].Unit)
	assert.Equal(t, map[string]string{"rows": "prep_rows"}, decoded.Steps[0].Outputs)
	assert.Equal(t, 1, decoded.Steps[1].Stage)
	assert.Equal(t, "<unwired:train.config>", decoded.Steps[1].Inputs["config"])
	assert.Equal(t, "prep_rows", decoded.Steps[1].Inputs["rows"])
}

func TestEmit_HCLIsDeterministic(t *testing.T) {
	plan, units := fixture()
	var a, b bytes.Buffer
	_, err := Emit(&a, FormatHCL, plan, units)
	require.NoError(t, err)
	_, err = Emit(&b, FormatHCL, plan, units)
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
}

func TestEmit_Errors(t *testing.T) {
	plan, units := fixture()
	var buf bytes.Buffer

	_, err := Emit(&buf, FormatHCL, plan, units[:1])
	assert.ErrorContains(t, err, `plan references unit "train"`)

	_, err = Emit(&buf, Format("xml"), plan, units)
	assert.ErrorContains(t, err, "unknown output format")
}
