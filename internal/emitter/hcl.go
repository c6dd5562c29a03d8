package emitter

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/flowbricks/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// writeHCL renders one `step "<unit>"` block per unit, preceded by the
// execution order.
func writeHCL(w io.Writer, plan *model.ResolvedPlan, steps []step) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	body.SetAttributeValue("execution_order", stringList(plan.ExecutionOrder))

	for _, s := range steps {
		body.AppendNewline()
		block := body.AppendNewBlock("step", []string{s.Unit})
		b := block.Body()
		b.SetAttributeValue("version", cty.StringVal(s.Version))
		b.SetAttributeValue("stage", cty.NumberIntVal(int64(s.Stage)))
		if len(s.Inputs) > 0 {
			b.SetAttributeValue("inputs", stringMap(s.Inputs))
		}
		if len(s.Outputs) > 0 {
			b.SetAttributeValue("outputs", stringMap(s.Outputs))
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing HCL plan: %w", err)
	}
	return nil
}

func stringList(ss []string) cty.Value {
	if len(ss) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(ss))
	for i, s := range ss {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}

func stringMap(m map[string]string) cty.Value {
	vals := make(map[string]cty.Value, len(m))
	for k, v := range m {
		vals[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(vals)
}
