// This file translates decoded HCL blocks into model values.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/flowbricks/internal/ctxlog"
	"github.com/vk/flowbricks/internal/model"
)

func (l *Loader) translateUnit(ctx context.Context, ub *unitBlock) (model.UnitSummary, error) {
	logger := ctxlog.FromContext(ctx).With("unit", ub.ID)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Translating HCL unit to model.")

	u := model.UnitSummary{
		ID:          ub.ID,
		Name:        ub.Name,
		Version:     ub.Version,
		Category:    ub.Category,
		Domain:      ub.Domain,
		Protected:   ub.Protected,
		Tags:        ub.Tags,
		Description: ub.Description,
	}
	for _, pb := range ub.Inputs {
		p, err := translatePort(ctx, pb, true)
		if err != nil {
			return u, fmt.Errorf("unit %q, input %q: %w", ub.ID, pb.Name, err)
		}
		u.Inputs = append(u.Inputs, p)
	}
	for _, pb := range ub.Outputs {
		if isExprDefined(ctx, pb.Required, "required") {
			return u, fmt.Errorf("unit %q, output %q: outputs cannot set required", ub.ID, pb.Name)
		}
		p, err := translatePort(ctx, pb, false)
		if err != nil {
			return u, fmt.Errorf("unit %q, output %q: %w", ub.ID, pb.Name, err)
		}
		u.Outputs = append(u.Outputs, p)
	}
	return u, nil
}

// translatePort converts a port block. Inputs are required unless the block
// says otherwise.
func translatePort(ctx context.Context, pb *portBlock, input bool) (model.Port, error) {
	p := model.Port{Name: pb.Name, Kind: pb.Kind, Required: input}
	if input && isExprDefined(ctx, pb.Required, "required") {
		if diags := gohcl.DecodeExpression(pb.Required, nil, &p.Required); diags.HasErrors() {
			return p, fmt.Errorf("invalid required value: %w", diags)
		}
	}
	for _, cb := range pb.Columns {
		col := model.Column{Name: cb.Name, Nullable: cb.Nullable}
		if isExprDefined(ctx, cb.Type, "type") {
			ty, err := typeExprToCtyType(ctx, cb.Type)
			if err != nil {
				return p, fmt.Errorf("column %q: %w", cb.Name, err)
			}
			col.Type = typeexpr.TypeString(ty)
		}
		p.Schema = append(p.Schema, col)
	}
	return p, nil
}
