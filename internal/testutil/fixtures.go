package testutil

import "github.com/vk/flowbricks/internal/model"

// In builds a required input port.
func In(name, kind string, cols ...model.Column) model.Port {
	return model.Port{Name: name, Kind: kind, Required: true, Schema: cols}
}

// Out builds an output port.
func Out(name, kind string, cols ...model.Column) model.Port {
	return model.Port{Name: name, Kind: kind, Schema: cols}
}

// Col builds a non-nullable string column.
func Col(name string) model.Column {
	return model.Column{Name: name, Type: "string"}
}

// Unit builds a minimal unit summary at version 1.0.0.
func Unit(id string, inputs []model.Port, outputs []model.Port) model.UnitSummary {
	return model.UnitSummary{ID: id, Version: "1.0.0", Inputs: inputs, Outputs: outputs}
}

// Ports is shorthand for a port slice literal.
func Ports(ps ...model.Port) []model.Port { return ps }
