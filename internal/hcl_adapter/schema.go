package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block a manifest file may contain.
// Anything else is a decode error.
type fileRoot struct {
	Units []*unitBlock `hcl:"unit,block"`
	Wires []*wireBlock `hcl:"wire,block"`
}

// unitBlock is a `unit "<id>" { ... }` block describing one cataloged unit.
type unitBlock struct {
	ID          string       `hcl:"id,label"`
	Name        string       `hcl:"name,optional"`
	Version     string       `hcl:"version"`
	Category    string       `hcl:"category,optional"`
	Domain      string       `hcl:"domain,optional"`
	Protected   bool         `hcl:"protected,optional"`
	Tags        []string     `hcl:"tags,optional"`
	Description string       `hcl:"description,optional"`
	Inputs      []*portBlock `hcl:"input,block"`
	Outputs     []*portBlock `hcl:"output,block"`
}

// portBlock is an `input "<name>"` or `output "<name>"` block. Required is
// kept as an expression so an omitted attribute can default to true.
type portBlock struct {
	Name     string         `hcl:"name,label"`
	Kind     string         `hcl:"kind"`
	Required hcl.Expression `hcl:"required,optional"`
	Columns  []*columnBlock `hcl:"column,block"`
}

type columnBlock struct {
	Name     string         `hcl:"name,label"`
	Type     hcl.Expression `hcl:"type,optional"`
	Nullable bool           `hcl:"nullable,optional"`
}

// wireBlock is a `wire { from = "unit.port" to = "unit.port" }` hint.
type wireBlock struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}
