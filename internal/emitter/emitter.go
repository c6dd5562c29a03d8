// Package emitter renders a resolved plan as a declarative pipeline file.
//
// Every input port the resolver could not wire is written with a
// placeholder value and listed in the returned Report, so the person editing
// the file can see what is still missing.
package emitter

import (
	"fmt"
	"io"
	"strings"

	"github.com/vk/flowbricks/internal/model"
)

// Format selects the output syntax.
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatHCL, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q: must be %q or %q", s, FormatHCL, FormatYAML)
	}
}

// UnwiredInput is an input port with no producer in the plan.
type UnwiredInput struct {
	Unit     string `yaml:"unit" json:"unit"`
	Port     string `yaml:"port" json:"port"`
	Required bool   `yaml:"required" json:"required"`
}

// Report summarizes what an emitted file still needs from its author.
type Report struct {
	Unwired []UnwiredInput `yaml:"unwired" json:"unwired"`
}

// MissingRequired counts unwired inputs that are required.
func (r Report) MissingRequired() int {
	n := 0
	for _, u := range r.Unwired {
		if u.Required {
			n++
		}
	}
	return n
}

// Placeholder is the value written for an unwired input.
func Placeholder(unit, port string) string {
	return "<unwired:" + unit + "." + port + ">"
}

// step is the format-independent view of one unit in the pipeline.
type step struct {
	Unit    string            `yaml:"unit"`
	Version string            `yaml:"version"`
	Stage   int               `yaml:"stage"`
	Inputs  map[string]string `yaml:"inputs,omitempty"`
	Outputs map[string]string `yaml:"outputs,omitempty"`
}

// Emit writes plan in the given format. units must contain every unit the
// plan references.
func Emit(w io.Writer, format Format, plan *model.ResolvedPlan, units []model.UnitSummary) (Report, error) {
	steps, report, err := buildSteps(plan, units)
	if err != nil {
		return Report{}, err
	}

	switch format {
	case FormatHCL:
		err = writeHCL(w, plan, steps)
	case FormatYAML:
		err = writeYAML(w, plan, steps)
	default:
		err = fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return Report{}, err
	}
	return report, nil
}

func buildSteps(plan *model.ResolvedPlan, units []model.UnitSummary) ([]step, Report, error) {
	byID := make(map[string]*model.UnitSummary, len(units))
	for i := range units {
		byID[units[i].ID] = &units[i]
	}

	report := Report{Unwired: []UnwiredInput{}}
	var steps []step
	for stage, ids := range plan.Stages {
		for _, id := range ids {
			u, ok := byID[id]
			if !ok {
				return nil, Report{}, fmt.Errorf("plan references unit %q which was not provided", id)
			}
			s := step{Unit: id, Version: u.Version, Stage: stage}
			if len(u.Inputs) > 0 {
				s.Inputs = make(map[string]string, len(u.Inputs))
			}
			for _, in := range u.Inputs {
				if wire, ok := plan.WireFor(id, in.Name); ok {
					s.Inputs[in.Name] = wire.Channel
					continue
				}
				s.Inputs[in.Name] = Placeholder(id, in.Name)
				report.Unwired = append(report.Unwired, UnwiredInput{Unit: id, Port: in.Name, Required: in.Required})
			}
			if len(u.Outputs) > 0 {
				s.Outputs = make(map[string]string, len(u.Outputs))
			}
			for _, out := range u.Outputs {
				s.Outputs[out.Name] = model.ChannelName(id, out.Name)
			}
			steps = append(steps, s)
		}
	}
	return steps, report, nil
}
