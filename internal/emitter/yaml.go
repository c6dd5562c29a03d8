package emitter

import (
	"fmt"
	"io"

	"github.com/vk/flowbricks/internal/model"
	"gopkg.in/yaml.v3"
)

type yamlDocument struct {
	ExecutionOrder []string   `yaml:"execution_order"`
	Stages         [][]string `yaml:"stages"`
	Steps          []step     `yaml:"steps"`
}

func writeYAML(w io.Writer, plan *model.ResolvedPlan, steps []step) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	doc := yamlDocument{ExecutionOrder: plan.ExecutionOrder, Stages: plan.Stages, Steps: steps}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing YAML plan: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("writing YAML plan: %w", err)
	}
	return nil
}
