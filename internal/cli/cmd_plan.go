package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/flowbricks/internal/emitter"
	"github.com/vk/flowbricks/internal/hcl_adapter"
	"github.com/vk/flowbricks/internal/model"
)

func newPlanCmd(s *session) *cobra.Command {
	var (
		wires     []string
		hintFiles []string
		format    string
		outPath   string
		strict    bool
	)
	cmd := &cobra.Command{
		Use:   "plan <unit_id>...",
		Short: "Resolve cataloged units into an ordered, wired pipeline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := s.app.Context(cmd.Context())

			outFormat, err := emitter.ParseFormat(format)
			if err != nil {
				return usageError(err)
			}
			hints, err := parseWireFlags(wires)
			if err != nil {
				return usageError(err)
			}
			if len(hintFiles) > 0 {
				m, err := hcl_adapter.NewLoader().Load(ctx, hintFiles...)
				if err != nil {
					return err
				}
				hints = append(hints, m.Hints...)
			}

			plan, units, err := s.app.Plan(ctx, args, hints)
			if err != nil {
				return err
			}

			w := s.outW
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				w = f
			}
			report, err := s.app.Emit(w, outFormat, plan, units)
			if err != nil {
				return err
			}

			if missing := report.MissingRequired(); missing > 0 {
				fmt.Fprintf(s.errW, "%d required input(s) left unwired; look for %q placeholders.\n", missing, "<unwired:")
				if strict {
					return &ExitError{Code: ExitIncomplete, Message: "plan has unwired required inputs"}
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&wires, "wire", nil, "Explicit wiring as from_unit.port=to_unit.port (repeatable).")
	f.StringSliceVar(&hintFiles, "hints", nil, "HCL files or directories with wire blocks.")
	f.StringVar(&format, "format", "hcl", "Output format. Options: 'hcl' or 'yaml'.")
	f.StringVarP(&outPath, "out", "o", "", "Write the plan to this file instead of stdout.")
	f.BoolVar(&strict, "strict", false, "Exit with code 4 when a required input is left unwired.")
	return cmd
}

func parseWireFlags(args []string) ([]model.WireHint, error) {
	hints := make([]model.WireHint, 0, len(args))
	for _, arg := range args {
		from, to, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --wire %q: expected from_unit.port=to_unit.port", arg)
		}
		h, err := model.ParseWireHint(strings.TrimSpace(from), strings.TrimSpace(to))
		if err != nil {
			return nil, fmt.Errorf("invalid --wire %q: %w", arg, err)
		}
		hints = append(hints, h)
	}
	return hints, nil
}
