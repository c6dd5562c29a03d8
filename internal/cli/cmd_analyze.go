package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vk/flowbricks/internal/snapshot"
)

func newAnalyzeCmd(s *session) *cobra.Command {
	var (
		regions []string
		strict  bool
	)
	cmd := &cobra.Command{
		Use:   "analyze <snapshot>",
		Short: "Classify the candidate regions of a graph snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := s.app.Context(cmd.Context())
			snap, err := snapshot.Load(ctx, args[0])
			if err != nil {
				return err
			}
			results, err := s.app.AnalyzeRegions(ctx, snap, regions...)
			if err != nil {
				return err
			}
			if err := writeYAML(s.outW, results); err != nil {
				return err
			}

			invalid := 0
			for _, r := range results {
				if !r.IsValid {
					invalid++
				}
			}
			if strict && invalid > 0 {
				return &ExitError{Code: ExitIncomplete, Message: fmt.Sprintf("%d of %d regions are not valid units", invalid, len(results))}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&regions, "region", nil, "Only analyze the named regions (repeatable).")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with code 4 when any region is invalid.")
	return cmd
}
