package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"snapcalc/internal/pipeline"
)

func evalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an arithmetic expression locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &pipeline.Solver{}
			out := s.Evaluate(context.Background(), nil, args[0])
			fmt.Println(out)
			if pipeline.IsTagged(out) {
				return fmt.Errorf("evaluation failed")
			}
			return nil
		},
	}
}
