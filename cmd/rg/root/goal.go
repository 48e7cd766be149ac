package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ruleguard/internal/engine"
	"ruleguard/internal/ui"
)

func newGoalCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "goal <target> <growth%> <baseline>",
		Short: "Start a fresh goal",
		Long:  "Reset completions to zero and restart the balance from a new baseline. Discipline and streak carry over.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				return errors.New("target, growth%% and baseline are required")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("target must be an integer")
			}
			for _, a := range args[1:] {
				if _, err := strconv.ParseFloat(a, 64); err != nil {
					return errors.New("growth and baseline must be numbers")
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, _, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			target, _ := strconv.Atoi(args[0])
			growth, _ := strconv.ParseFloat(args[1], 64)
			baseline, _ := strconv.ParseFloat(args[2], 64)

			if err := eng.SetGoal(ctx, target, growth, baseline); err != nil {
				return err
			}
			if kind != "" {
				if err := eng.SetProgressObjectKind(ctx, engine.ParseKind(kind)); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "New goal set"))
			fmt.Fprintln(out, ui.LabelValue("Target", fmt.Sprintf("%d completions", target)))
			fmt.Fprintln(out, ui.LabelValue("Growth", fmt.Sprintf("%.2f%% per completion", growth)))
			fmt.Fprintln(out, ui.LabelValue("Baseline", fmt.Sprintf("%.2f", baseline)))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "progress skin: account, garden, tower")
	return cmd
}
