package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ruleguard/internal/ui"
)

func newTradeCmd() *cobra.Command {
	var brokeRules bool

	cmd := &cobra.Command{
		Use:   "trade <gain%>",
		Short: "Log a trade outcome",
		Long:  "Log a trade's gain as a percentage. Only compliant trades with a positive gain count toward the goal.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("gain percentage is required")
			}
			if _, err := strconv.ParseFloat(args[0], 64); err != nil {
				return errors.New("gain must be a number")
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

			gain, _ := strconv.ParseFloat(args[0], 64)
			res, err := eng.RecordTradeOutcome(ctx, gain, !brokeRules)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !res.Qualified {
				fmt.Fprintln(out, ui.Muted.Render("Logged, but this trade doesn't count toward the goal (needs a compliant, positive gain)."))
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.IconChart, fmt.Sprintf("+%.2f completions", res.Increment)))
			fmt.Fprintln(out, ui.LabelValue("Progress", fmt.Sprintf("%.2f / %d", res.Completions, eng.Settings().TargetCompletions)))
			fmt.Fprintln(out, ui.LabelValue("Balance", fmt.Sprintf("%.2f", res.Balance)))
			if res.DisciplineAfter > res.DisciplineBefore {
				fmt.Fprintln(out, ui.LabelValue("Discipline", fmt.Sprintf("%s (+%d)", ui.Discipline(res.DisciplineAfter), res.DisciplineAfter-res.DisciplineBefore)))
			}
			if res.StreakExtended {
				fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d", ui.IconFlame, res.Streak)))
			}
			if res.GoalReached {
				fmt.Fprintln(out, ui.BadgeGoal+" "+ui.Muted.Render("Start the next goal with: rg goal"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&brokeRules, "broke-rules", false, "the trade broke one of your rules")
	return cmd
}
