package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ruleguard/internal/engine"
	"ruleguard/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show progress, discipline, streak and badges",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, _, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			s := eng.Settings()
			p := eng.Progress()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconChart, eng.Identity().Name))
			fmt.Fprintln(out, ui.LabelValue("Progress", ui.ProgressBar(p.Completions, s.TargetCompletions, 24)))
			fmt.Fprintln(out, ui.LabelValue("Balance", fmt.Sprintf("%.2f (%+.2f%%)", p.CurrentBalance, engine.GrowthPercent(p.CurrentBalance, s.StartingValue))))
			fmt.Fprintln(out, ui.LabelValue("Discipline", ui.Discipline(p.DisciplineScore)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d days", ui.IconFlame, p.Streak)))
			if p.Completions >= float64(s.TargetCompletions) {
				fmt.Fprintln(out, ui.BadgeGoal)
			}

			earned := eng.CountEarnedBadges(ctx)
			total := len(eng.Badges(ctx))
			fmt.Fprintln(out, ui.LabelValue("Badges", fmt.Sprintf("%s %d/%d", ui.IconMedal, earned, total)))

			if verified := eng.VerifyStreak(ctx, time.Now()); verified != p.Streak {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("daily log shows a %d-day streak", verified)))
			}
			return nil
		},
	}
}
