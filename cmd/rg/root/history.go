package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ruleguard/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show archived leaderboard periods",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, _, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			records := eng.History(ctx)
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("no completed periods yet"))
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Past periods"))
			for _, rec := range records {
				fmt.Fprintln(out, ui.H2.Render(rec.PeriodLabel))
				for _, entry := range rec.Top3 {
					fmt.Fprintf(out, "  %s  %s  %.1f completions\n", ui.RankText(entry.Rank), entry.Name, entry.Completions)
				}
				if rec.YourRank > 0 {
					fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("  you finished #%d", rec.YourRank)))
				}
			}
			return nil
		},
	}
}
