package root

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ruleguard/internal/ui"
)

// heatCell buckets a day's completion total into a display glyph.
func heatCell(completions float64) string {
	switch {
	case completions <= 0:
		return ui.Muted.Render("·")
	case completions < 0.5:
		return ui.Warn.Render("▪")
	case completions < 1:
		return ui.Good.Render("▪")
	default:
		return ui.Good.Render("█")
	}
}

func newReportCmd() *cobra.Command {
	var weeks int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Weekly summary and completion heatmap",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, _, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			now := time.Now()
			r := eng.WeeklyReport(ctx, now)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Last 7 days"))
			fmt.Fprintln(out, ui.LabelValue("Completions", fmt.Sprintf("%.2f", r.Completions)))
			fmt.Fprintln(out, ui.LabelValue("Violations", r.Violations))
			fmt.Fprintln(out, ui.LabelValue("Active days", fmt.Sprintf("%d (%d clean)", r.ActiveDays, r.CleanDays)))
			if r.ActiveDays > 0 {
				fmt.Fprintln(out, ui.LabelValue("Win rate", fmt.Sprintf("%.0f%%", r.WinRate*100)))
			}

			if weeks > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("Heatmap (%d weeks)", weeks)))
				for _, row := range eng.Heatmap(ctx, now, weeks) {
					var b strings.Builder
					for _, c := range row {
						b.WriteString(heatCell(c))
						b.WriteString(" ")
					}
					fmt.Fprintln(out, b.String())
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&weeks, "weeks", 4, "heatmap depth in weeks, 0 to hide")
	return cmd
}
