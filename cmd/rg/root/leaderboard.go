package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ruleguard/internal/engine"
	"ruleguard/internal/storage"
	"ruleguard/internal/ui"
)

// fixturePeers is the stand-in peer roster until a sync backend exists.
// The engine only ranks; peer sourcing stays out here.
func fixturePeers() []storage.LeaderboardEntry {
	return []storage.LeaderboardEntry{
		{UserID: "peer-ava", Name: "Ava", Completions: 42, DisciplineScore: 91, Streak: 12, GrowthPct: 38.4},
		{UserID: "peer-marco", Name: "Marco", Completions: 35, DisciplineScore: 77, Streak: 5, GrowthPct: 22.1},
		{UserID: "peer-lena", Name: "Lena", Completions: 35, DisciplineScore: 84, Streak: 9, GrowthPct: 19.7},
		{UserID: "peer-kofi", Name: "Kofi", Completions: 18, DisciplineScore: 96, Streak: 21, GrowthPct: 11.3},
		{UserID: "peer-yui", Name: "Yui", Completions: 7, DisciplineScore: 62, Streak: 2, GrowthPct: 4.9},
	}
}

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "leaderboard",
		Aliases: []string{"lb"},
		Short:   "Rank yourself against peers and check the monthly reset",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, _, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			ranked, yourRank := eng.SnapshotLeaderboard(ctx, fixturePeers())
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Leaderboard"))
			self := eng.Identity().ID
			for _, entry := range ranked {
				name := entry.Name
				if entry.UserID == self {
					name = ui.Key.Render(name + " (you)")
				}
				fmt.Fprintf(out, "%s  %s  %.1f completions  %s  %s %d  %+.1f%%\n",
					ui.RankText(entry.Rank), name, entry.Completions,
					ui.Discipline(entry.DisciplineScore), ui.IconFlame, entry.Streak, entry.GrowthPct)
			}

			res, err := eng.EvaluateReset(ctx, ranked, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			if res.Transitioned {
				fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Period closed: "+res.PeriodLabel))
				if res.AwardedBadge != "" {
					fmt.Fprintln(out, ui.Gold.Render(ui.IconMedal+" new badge: "+res.AwardedBadge))
				}
				fmt.Fprintln(out, ui.Muted.Render("a fresh 30-day window has started"))
			} else {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("day %d of %d in the current period, rank %d", res.DaysSince, engine.ResetPeriodDays, yourRank)))
			}
			return nil
		},
	}
}
