package engine

import "context"

// Badge is a milestone or champion badge with its earned status. Derived
// badges are recomputed from current state on every call and never
// stored; only champion badges live in the user_achievements key.
type Badge struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// Badges returns all badges with their earned status.
func (e *Engine) Badges(ctx context.Context) []Badge {
	logged := 0.0
	for _, day := range e.DailyStats(ctx) {
		logged += day.Completions
	}
	held := map[string]bool{}
	for _, id := range e.Achievements(ctx) {
		held[id] = true
	}

	return []Badge{
		// Progress milestones
		{ID: "first_completion", Name: "First Win", Description: "Log your first completion", Icon: "🌱", Earned: logged >= 1},
		{ID: "ten_completions", Name: "Consistent", Description: "Log 10 completions", Icon: "📈", Earned: logged >= 10},
		{ID: "fifty_completions", Name: "Grinder", Description: "Log 50 completions", Icon: "💎", Earned: logged >= 50},
		{ID: "goal_reached", Name: "Goal Crusher", Description: "Reach your completion target", Icon: "🏁", Earned: e.progress.Completions >= float64(e.settings.TargetCompletions)},

		// Streaks
		{ID: "streak_week", Name: "On Fire", Description: "7-day streak", Icon: "🔥", Earned: e.progress.Streak >= 7},
		{ID: "streak_month", Name: "Unstoppable", Description: "30-day streak", Icon: "⚡", Earned: e.progress.Streak >= 30},

		// Discipline
		{ID: "iron_discipline", Name: "Iron Discipline", Description: "Discipline score at 100", Icon: "🛡️", Earned: e.progress.DisciplineScore >= 100},

		// Champion badges from past leaderboard periods
		{ID: BadgeGoldChampion, Name: "Gold Champion", Description: "Finish a period ranked #1", Icon: "🥇", Earned: held[BadgeGoldChampion]},
		{ID: BadgeSilverChampion, Name: "Silver Champion", Description: "Finish a period ranked #2", Icon: "🥈", Earned: held[BadgeSilverChampion]},
		{ID: BadgeBronzeChampion, Name: "Bronze Champion", Description: "Finish a period ranked #3", Icon: "🥉", Earned: held[BadgeBronzeChampion]},
	}
}

// CountEarnedBadges returns how many badges have been earned.
func (e *Engine) CountEarnedBadges(ctx context.Context) int {
	count := 0
	for _, b := range e.Badges(ctx) {
		if b.Earned {
			count++
		}
	}
	return count
}
