package engine

import (
	"context"
	"testing"
)

func TestLedgerAndDailyMoveInLockstep(t *testing.T) {
	eng, _, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := context.Background()

	setupGoal(t, eng)
	freezeTime(eng, testDay)
	rule, err := eng.AddRule(ctx, "No trading the first 15 minutes", nil, CategoryEntry)
	if err != nil {
		t.Fatalf("AddRule: %v", err)
	}

	if _, err := eng.RecordTradeOutcome(ctx, 2.5, true); err != nil {
		t.Fatalf("trade: %v", err)
	}
	if _, err := eng.RecordViolation(ctx, rule.ID); err != nil {
		t.Fatalf("violation: %v", err)
	}

	day := eng.DailyStats(ctx)[DayKey(testDay)]
	if !approx(day.Completions, 0.5, 1e-9) {
		t.Fatalf("day completions=%v, want 0.5", day.Completions)
	}
	if day.Violations != 1 {
		t.Fatalf("day violations=%d, want 1", day.Violations)
	}

	entries := eng.ActivityLog(ctx)
	// growth (SetGoal) + completion + violation.
	if len(entries) != 3 {
		t.Fatalf("log has %d entries, want 3", len(entries))
	}
	if entries[1].Type != ActivityCompletion || !approx(entries[1].Increment, 0.5, 1e-9) {
		t.Fatalf("completion entry=%+v", entries[1])
	}
	if entries[2].Type != ActivityViolation || entries[2].RuleID != rule.ID {
		t.Fatalf("violation entry=%+v", entries[2])
	}
}

func TestLastNDaysZeroFilled(t *testing.T) {
	eng, _, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := context.Background()

	setupGoal(t, eng)
	shift := freezeTime(eng, testDay)

	if _, err := eng.RecordTradeOutcome(ctx, 5, true); err != nil {
		t.Fatalf("trade: %v", err)
	}
	shift(2)
	if _, err := eng.RecordTradeOutcome(ctx, 5, true); err != nil {
		t.Fatalf("trade: %v", err)
	}

	days := eng.LastNDays(ctx, testDay.AddDate(0, 0, 2), 3)
	if len(days) != 3 {
		t.Fatalf("got %d days, want 3", len(days))
	}
	if days[0].Completions != 1 || days[1].Completions != 0 || days[2].Completions != 1 {
		t.Fatalf("completions=%v %v %v, want 1 0 1", days[0].Completions, days[1].Completions, days[2].Completions)
	}
	if days[0].Date != DayKey(testDay) {
		t.Fatalf("oldest day=%s, want %s", days[0].Date, DayKey(testDay))
	}
}

func TestWeeklyReport(t *testing.T) {
	eng, _, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := context.Background()

	setupGoal(t, eng)
	shift := freezeTime(eng, testDay)
	rule, err := eng.AddRule(ctx, "No adding to losers", nil, CategoryRisk)
	if err != nil {
		t.Fatalf("AddRule: %v", err)
	}

	// Day 0: completion. Day 1: violation only. Days 2-6: idle.
	if _, err := eng.RecordTradeOutcome(ctx, 5, true); err != nil {
		t.Fatalf("trade: %v", err)
	}
	shift(1)
	if _, err := eng.RecordViolation(ctx, rule.ID); err != nil {
		t.Fatalf("violation: %v", err)
	}

	r := eng.WeeklyReport(ctx, testDay.AddDate(0, 0, 6))
	if r.ActiveDays != 2 {
		t.Fatalf("active days=%d, want 2", r.ActiveDays)
	}
	if r.WinDays != 1 {
		t.Fatalf("win days=%d, want 1", r.WinDays)
	}
	if r.CleanDays != 1 {
		t.Fatalf("clean days=%d, want 1", r.CleanDays)
	}
	if r.Violations != 1 {
		t.Fatalf("violations=%d, want 1", r.Violations)
	}
	if !approx(r.WinRate, 0.5, 1e-9) {
		t.Fatalf("win rate=%v, want 0.5", r.WinRate)
	}
}

func TestHeatmapDimensions(t *testing.T) {
	eng, _, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := context.Background()

	setupGoal(t, eng)
	freezeTime(eng, testDay)
	if _, err := eng.RecordTradeOutcome(ctx, 5, true); err != nil {
		t.Fatalf("trade: %v", err)
	}

	grid := eng.Heatmap(ctx, testDay, 4)
	if len(grid) != 4 {
		t.Fatalf("got %d weeks, want 4", len(grid))
	}
	for w, row := range grid {
		if len(row) != 7 {
			t.Fatalf("week %d has %d days, want 7", w, len(row))
		}
	}
	// Today is the last cell of the last row.
	if grid[3][6] != 1 {
		t.Fatalf("today's cell=%v, want 1", grid[3][6])
	}
}

func TestVerifyStreakMatchesLedger(t *testing.T) {
	eng, _, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := context.Background()

	setupGoal(t, eng)
	shift := freezeTime(eng, testDay)

	for i := 0; i < 3; i++ {
		if _, err := eng.RecordTradeOutcome(ctx, 5, true); err != nil {
			t.Fatalf("trade %d: %v", i, err)
		}
		shift(1)
	}
	// The clock is now one day past the last completion.
	now := testDay.AddDate(0, 0, 3)
	if got := eng.VerifyStreak(ctx, now); got != 3 {
		t.Fatalf("verified streak=%d, want 3", got)
	}
	if got := eng.Progress().Streak; got != 3 {
		t.Fatalf("ledger streak=%d, want 3", got)
	}
}
