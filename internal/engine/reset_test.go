package engine

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ruleguard/internal/storage"
)

func seedLastReset(t *testing.T, st storage.Store, at time.Time) {
	t.Helper()
	data, err := json.Marshal(at)
	if err != nil {
		t.Fatalf("marshal last reset: %v", err)
	}
	if err := st.Set(context.Background(), storage.KeyLastReset, data); err != nil {
		t.Fatalf("seed last reset: %v", err)
	}
}

func rankedWithSelfAt(rank int) []storage.LeaderboardEntry {
	entries := make([]storage.LeaderboardEntry, 5)
	for i := range entries {
		entries[i] = storage.LeaderboardEntry{
			UserID: "peer",
			Name:   "Peer",
			Rank:   i + 1,
		}
	}
	entries[rank-1].UserID = "local"
	entries[rank-1].Name = "Tester"
	return entries
}

func TestFirstEvaluationStartsWindow(t *testing.T) {
	eng, st, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := context.Background()

	res, err := eng.EvaluateReset(ctx, rankedWithSelfAt(1), testDay)
	if err != nil {
		t.Fatalf("EvaluateReset: %v", err)
	}
	if res.Transitioned {
		t.Fatalf("first evaluation must not transition")
	}
	if _, ok, _ := st.Get(ctx, storage.KeyLastReset); !ok {
		t.Fatalf("window start not persisted")
	}
	if len(eng.History(ctx)) != 0 {
		t.Fatalf("history written on first evaluation")
	}
}

func TestActiveWindowHasNoSideEffects(t *testing.T) {
	eng, st, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := context.Background()

	seedLastReset(t, st, testDay.AddDate(0, 0, -10))
	for i := 0; i < 2; i++ {
		res, err := eng.EvaluateReset(ctx, rankedWithSelfAt(1), testDay)
		if err != nil {
			t.Fatalf("EvaluateReset %d: %v", i, err)
		}
		if res.Transitioned {
			t.Fatalf("transitioned at day %d", res.DaysSince)
		}
		if res.DaysSince != 10 {
			t.Fatalf("daysSince=%d, want 10", res.DaysSince)
		}
	}
	if got := len(eng.History(ctx)); got != 0 {
		t.Fatalf("history has %d records, want 0", got)
	}
	if got := len(eng.Achievements(ctx)); got != 0 {
		t.Fatalf("achievements=%d, want 0", got)
	}
}

func TestResetTransitionAwardsBadgeOnce(t *testing.T) {
	eng, st, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := context.Background()

	seedLastReset(t, st, testDay.AddDate(0, 0, -31))
	res, err := eng.EvaluateReset(ctx, rankedWithSelfAt(1), testDay)
	if err != nil {
		t.Fatalf("EvaluateReset: %v", err)
	}
	if !res.Transitioned {
		t.Fatalf("expected transition at 31 days")
	}
	if res.AwardedBadge != BadgeGoldChampion {
		t.Fatalf("awarded=%q, want %q", res.AwardedBadge, BadgeGoldChampion)
	}
	if res.YourRank != 1 {
		t.Fatalf("yourRank=%d, want 1", res.YourRank)
	}
	if len(res.Top3) != 3 {
		t.Fatalf("top3 size=%d, want 3", len(res.Top3))
	}

	history := eng.History(ctx)
	if len(history) != 1 {
		t.Fatalf("history has %d records, want 1", len(history))
	}
	if history[0].YourRank != 1 || len(history[0].Top3) != 3 {
		t.Fatalf("history record=%+v", history[0])
	}

	// The window restarted: next evaluation is ACTIVE again.
	res, err = eng.EvaluateReset(ctx, rankedWithSelfAt(1), testDay)
	if err != nil {
		t.Fatalf("EvaluateReset after transition: %v", err)
	}
	if res.Transitioned {
		t.Fatalf("second evaluation must not transition")
	}
	if got := len(eng.History(ctx)); got != 1 {
		t.Fatalf("history grew to %d", got)
	}
}

func TestResetNeverBackfillsMissedWindows(t *testing.T) {
	eng, st, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := context.Background()

	// Three full windows missed: still exactly one transition.
	seedLastReset(t, st, testDay.AddDate(0, 0, -95))
	res, err := eng.EvaluateReset(ctx, rankedWithSelfAt(4), testDay)
	if err != nil {
		t.Fatalf("EvaluateReset: %v", err)
	}
	if !res.Transitioned {
		t.Fatalf("expected transition")
	}
	if res.AwardedBadge != "" {
		t.Fatalf("rank 4 must not earn a badge, got %q", res.AwardedBadge)
	}
	if got := len(eng.History(ctx)); got != 1 {
		t.Fatalf("history has %d records, want 1", got)
	}
}

func TestResetBadgeNotDuplicated(t *testing.T) {
	eng, st, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := context.Background()

	seedLastReset(t, st, testDay.AddDate(0, 0, -31))
	if _, err := eng.EvaluateReset(ctx, rankedWithSelfAt(2), testDay); err != nil {
		t.Fatalf("first transition: %v", err)
	}

	seedLastReset(t, st, testDay.AddDate(0, 0, -31))
	res, err := eng.EvaluateReset(ctx, rankedWithSelfAt(2), testDay)
	if err != nil {
		t.Fatalf("second transition: %v", err)
	}
	if res.AwardedBadge != "" {
		t.Fatalf("silver badge awarded twice")
	}
	if got := eng.Achievements(ctx); len(got) != 1 || got[0] != BadgeSilverChampion {
		t.Fatalf("achievements=%v, want [%s]", got, BadgeSilverChampion)
	}
}

func TestResetClockSkewIsDayZero(t *testing.T) {
	eng, st, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := context.Background()

	seedLastReset(t, st, testDay.AddDate(0, 0, 5))
	res, err := eng.EvaluateReset(ctx, rankedWithSelfAt(1), testDay)
	if err != nil {
		t.Fatalf("EvaluateReset: %v", err)
	}
	if res.DaysSince != 0 || res.Transitioned {
		t.Fatalf("res=%+v, want daysSince 0 and no transition", res)
	}
}

func TestSnapshotLeaderboardCaches(t *testing.T) {
	eng, st, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := context.Background()

	setupGoal(t, eng)
	freezeTime(eng, testDay)
	if _, err := eng.RecordTradeOutcome(ctx, 10, true); err != nil {
		t.Fatalf("trade: %v", err)
	}

	peers := []storage.LeaderboardEntry{
		{UserID: "p1", Name: "Ada", Completions: 40, DisciplineScore: 99, Streak: 20, GrowthPct: 55},
		{UserID: "p2", Name: "Ben", Completions: 1, DisciplineScore: 10, Streak: 0, GrowthPct: 0.5},
	}
	ranked, yourRank := eng.SnapshotLeaderboard(ctx, peers)
	if len(ranked) != 3 {
		t.Fatalf("ranked size=%d, want 3", len(ranked))
	}
	if yourRank != 2 {
		t.Fatalf("yourRank=%d, want 2", yourRank)
	}

	cached := eng.CachedLeaderboard(ctx)
	if len(cached) != 3 || cached[0].UserID != "p1" {
		t.Fatalf("cache=%+v", cached)
	}
	data, ok, err := st.Get(ctx, storage.KeyCurrentRank)
	if err != nil || !ok {
		t.Fatalf("current rank not cached: ok=%v err=%v", ok, err)
	}
	var persisted int
	if err := json.Unmarshal(data, &persisted); err != nil || persisted != 2 {
		t.Fatalf("persisted rank=%d err=%v, want 2", persisted, err)
	}
}
