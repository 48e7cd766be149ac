package engine

import (
	"context"
	"math"
	"strings"
	"time"

	"ruleguard/internal/storage"
)

// TradeResult reports the full effect of one trade outcome.
type TradeResult struct {
	// Qualified is false when the trade did not count (non-compliant or
	// non-positive gain); everything else is then an unchanged snapshot.
	Qualified        bool
	Increment        float64
	Completions      float64
	Balance          float64
	DisciplineBefore int
	DisciplineAfter  int
	Streak           int
	StreakExtended   bool
	GoalReached      bool
}

// ViolationResult reports the effect of recording a rule violation.
type ViolationResult struct {
	RuleID     string
	Violations int
	Discipline int
}

// ComplianceResult reports the effect of marking a rule back in
// compliance.
type ComplianceResult struct {
	RuleID     string
	Violations int
	Discipline int
}

// RecordTradeOutcome applies one trade to the progress meter. Only a
// compliant trade with a positive gain counts; anything else is a
// reported no-op. The gain converts to fractional completions at the
// configured growth rate, the balance compounds by the same fraction,
// discipline rises on whole-completion crossings and the streak extends
// at most once per calendar day.
func (e *Engine) RecordTradeOutcome(ctx context.Context, gainPercent float64, compliant bool) (*TradeResult, error) {
	if math.IsNaN(gainPercent) || math.IsInf(gainPercent, 0) {
		return nil, ValidationError{Field: "gainPercent", Reason: "not a finite number"}
	}
	if e.settings.GrowthPerCompletion <= 0 {
		return nil, ValidationError{Field: "growthPerCompletion", Reason: "must be positive"}
	}

	if !compliant || gainPercent <= 0 {
		return &TradeResult{
			Qualified:        false,
			Completions:      e.progress.Completions,
			Balance:          e.progress.CurrentBalance,
			DisciplineBefore: e.progress.DisciplineScore,
			DisciplineAfter:  e.progress.DisciplineScore,
			Streak:           e.progress.Streak,
		}, nil
	}

	now := e.now().UTC()
	inc := CompletionIncrement(gainPercent, e.settings.GrowthPerCompletion)
	oldC := e.progress.Completions
	newC := math.Min(oldC+inc, float64(e.settings.TargetCompletions))

	before := e.progress.DisciplineScore
	e.progress.Completions = newC
	e.progress.CurrentBalance *= CompoundFactor(e.settings.GrowthPerCompletion, inc)
	if crossed := WholeCompletionsCrossed(oldC, newC); crossed > 0 {
		e.progress.DisciplineScore = clampScore(before + crossed)
	}
	extended := e.extendStreak(now)

	// Ledger, daily stat and activity log move as one logical
	// transaction: all effects are computed before any is persisted.
	e.persistProgress(ctx)
	e.addDaily(ctx, now, inc, 0)
	e.appendActivity(ctx, storage.ActivityEntry{
		TS:          now,
		Type:        ActivityCompletion,
		Increment:   inc,
		GainPercent: gainPercent,
	})

	return &TradeResult{
		Qualified:        true,
		Increment:        inc,
		Completions:      e.progress.Completions,
		Balance:          e.progress.CurrentBalance,
		DisciplineBefore: before,
		DisciplineAfter:  e.progress.DisciplineScore,
		Streak:           e.progress.Streak,
		StreakExtended:   extended,
		GoalReached:      e.progress.Completions >= float64(e.settings.TargetCompletions),
	}, nil
}

// extendStreak bumps the streak at most once per calendar day: repeat
// qualifying events on the same day are no-ops, a consecutive day extends
// the run, a gap restarts it at 1.
func (e *Engine) extendStreak(now time.Time) bool {
	today := DayKey(now)
	switch e.progress.LastStreakDate {
	case today:
		return false
	case DayKey(now.AddDate(0, 0, -1)):
		e.progress.Streak++
	default:
		e.progress.Streak = 1
	}
	e.progress.LastStreakDate = today
	return true
}

// RecordViolation charges a broken rule: its violation counter rises,
// discipline drops (floor 0) and the event lands in today's stats and the
// activity log.
func (e *Engine) RecordViolation(ctx context.Context, ruleID string) (*ViolationResult, error) {
	r := e.findRule(ruleID)
	if r == nil {
		return nil, NotFoundError{Kind: "rule", ID: ruleID}
	}

	now := e.now().UTC()
	r.Violations++
	ts := now
	r.LastViolation = &ts
	e.progress.DisciplineScore = clampScore(e.progress.DisciplineScore - 1)

	e.persistRules(ctx)
	e.persistProgress(ctx)
	e.addDaily(ctx, now, 0, 1)
	e.appendActivity(ctx, storage.ActivityEntry{TS: now, Type: ActivityViolation, RuleID: r.ID})

	return &ViolationResult{RuleID: r.ID, Violations: r.Violations, Discipline: e.progress.DisciplineScore}, nil
}

// MarkCompliance walks back one violation: the counter drops (floor 0,
// clearing the last-violation timestamp only at 0) and discipline
// recovers (ceiling 100). Idempotent at both floors.
func (e *Engine) MarkCompliance(ctx context.Context, ruleID string) (*ComplianceResult, error) {
	r := e.findRule(ruleID)
	if r == nil {
		return nil, NotFoundError{Kind: "rule", ID: ruleID}
	}

	if r.Violations > 0 {
		r.Violations--
	}
	if r.Violations == 0 {
		r.LastViolation = nil
	}
	e.progress.DisciplineScore = clampScore(e.progress.DisciplineScore + 1)

	e.persistRules(ctx)
	e.persistProgress(ctx)

	return &ComplianceResult{RuleID: r.ID, Violations: r.Violations, Discipline: e.progress.DisciplineScore}, nil
}

// SetGoal starts a fresh goal at goal completion: completions reset to
// zero and the balance restarts from the new baseline, while discipline
// and streak carry over.
func (e *Engine) SetGoal(ctx context.Context, targetCompletions int, growthPerCompletion, newBaseline float64) error {
	if targetCompletions < 1 {
		return ValidationError{Field: "targetCompletions", Reason: "must be at least 1"}
	}
	if growthPerCompletion <= 0 || math.IsNaN(growthPerCompletion) || math.IsInf(growthPerCompletion, 0) {
		return ValidationError{Field: "growthPerCompletion", Reason: "must be positive"}
	}
	if newBaseline <= 0 || math.IsNaN(newBaseline) || math.IsInf(newBaseline, 0) {
		return ValidationError{Field: "newBaseline", Reason: "must be positive"}
	}

	now := e.now().UTC()
	e.settings.TargetCompletions = targetCompletions
	e.settings.GrowthPerCompletion = growthPerCompletion
	e.settings.StartingValue = newBaseline
	e.progress.Completions = 0
	e.progress.CurrentBalance = newBaseline

	e.persistSettings(ctx)
	e.persistProgress(ctx)
	e.appendActivity(ctx, storage.ActivityEntry{TS: now, Type: ActivityGrowth, Baseline: newBaseline})
	return nil
}

// SetProgressObjectKind switches the presentation skin.
func (e *Engine) SetProgressObjectKind(ctx context.Context, kind ProgressObjectKind) error {
	if !kind.IsValid() {
		return ValidationError{Field: "progressObjectKind", Reason: "unknown kind"}
	}
	e.settings.ProgressObjectKind = string(kind)
	e.persistSettings(ctx)
	return nil
}

// AddJournalEntry appends a free-form journal note to the activity log.
func (e *Engine) AddJournalEntry(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ValidationError{Field: "text", Reason: "is required"}
	}
	e.appendActivity(ctx, storage.ActivityEntry{TS: e.now().UTC(), Type: ActivityJournal, Text: text})
	return nil
}
