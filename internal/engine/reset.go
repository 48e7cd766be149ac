package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ruleguard/internal/storage"
)

// The leaderboard reset cycle is a two-state machine: ACTIVE while a
// 30-day window accumulates, with a one-shot RESET transition evaluated
// on demand. Missed windows are never back-filled: however late the
// evaluation, exactly one transition occurs.

// ResetResult reports one evaluation of the cycle.
type ResetResult struct {
	DaysSince    int
	Transitioned bool
	PeriodLabel  string
	Top3         []storage.LeaderboardEntry
	YourRank     int
	AwardedBadge string // empty when no new badge was earned
}

// badgeForRank maps a final rank to its champion badge tier.
func badgeForRank(rank int) string {
	switch rank {
	case 1:
		return BadgeGoldChampion
	case 2:
		return BadgeSilverChampion
	case 3:
		return BadgeBronzeChampion
	default:
		return ""
	}
}

// EvaluateReset checks the reset cycle against ranked output from Rank.
// On the first ever evaluation the window simply starts at now. A now
// before the stored timestamp (clock skew) counts as day zero.
func (e *Engine) EvaluateReset(ctx context.Context, ranked []storage.LeaderboardEntry, now time.Time) (*ResetResult, error) {
	now = now.UTC()
	last, ok := e.lastReset(ctx)
	if !ok {
		e.persist(ctx, storage.KeyLastReset, now)
		return &ResetResult{DaysSince: 0}, nil
	}

	days := int(now.Sub(last).Hours() / 24)
	if days < 0 {
		days = 0
	}
	if days < ResetPeriodDays {
		return &ResetResult{DaysSince: days}, nil
	}

	top3 := ranked
	if len(top3) > 3 {
		top3 = top3[:3]
	}
	snapshot := make([]storage.LeaderboardEntry, len(top3))
	copy(snapshot, top3)

	yourRank := 0
	for _, entry := range ranked {
		if entry.UserID == e.id.ID {
			yourRank = entry.Rank
			break
		}
	}

	awarded := ""
	if badge := badgeForRank(yourRank); badge != "" {
		if e.awardBadge(ctx, badge) {
			awarded = badge
		}
	}

	label := fmt.Sprintf("%s – %s", last.Format("Jan 2"), now.Format("Jan 2, 2006"))
	e.appendHistory(ctx, storage.HistoryRecord{PeriodLabel: label, Top3: snapshot, YourRank: yourRank})
	e.persist(ctx, storage.KeyLastReset, now)

	return &ResetResult{
		DaysSince:    days,
		Transitioned: true,
		PeriodLabel:  label,
		Top3:         snapshot,
		YourRank:     yourRank,
		AwardedBadge: awarded,
	}, nil
}

func (e *Engine) lastReset(ctx context.Context) (time.Time, bool) {
	data, ok, err := e.store.Get(ctx, storage.KeyLastReset)
	if err != nil || !ok {
		if err != nil {
			e.log.WithError(err).Warn("read last reset failed")
		}
		return time.Time{}, false
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		e.log.WithError(err).Warn("stored last reset malformed")
		return time.Time{}, false
	}
	return t, true
}

// History returns the archived leaderboard periods, oldest first.
func (e *Engine) History(ctx context.Context) []storage.HistoryRecord {
	data, ok, err := e.store.Get(ctx, storage.KeyHistory)
	if err != nil || !ok {
		if err != nil {
			e.log.WithError(err).Warn("read history failed")
		}
		return nil
	}
	var records []storage.HistoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		e.log.WithError(err).Warn("stored history malformed")
		return nil
	}
	return records
}

func (e *Engine) appendHistory(ctx context.Context, rec storage.HistoryRecord) {
	records := e.History(ctx)
	records = append(records, rec)
	e.persist(ctx, storage.KeyHistory, records)
}
