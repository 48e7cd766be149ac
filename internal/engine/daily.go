package engine

import (
	"context"
	"encoding/json"
	"time"

	"ruleguard/internal/storage"
)

const dayLayout = "2006-01-02"

// DayKey returns the calendar-day key for t. All day boundaries in the
// engine are UTC.
func DayKey(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// DayStat is one day of a dense range query, zero-filled for days with
// no recorded activity.
type DayStat struct {
	Date        string
	Completions float64
	Violations  int
}

// DailyStats returns the raw date -> counts map.
func (e *Engine) DailyStats(ctx context.Context) map[string]storage.DayCounts {
	data, ok, err := e.store.Get(ctx, storage.KeyDailyStats)
	if err != nil || !ok {
		if err != nil {
			e.log.WithError(err).Warn("read daily stats failed")
		}
		return map[string]storage.DayCounts{}
	}
	var stats map[string]storage.DayCounts
	if err := json.Unmarshal(data, &stats); err != nil {
		e.log.WithError(err).Warn("stored daily stats malformed")
		return map[string]storage.DayCounts{}
	}
	if stats == nil {
		stats = map[string]storage.DayCounts{}
	}
	return stats
}

// addDaily increments today's counters. Exactly one record exists per
// calendar day; the record is increment-only.
func (e *Engine) addDaily(ctx context.Context, now time.Time, completions float64, violations int) {
	stats := e.DailyStats(ctx)
	day := stats[DayKey(now)]
	day.Completions += completions
	day.Violations += violations
	stats[DayKey(now)] = day
	e.persist(ctx, storage.KeyDailyStats, stats)
}

// ActivityLog returns the append-only activity log, oldest first.
func (e *Engine) ActivityLog(ctx context.Context) []storage.ActivityEntry {
	data, ok, err := e.store.Get(ctx, storage.KeyActivityLog)
	if err != nil || !ok {
		if err != nil {
			e.log.WithError(err).Warn("read activity log failed")
		}
		return nil
	}
	var entries []storage.ActivityEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		e.log.WithError(err).Warn("stored activity log malformed")
		return nil
	}
	return entries
}

func (e *Engine) appendActivity(ctx context.Context, entry storage.ActivityEntry) {
	entries := e.ActivityLog(ctx)
	entries = append(entries, entry)
	e.persist(ctx, storage.KeyActivityLog, entries)
}

// LastNDays returns a dense range of the n days ending at now, oldest
// first. Days without activity are zero-filled.
func (e *Engine) LastNDays(ctx context.Context, now time.Time, n int) []DayStat {
	if n <= 0 {
		return nil
	}
	stats := e.DailyStats(ctx)
	out := make([]DayStat, 0, n)
	for i := n - 1; i >= 0; i-- {
		key := DayKey(now.UTC().AddDate(0, 0, -i))
		day := stats[key]
		out = append(out, DayStat{Date: key, Completions: day.Completions, Violations: day.Violations})
	}
	return out
}

// WeeklyReport summarizes the last 7 calendar days. Read-only projection,
// recomputable at any time.
type WeeklyReport struct {
	Days        []DayStat
	Completions float64
	Violations  int
	ActiveDays  int // days with any recorded activity
	WinDays     int // days with at least one completion
	CleanDays   int // active days without a violation
	WinRate     float64
}

func (e *Engine) WeeklyReport(ctx context.Context, now time.Time) *WeeklyReport {
	r := &WeeklyReport{Days: e.LastNDays(ctx, now, 7)}
	for _, d := range r.Days {
		r.Completions += d.Completions
		r.Violations += d.Violations
		active := d.Completions > 0 || d.Violations > 0
		if active {
			r.ActiveDays++
		}
		if d.Completions > 0 {
			r.WinDays++
		}
		if active && d.Violations == 0 {
			r.CleanDays++
		}
	}
	if r.ActiveDays > 0 {
		r.WinRate = float64(r.WinDays) / float64(r.ActiveDays)
	}
	return r
}

// Heatmap returns completion intensity for the given number of weeks
// ending at now: one row per week (oldest first), seven days per row.
func (e *Engine) Heatmap(ctx context.Context, now time.Time, weeks int) [][]float64 {
	if weeks <= 0 {
		return nil
	}
	days := e.LastNDays(ctx, now, weeks*7)
	grid := make([][]float64, weeks)
	for w := 0; w < weeks; w++ {
		row := make([]float64, 7)
		for d := 0; d < 7; d++ {
			row[d] = days[w*7+d].Completions
		}
		grid[w] = row
	}
	return grid
}

// VerifyStreak recomputes the streak from daily stats: the number of
// consecutive days ending at now's day (or the day before, when today has
// no completion yet) with at least one recorded completion. Projection
// only; the ledger's streak counter stays authoritative.
func (e *Engine) VerifyStreak(ctx context.Context, now time.Time) int {
	stats := e.DailyStats(ctx)
	day := now.UTC()
	if stats[DayKey(day)].Completions <= 0 {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for stats[DayKey(day)].Completions > 0 {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
