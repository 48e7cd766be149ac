package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// SchemaVersion tags every persisted entity. Decoding rejects unknown
// fields and out-of-range values instead of merging them over defaults;
// callers recover from a rejected blob by falling back to defaults.
const SchemaVersion = 1

type Settings struct {
	Version             int     `json:"v"`
	StartingValue       float64 `json:"startingValue"`
	TargetCompletions   int     `json:"targetCompletions"`
	GrowthPerCompletion float64 `json:"growthPerCompletion"`
	ProgressObjectKind  string  `json:"progressObjectKind"`
}

type Progress struct {
	Version         int     `json:"v"`
	Completions     float64 `json:"completions"`
	CurrentBalance  float64 `json:"currentBalance"`
	DisciplineScore int     `json:"disciplineScore"`
	Streak          int     `json:"streak"`
	// LastStreakDate is a "2006-01-02" day key, empty until the first
	// qualifying completion.
	LastStreakDate string `json:"lastStreakDate"`
}

type Rule struct {
	Version       int        `json:"v"`
	ID            string     `json:"id"`
	Text          string     `json:"text"`
	Active        bool       `json:"active"`
	Violations    int        `json:"violations"`
	LastViolation *time.Time `json:"lastViolation,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	Category      string     `json:"category"`
}

// DayCounts is one calendar day's aggregate, keyed by day in the
// daily_stats map. Increment-only.
type DayCounts struct {
	Completions float64 `json:"completions"`
	Violations  int     `json:"violations"`
}

// ActivityEntry is one append-only activity log record. The payload is
// flattened: only the fields relevant to the entry type are set.
type ActivityEntry struct {
	TS          time.Time `json:"ts"`
	Type        string    `json:"type"`
	Increment   float64   `json:"increment,omitempty"`
	GainPercent float64   `json:"gainPercent,omitempty"`
	RuleID      string    `json:"ruleId,omitempty"`
	Text        string    `json:"text,omitempty"`
	Baseline    float64   `json:"baseline,omitempty"`
}

// LeaderboardEntry is derived per ranking pass. Only the latest ranked
// snapshot is persisted, as a cache.
type LeaderboardEntry struct {
	UserID          string   `json:"userId"`
	Name            string   `json:"name"`
	Completions     float64  `json:"completions"`
	DisciplineScore int      `json:"disciplineScore"`
	Streak          int      `json:"streak"`
	GrowthPct       float64  `json:"growthPct"`
	Badges          []string `json:"badges,omitempty"`
	Rank            int      `json:"rank"`
}

// HistoryRecord is appended once per leaderboard reset transition.
type HistoryRecord struct {
	PeriodLabel string             `json:"periodLabel"`
	Top3        []LeaderboardEntry `json:"top3"`
	YourRank    int                `json:"yourRank"`
}

func DefaultSettings() Settings {
	return Settings{
		Version:             SchemaVersion,
		StartingValue:       100,
		TargetCompletions:   50,
		GrowthPerCompletion: 1,
		ProgressObjectKind:  "account",
	}
}

func DefaultProgress(s Settings) Progress {
	return Progress{
		Version:         SchemaVersion,
		Completions:     0,
		CurrentBalance:  s.StartingValue,
		DisciplineScore: 100,
		Streak:          0,
		LastStreakDate:  "",
	}
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func DecodeSettings(data []byte) (Settings, error) {
	var s Settings
	if err := decodeStrict(data, &s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if s.Version != SchemaVersion {
		return Settings{}, fmt.Errorf("settings schema version %d unsupported", s.Version)
	}
	if s.StartingValue <= 0 || math.IsNaN(s.StartingValue) || math.IsInf(s.StartingValue, 0) {
		return Settings{}, fmt.Errorf("settings startingValue %v out of range", s.StartingValue)
	}
	if s.TargetCompletions < 1 {
		return Settings{}, fmt.Errorf("settings targetCompletions %d out of range", s.TargetCompletions)
	}
	if s.GrowthPerCompletion <= 0 || math.IsNaN(s.GrowthPerCompletion) || math.IsInf(s.GrowthPerCompletion, 0) {
		return Settings{}, fmt.Errorf("settings growthPerCompletion %v out of range", s.GrowthPerCompletion)
	}
	return s, nil
}

func DecodeProgress(data []byte) (Progress, error) {
	var p Progress
	if err := decodeStrict(data, &p); err != nil {
		return Progress{}, fmt.Errorf("decode progress: %w", err)
	}
	if p.Version != SchemaVersion {
		return Progress{}, fmt.Errorf("progress schema version %d unsupported", p.Version)
	}
	if p.Completions < 0 || math.IsNaN(p.Completions) {
		return Progress{}, fmt.Errorf("progress completions %v out of range", p.Completions)
	}
	if p.DisciplineScore < 0 || p.DisciplineScore > 100 {
		return Progress{}, fmt.Errorf("progress disciplineScore %d out of range", p.DisciplineScore)
	}
	if p.Streak < 0 {
		return Progress{}, fmt.Errorf("progress streak %d out of range", p.Streak)
	}
	return p, nil
}

func DecodeRules(data []byte) ([]Rule, error) {
	var rules []Rule
	if err := decodeStrict(data, &rules); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	for i := range rules {
		if rules[i].Version != SchemaVersion {
			return nil, fmt.Errorf("rule %q schema version %d unsupported", rules[i].ID, rules[i].Version)
		}
		if rules[i].ID == "" {
			return nil, fmt.Errorf("rule %d has no id", i)
		}
		if rules[i].Violations < 0 {
			return nil, fmt.Errorf("rule %q violations %d out of range", rules[i].ID, rules[i].Violations)
		}
	}
	return rules, nil
}
