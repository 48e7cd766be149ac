package engine

// ProgressObjectKind is a presentation skin for the progress meter; it is
// persisted verbatim and never affects engine math.
type ProgressObjectKind string

const (
	KindAccount ProgressObjectKind = "account"
	KindGarden  ProgressObjectKind = "garden"
	KindTower   ProgressObjectKind = "tower"
)

func (k ProgressObjectKind) IsValid() bool {
	switch k {
	case KindAccount, KindGarden, KindTower:
		return true
	default:
		return false
	}
}

// DefaultKind is used when user input is missing/invalid.
const DefaultKind ProgressObjectKind = KindAccount

type RuleCategory string

const (
	CategoryRisk       RuleCategory = "risk"
	CategoryEntry      RuleCategory = "entry"
	CategoryExit       RuleCategory = "exit"
	CategoryPsychology RuleCategory = "psychology"
	CategoryProcess    RuleCategory = "process"
)

func (c RuleCategory) IsValid() bool {
	switch c {
	case CategoryRisk, CategoryEntry, CategoryExit, CategoryPsychology, CategoryProcess:
		return true
	default:
		return false
	}
}

const DefaultCategory RuleCategory = CategoryProcess

// Activity log entry types.
const (
	ActivityCompletion = "completion"
	ActivityViolation  = "violation"
	ActivityJournal    = "journal"
	ActivityGrowth     = "growth"
)

// Champion badges, awarded by the leaderboard reset cycle for finishing a
// 30-day period at rank 1/2/3. Additive, never revoked.
const (
	BadgeGoldChampion   = "gold_champion"
	BadgeSilverChampion = "silver_champion"
	BadgeBronzeChampion = "bronze_champion"
)

// ResetPeriodDays is the length of one leaderboard accumulation window.
const ResetPeriodDays = 30
