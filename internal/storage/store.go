package storage

import "context"

// Persisted keys. These form the storage contract: every consumer
// (engine, reports, dashboard) addresses state through these names.
const (
	KeySettings         = "user_settings"
	KeyProgress         = "user_progress"
	KeyRules            = "user_rules"
	KeyDailyStats       = "daily_stats"
	KeyActivityLog      = "activity_log"
	KeyAchievements     = "user_achievements"
	KeyLastReset        = "leaderboard_last_reset"
	KeyHistory          = "leaderboard_history"
	KeyCurrentRank      = "current_user_rank"
	KeyLeaderboardCache = "monthly_leaderboard_data"
)

// Store is an opaque key-value store of JSON blobs. Writers broadcast the
// changed key to subscribers; the notification carries no value, so a
// receiver must re-read the key to observe the new state.
type Store interface {
	// Get returns the stored value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Subscribe registers fn to be called with the key of every subsequent
	// write. The returned func cancels the subscription.
	Subscribe(fn func(key string)) (cancel func())
}
