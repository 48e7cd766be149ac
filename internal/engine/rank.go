package engine

import (
	"context"
	"encoding/json"
	"sort"

	"ruleguard/internal/storage"
)

// Rank orders entries by completions, discipline, streak and growth (all
// descending), ties beyond all four keys keeping input order. Rank is
// 1-based position in the sorted output. The sort uses unrounded values;
// display rounding must never influence ordering. The input slice is not
// modified.
func Rank(entries []storage.LeaderboardEntry) []storage.LeaderboardEntry {
	out := make([]storage.LeaderboardEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Completions != out[j].Completions {
			return out[i].Completions > out[j].Completions
		}
		if out[i].DisciplineScore != out[j].DisciplineScore {
			return out[i].DisciplineScore > out[j].DisciplineScore
		}
		if out[i].Streak != out[j].Streak {
			return out[i].Streak > out[j].Streak
		}
		return out[i].GrowthPct > out[j].GrowthPct
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// SelfEntry builds the current user's leaderboard entry from live state.
func (e *Engine) SelfEntry(ctx context.Context) storage.LeaderboardEntry {
	return storage.LeaderboardEntry{
		UserID:          e.id.ID,
		Name:            e.id.Name,
		Completions:     e.progress.Completions,
		DisciplineScore: e.progress.DisciplineScore,
		Streak:          e.progress.Streak,
		GrowthPct:       GrowthPercent(e.progress.CurrentBalance, e.settings.StartingValue),
		Badges:          e.Achievements(ctx),
	}
}

// SnapshotLeaderboard ranks the current user against the supplied peers
// and persists the snapshot and the user's rank as a read cache. Peer
// sourcing is the caller's seam; the engine never fabricates peers.
func (e *Engine) SnapshotLeaderboard(ctx context.Context, peers []storage.LeaderboardEntry) (ranked []storage.LeaderboardEntry, yourRank int) {
	self := e.SelfEntry(ctx)
	all := append([]storage.LeaderboardEntry{self}, peers...)
	ranked = Rank(all)
	for _, entry := range ranked {
		if entry.UserID == self.UserID {
			yourRank = entry.Rank
			break
		}
	}
	e.persist(ctx, storage.KeyLeaderboardCache, ranked)
	e.persist(ctx, storage.KeyCurrentRank, yourRank)
	return ranked, yourRank
}

// CachedLeaderboard returns the last persisted ranked snapshot, if any.
func (e *Engine) CachedLeaderboard(ctx context.Context) []storage.LeaderboardEntry {
	data, ok, err := e.store.Get(ctx, storage.KeyLeaderboardCache)
	if err != nil || !ok {
		return nil
	}
	var ranked []storage.LeaderboardEntry
	if err := json.Unmarshal(data, &ranked); err != nil {
		e.log.WithError(err).Warn("stored leaderboard cache malformed")
		return nil
	}
	return ranked
}
