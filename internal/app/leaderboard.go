package app

import (
	"sort"

	"github.com/newn79677-coder/PRACTICE-APP/internal/domain"
)

// Leaderboard keeps at most one entry per participant name, ordered by best
// score descending. Ties keep their relative order (stable sort) so repeated
// renders never reshuffle.
type Leaderboard struct {
	entries []domain.LeaderboardEntry
}

// NewLeaderboard builds a leaderboard from persisted entries, restoring the
// ordering invariant.
func NewLeaderboard(entries []domain.LeaderboardEntry) *Leaderboard {
	lb := &Leaderboard{entries: make([]domain.LeaderboardEntry, len(entries))}
	copy(lb.entries, entries)
	lb.sort()
	return lb
}

// Upsert records a result under name. An existing entry is replaced only on
// a strictly greater score; an equal score keeps the earlier timestamp.
// Reports whether the board changed.
func (l *Leaderboard) Upsert(name string, res domain.Result) bool {
	for i := range l.entries {
		if l.entries[i].Name != name {
			continue
		}
		if res.ScorePercent <= l.entries[i].BestScore {
			return false
		}
		l.entries[i].BestScore = res.ScorePercent
		l.entries[i].AchievedAt = res.CompletedAt
		l.sort()
		return true
	}
	l.entries = append(l.entries, domain.LeaderboardEntry{
		Name:       name,
		BestScore:  res.ScorePercent,
		AchievedAt: res.CompletedAt,
	})
	l.sort()
	return true
}

// Entries returns a copy of the ranked entries.
func (l *Leaderboard) Entries() []domain.LeaderboardEntry {
	out := make([]domain.LeaderboardEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Leaderboard) Len() int { return len(l.entries) }

func (l *Leaderboard) sort() {
	sort.SliceStable(l.entries, func(i, j int) bool {
		return l.entries[i].BestScore > l.entries[j].BestScore
	})
}
