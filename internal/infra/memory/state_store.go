package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/newn79677-coder/PRACTICE-APP/internal/app"
	"github.com/newn79677-coder/PRACTICE-APP/internal/domain"
)

// StateStore is the in-memory implementation of app.StateStore, used by
// tests and the terminal runner.
type StateStore struct {
	mu          sync.RWMutex
	history     []domain.Result
	leaderboard []domain.LeaderboardEntry
	profile     *domain.Profile
	bank        []domain.Question
	settings    json.RawMessage
}

var _ app.StateStore = (*StateStore)(nil)

func NewStateStore() *StateStore {
	return &StateStore{}
}

func (s *StateStore) LoadHistory(_ context.Context) ([]domain.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Result, len(s.history))
	copy(out, s.history)
	return out, nil
}

func (s *StateStore) AppendHistory(_ context.Context, res domain.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, res)
	return nil
}

func (s *StateStore) ResetHistory(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	return nil
}

func (s *StateStore) LoadLeaderboard(_ context.Context) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.LeaderboardEntry, len(s.leaderboard))
	copy(out, s.leaderboard)
	return out, nil
}

func (s *StateStore) SaveLeaderboard(_ context.Context, entries []domain.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaderboard = make([]domain.LeaderboardEntry, len(entries))
	copy(s.leaderboard, entries)
	return nil
}

func (s *StateStore) LoadProfile(_ context.Context) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil, nil
	}
	p := *s.profile
	return &p, nil
}

func (s *StateStore) SaveProfile(_ context.Context, p domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &p
	return nil
}

func (s *StateStore) LoadBank(_ context.Context) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Question, len(s.bank))
	copy(out, s.bank)
	return out, nil
}

func (s *StateStore) SaveBank(_ context.Context, bank []domain.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bank = make([]domain.Question, len(bank))
	copy(s.bank, bank)
	return nil
}

func (s *StateStore) LoadSettings(_ context.Context) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

func (s *StateStore) SaveSettings(_ context.Context, raw json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = append(json.RawMessage(nil), raw...)
	return nil
}

// StoreBankLoader adapts a StateStore into a BankLoader, so the same store
// that holds imported questions can feed the bank repository. An empty
// stored bank reads as absent.
type StoreBankLoader struct {
	store app.StateStore
}

func NewStoreBankLoader(store app.StateStore) *StoreBankLoader {
	return &StoreBankLoader{store: store}
}

func (l *StoreBankLoader) LoadBank(ctx context.Context) ([]domain.Question, error) {
	return l.store.LoadBank(ctx)
}
