package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/newn79677-coder/PRACTICE-APP/internal/app"
	"github.com/newn79677-coder/PRACTICE-APP/internal/domain"
)

const (
	historyKey     = "trainer:history"
	leaderboardKey = "trainer:leaderboard"
	profileKey     = "trainer:profile"
	bankKey        = "trainer:bank"
	settingsKey    = "trainer:settings"
)

// StateStore persists trainer state in Redis: history as a list of JSON
// results (append-only from the engine's side), everything else as JSON
// values. Missing keys read as absent, never as errors.
type StateStore struct {
	client *redis.Client
}

var _ app.StateStore = (*StateStore)(nil)

func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

func (s *StateStore) LoadHistory(ctx context.Context) ([]domain.Result, error) {
	raw, err := s.client.LRange(ctx, historyKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	results := make([]domain.Result, 0, len(raw))
	for _, item := range raw {
		var res domain.Result
		if err := json.Unmarshal([]byte(item), &res); err != nil {
			return nil, fmt.Errorf("unmarshal history entry: %w", err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *StateStore) AppendHistory(ctx context.Context, res domain.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := s.client.RPush(ctx, historyKey, data).Err(); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (s *StateStore) ResetHistory(ctx context.Context) error {
	if err := s.client.Del(ctx, historyKey).Err(); err != nil {
		return fmt.Errorf("reset history: %w", err)
	}
	return nil
}

func (s *StateStore) LoadLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	if err := s.getJSON(ctx, leaderboardKey, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *StateStore) SaveLeaderboard(ctx context.Context, entries []domain.LeaderboardEntry) error {
	return s.setJSON(ctx, leaderboardKey, entries)
}

func (s *StateStore) LoadProfile(ctx context.Context) (*domain.Profile, error) {
	var p domain.Profile
	found, err := s.getJSONFound(ctx, profileKey, &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (s *StateStore) SaveProfile(ctx context.Context, p domain.Profile) error {
	return s.setJSON(ctx, profileKey, p)
}

func (s *StateStore) LoadBank(ctx context.Context) ([]domain.Question, error) {
	var bank []domain.Question
	if err := s.getJSON(ctx, bankKey, &bank); err != nil {
		return nil, err
	}
	return bank, nil
}

func (s *StateStore) SaveBank(ctx context.Context, bank []domain.Question) error {
	return s.setJSON(ctx, bankKey, bank)
}

func (s *StateStore) LoadSettings(ctx context.Context) (json.RawMessage, error) {
	raw, err := s.client.Get(ctx, settingsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", settingsKey, err)
	}
	return raw, nil
}

func (s *StateStore) SaveSettings(ctx context.Context, raw json.RawMessage) error {
	if err := s.client.Set(ctx, settingsKey, []byte(raw), 0).Err(); err != nil {
		return fmt.Errorf("save %s: %w", settingsKey, err)
	}
	return nil
}

func (s *StateStore) getJSON(ctx context.Context, key string, dest any) error {
	_, err := s.getJSONFound(ctx, key, dest)
	return err
}

func (s *StateStore) getJSONFound(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (s *StateStore) setJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// BankLoader reads the question bank key directly, for wiring the store
// into the cached bank repository.
type BankLoader struct {
	store *StateStore
}

func NewBankLoader(store *StateStore) *BankLoader {
	return &BankLoader{store: store}
}

func (l *BankLoader) LoadBank(ctx context.Context) ([]domain.Question, error) {
	return l.store.LoadBank(ctx)
}
