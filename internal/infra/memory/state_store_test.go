package memory

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/newn79677-coder/PRACTICE-APP/internal/domain"
)

func TestStateStoreHistoryLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStateStore()

	history, err := store.LoadHistory(ctx)
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("fresh store has %d results, want 0", len(history))
	}

	for _, id := range []string{"first", "second", "third"} {
		if err := store.AppendHistory(ctx, domain.Result{ID: id}); err != nil {
			t.Fatalf("AppendHistory(%s): %v", id, err)
		}
	}

	history, err = store.LoadHistory(ctx)
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("got %d results, want 3", len(history))
	}
	for i, want := range []string{"first", "second", "third"} {
		if history[i].ID != want {
			t.Errorf("history[%d].ID = %q, want %q (insertion order)", i, history[i].ID, want)
		}
	}

	// Mutating the returned slice must not leak into the store.
	history[0].ID = "mutated"
	reread, _ := store.LoadHistory(ctx)
	if reread[0].ID != "first" {
		t.Error("LoadHistory returned a shared slice")
	}

	if err := store.ResetHistory(ctx); err != nil {
		t.Fatalf("ResetHistory: %v", err)
	}
	history, _ = store.LoadHistory(ctx)
	if len(history) != 0 {
		t.Errorf("got %d results after reset, want 0", len(history))
	}
}

func TestStateStoreProfileAbsentIsNil(t *testing.T) {
	ctx := context.Background()
	store := NewStateStore()

	p, err := store.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p != nil {
		t.Fatalf("absent profile = %+v, want nil", p)
	}

	if err := store.SaveProfile(ctx, domain.Profile{Name: "Asha"}); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	p, err = store.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p == nil || p.Name != "Asha" {
		t.Errorf("got %+v, want Asha", p)
	}
}

func TestStateStoreLeaderboardRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStateStore()
	at := time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)

	in := []domain.LeaderboardEntry{
		{Name: "A", BestScore: 90, AchievedAt: at},
		{Name: "B", BestScore: 50, AchievedAt: at},
	}
	if err := store.SaveLeaderboard(ctx, in); err != nil {
		t.Fatalf("SaveLeaderboard: %v", err)
	}

	out, err := store.LoadLeaderboard(ctx)
	if err != nil {
		t.Fatalf("LoadLeaderboard: %v", err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestStateStoreSettingsCopied(t *testing.T) {
	ctx := context.Background()
	store := NewStateStore()

	raw := json.RawMessage(`{"sound":true}`)
	if err := store.SaveSettings(ctx, raw); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	raw[2] = 'X'

	got, err := store.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if string(got) != `{"sound":true}` {
		t.Errorf("settings = %s, want the value as saved", got)
	}
}

func TestStoreBankLoaderReadsStoredBank(t *testing.T) {
	ctx := context.Background()
	store := NewStateStore()
	if err := store.SaveBank(ctx, DefaultQuestions()); err != nil {
		t.Fatalf("SaveBank: %v", err)
	}

	loader := NewStoreBankLoader(store)
	bank, err := loader.LoadBank(ctx)
	if err != nil {
		t.Fatalf("LoadBank: %v", err)
	}
	if len(bank) != len(DefaultQuestions()) {
		t.Errorf("got %d questions, want %d", len(bank), len(DefaultQuestions()))
	}
}
