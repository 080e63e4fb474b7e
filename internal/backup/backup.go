// Package backup implements the JSON backup document: a single file with
// optional top-level keys that export snapshots the persisted state and
// import merges key-by-key. A partial document is valid; missing keys leave
// existing state untouched, present keys replace their slice of state
// (the leaderboard folds in via the best-score upsert instead).
package backup

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/newn79677-coder/PRACTICE-APP/internal/app"
	"github.com/newn79677-coder/PRACTICE-APP/internal/domain"
)

// Document is the backup file layout. Settings are an opaque blob owned by
// the (out-of-engine) settings surface; they round-trip untouched.
type Document struct {
	Profile     *domain.Profile           `json:"profile,omitempty"`
	Settings    json.RawMessage           `json:"settings,omitempty"`
	History     []domain.Result           `json:"history,omitempty"`
	Leaderboard []domain.LeaderboardEntry `json:"leaderboard,omitempty"`
	Questions   []domain.Question         `json:"questions,omitempty"`
}

// Export snapshots the store into a document. Absent keys stay absent.
func Export(ctx context.Context, store app.StateStore) (Document, error) {
	var doc Document

	profile, err := store.LoadProfile(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("export profile: %w", err)
	}
	doc.Profile = profile

	if doc.Settings, err = store.LoadSettings(ctx); err != nil {
		return Document{}, fmt.Errorf("export settings: %w", err)
	}
	if doc.History, err = store.LoadHistory(ctx); err != nil {
		return Document{}, fmt.Errorf("export history: %w", err)
	}
	if doc.Leaderboard, err = store.LoadLeaderboard(ctx); err != nil {
		return Document{}, fmt.Errorf("export leaderboard: %w", err)
	}
	if doc.Questions, err = store.LoadBank(ctx); err != nil {
		return Document{}, fmt.Errorf("export questions: %w", err)
	}
	return doc, nil
}

// Marshal renders the document the way the original app wrote its backup
// file: indented JSON.
func Marshal(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Import parses data and merges each present key into the store. Imported
// questions are validated; malformed records are quarantined with a warning
// rather than failing the whole import.
func Import(ctx context.Context, store app.StateStore, data []byte, log zerolog.Logger) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse backup document: %w", err)
	}

	if doc.Profile != nil {
		if err := store.SaveProfile(ctx, *doc.Profile); err != nil {
			return fmt.Errorf("import profile: %w", err)
		}
	}
	if doc.Settings != nil {
		if err := store.SaveSettings(ctx, doc.Settings); err != nil {
			return fmt.Errorf("import settings: %w", err)
		}
	}
	if doc.History != nil {
		// Replace, not append: importing the same document twice must not
		// duplicate results.
		if err := store.ResetHistory(ctx); err != nil {
			return fmt.Errorf("import history: %w", err)
		}
		for _, res := range doc.History {
			if err := store.AppendHistory(ctx, res); err != nil {
				return fmt.Errorf("import history: %w", err)
			}
		}
	}
	if doc.Leaderboard != nil {
		merged, err := mergeLeaderboard(ctx, store, doc.Leaderboard)
		if err != nil {
			return err
		}
		if err := store.SaveLeaderboard(ctx, merged); err != nil {
			return fmt.Errorf("import leaderboard: %w", err)
		}
	}
	if doc.Questions != nil {
		valid := make([]domain.Question, 0, len(doc.Questions))
		for _, q := range doc.Questions {
			if err := q.Validate(); err != nil {
				log.Warn().Err(err).Msg("quarantined malformed question in backup")
				continue
			}
			valid = append(valid, q)
		}
		if err := store.SaveBank(ctx, valid); err != nil {
			return fmt.Errorf("import questions: %w", err)
		}
	}
	return nil
}

// mergeLeaderboard folds imported entries into the existing board with the
// usual best-score-wins upsert semantics.
func mergeLeaderboard(ctx context.Context, store app.StateStore, imported []domain.LeaderboardEntry) ([]domain.LeaderboardEntry, error) {
	existing, err := store.LoadLeaderboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("import leaderboard: load existing: %w", err)
	}
	board := app.NewLeaderboard(existing)
	for _, e := range imported {
		board.Upsert(e.Name, domain.Result{ScorePercent: e.BestScore, CompletedAt: e.AchievedAt})
	}
	return board.Entries(), nil
}
