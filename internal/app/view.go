package app

import (
	"time"

	"github.com/newn79677-coder/PRACTICE-APP/internal/domain"
)

// GridStatus is the navigation-grid state of one question slot.
type GridStatus string

const (
	GridCurrent  GridStatus = "current"
	GridAnswered GridStatus = "answered"
	GridViewed   GridStatus = "viewed"
)

// OptionView is one selectable option as shown to the user.
type OptionView struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// QuestionView is the current question rendered in the session language.
type QuestionView struct {
	Prompt  string       `json:"prompt"`
	Options []OptionView `json:"options"`
}

// SessionSnapshot is the read-only view model handed to rendering surfaces.
// It never exposes the mutable session internals or the correct answers.
type SessionSnapshot struct {
	QuizName        string       `json:"quizName"`
	State           string       `json:"state"`
	Index           int          `json:"index"`
	Total           int          `json:"total"`
	Question        QuestionView `json:"question"`
	Grid            []GridStatus `json:"grid"`
	AnsweredCount   int          `json:"answeredCount"`
	Progress        float64      `json:"progress"`
	RemainingMillis int64        `json:"remainingMillis"`
	Expired         bool         `json:"expired"`
}

// optionLabel renders the A/B/C prefix of the original option list.
func optionLabel(i int) string {
	return string(rune('A' + i))
}

// Snapshot projects the session for display at the given instant.
func (s *Session) Snapshot(now time.Time) SessionSnapshot {
	lang := s.cfg.Language
	q := s.CurrentQuestion()

	options := make([]OptionView, 0, len(q.OptionsIn(lang)))
	selected := s.answers[s.current]
	for i, opt := range q.OptionsIn(lang) {
		options = append(options, OptionView{
			Label:    optionLabel(i),
			Value:    opt,
			Selected: opt != domain.Unanswered && opt == selected,
		})
	}

	grid := make([]GridStatus, len(s.questions))
	answered := 0
	for i := range s.questions {
		switch {
		case i == s.current:
			grid[i] = GridCurrent
		case s.answers[i] != domain.Unanswered:
			grid[i] = GridAnswered
		default:
			grid[i] = GridViewed
		}
		if s.answers[i] != domain.Unanswered {
			answered++
		}
	}

	remaining := s.RemainingTime(now)
	return SessionSnapshot{
		QuizName: s.cfg.Name,
		State:    s.state.String(),
		Index:    s.current,
		Total:    len(s.questions),
		Question: QuestionView{
			Prompt:  q.PromptIn(lang),
			Options: options,
		},
		Grid:            grid,
		AnsweredCount:   answered,
		Progress:        float64(s.current+1) / float64(len(s.questions)),
		RemainingMillis: remaining.Milliseconds(),
		Expired:         remaining <= 0,
	}
}
