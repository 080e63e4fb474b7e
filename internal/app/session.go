package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/newn79677-coder/PRACTICE-APP/internal/domain"
)

// SessionState tracks the quiz attempt lifecycle. A session object only
// exists once configuration has been validated, so it is born Active and can
// only move to Submitted; a new attempt is always a new object.
type SessionState int

const (
	StateActive SessionState = iota
	StateSubmitted
)

func (s SessionState) String() string {
	if s == StateSubmitted {
		return "submitted"
	}
	return "active"
}

// Session owns one timed attempt: the sampled question subset, the answer
// slots, the navigation cursor and the deadline. It holds no timer and no
// lock; the Trainer serializes access and an external scheduler polls the
// pure time queries.
type Session struct {
	cfg       domain.QuizConfig
	questions []domain.Question
	answers   []string
	current   int
	startedAt time.Time
	deadline  time.Time
	state     SessionState
	result    *domain.Result
}

// NewSession starts an attempt by sampling cfg.QuestionCount distinct
// questions from the bank without replacement.
func NewSession(cfg domain.QuizConfig, bank []domain.Question) (*Session, error) {
	return NewSessionAt(cfg, bank, time.Now(), rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewSessionAt is NewSession with an injected start time and sampling source
// for deterministic tests.
func NewSessionAt(cfg domain.QuizConfig, bank []domain.Question, now time.Time, rng *rand.Rand) (*Session, error) {
	cfg = cfg.Normalized()
	if err := cfg.Validate(len(bank)); err != nil {
		return nil, err
	}

	selected := make([]domain.Question, 0, cfg.QuestionCount)
	for _, idx := range rng.Perm(len(bank))[:cfg.QuestionCount] {
		selected = append(selected, bank[idx])
	}

	answers := make([]string, cfg.QuestionCount)
	for i := range answers {
		answers[i] = domain.Unanswered
	}

	return &Session{
		cfg:       cfg,
		questions: selected,
		answers:   answers,
		startedAt: now,
		deadline:  now.Add(cfg.TimeLimit),
		state:     StateActive,
	}, nil
}

func (s *Session) State() SessionState { return s.state }

func (s *Session) Config() domain.QuizConfig { return s.cfg }

func (s *Session) Len() int { return len(s.questions) }

func (s *Session) CurrentIndex() int { return s.current }

func (s *Session) StartedAt() time.Time { return s.startedAt }

func (s *Session) Deadline() time.Time { return s.deadline }

// Questions returns the sampled subset in attempt order.
func (s *Session) Questions() []domain.Question {
	out := make([]domain.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// CurrentQuestion returns the question under the navigation cursor.
func (s *Session) CurrentQuestion() domain.Question {
	return s.questions[s.current]
}

// AnswerAt returns the recorded value for slot index, or the unanswered
// sentinel.
func (s *Session) AnswerAt(index int) string {
	if index < 0 || index >= len(s.answers) {
		return domain.Unanswered
	}
	return s.answers[index]
}

// Answer records value into slot index, overwriting any earlier pick.
// Re-answering is always allowed while the session is active.
func (s *Session) Answer(index int, value string) error {
	if s.state != StateActive {
		return domain.ErrSessionSubmitted
	}
	if index < 0 || index >= len(s.answers) {
		return fmt.Errorf("%w: %d of %d", domain.ErrInvalidAnswerIndex, index, len(s.answers))
	}
	s.answers[index] = value
	return nil
}

// Seek moves the cursor. Out-of-range targets are clamped; this is
// navigation, not a contract violation.
func (s *Session) Seek(index int) {
	if index < 0 {
		index = 0
	}
	if index >= len(s.questions) {
		index = len(s.questions) - 1
	}
	s.current = index
}

// Next advances the cursor, stopping at the last question.
func (s *Session) Next() { s.Seek(s.current + 1) }

// Previous moves the cursor back, stopping at the first question.
func (s *Session) Previous() { s.Seek(s.current - 1) }

// RemainingTime is deadline minus now; negative once expired.
func (s *Session) RemainingTime(now time.Time) time.Duration {
	return s.deadline.Sub(now)
}

// IsExpired reports whether the deadline has passed.
func (s *Session) IsExpired(now time.Time) bool {
	return s.RemainingTime(now) <= 0
}

// Submit freezes the session and grades it. Idempotent: a second call
// returns the result frozen by the first, so timer-driven and manual
// submission converge on identical state.
func (s *Session) Submit(now time.Time) domain.Result {
	if s.state == StateSubmitted {
		return *s.result
	}
	s.state = StateSubmitted
	res := gradeSession(s, now)
	s.result = &res
	return res
}

// Result returns the frozen result of a submitted session.
func (s *Session) Result() (domain.Result, error) {
	if s.state != StateSubmitted {
		return domain.Result{}, domain.ErrSessionNotSubmitted
	}
	return *s.result, nil
}
