package app

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/newn79677-coder/PRACTICE-APP/internal/domain"
)

// BankRepository serves the validated question bank (cached, with fallback
// to the built-in default set).
type BankRepository interface {
	Bank(ctx context.Context) ([]domain.Question, error)
}

// StateStore abstracts the persistence collaborator (in-memory, Redis, …).
// Absent data is a zero value with a nil error; corrupt data is an error the
// caller degrades from. History is append-only from the engine's side;
// ResetHistory exists for the administrative clear action.
type StateStore interface {
	LoadHistory(ctx context.Context) ([]domain.Result, error)
	AppendHistory(ctx context.Context, res domain.Result) error
	ResetHistory(ctx context.Context) error
	LoadLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
	SaveLeaderboard(ctx context.Context, entries []domain.LeaderboardEntry) error
	LoadProfile(ctx context.Context) (*domain.Profile, error)
	SaveProfile(ctx context.Context, p domain.Profile) error
	LoadBank(ctx context.Context) ([]domain.Question, error)
	SaveBank(ctx context.Context, bank []domain.Question) error
	LoadSettings(ctx context.Context) (json.RawMessage, error)
	SaveSettings(ctx context.Context, raw json.RawMessage) error
}

// Trainer is the application-state object owning the active session, the
// last graded result, the leaderboard and the profile. It replaces the
// ambient singleton of the original app: every consumer (websocket surface,
// terminal surface, scheduler) goes through one Trainer instance, which
// serializes access.
type Trainer struct {
	mu    sync.Mutex
	bank  BankRepository
	store StateStore
	log   zerolog.Logger
	clock func() time.Time
	rng   *rand.Rand

	profile     domain.Profile
	leaderboard *Leaderboard
	session     *Session
	result      *domain.Result
	resultSaved bool
	review      *ReviewCursor
}

// TrainerOption customizes a Trainer, mainly for deterministic tests.
type TrainerOption func(*Trainer)

func WithClock(clock func() time.Time) TrainerOption {
	return func(t *Trainer) { t.clock = clock }
}

func WithRand(rng *rand.Rand) TrainerOption {
	return func(t *Trainer) { t.rng = rng }
}

func WithLogger(log zerolog.Logger) TrainerOption {
	return func(t *Trainer) { t.log = log }
}

func NewTrainer(bank BankRepository, store StateStore, opts ...TrainerOption) *Trainer {
	t := &Trainer{
		bank:        bank,
		store:       store,
		log:         zerolog.Nop(),
		clock:       time.Now,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		profile:     domain.DefaultProfile(),
		leaderboard: NewLeaderboard(nil),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load pulls the persisted profile and leaderboard into memory. Corrupt or
// missing data degrades to defaults; Load never fails the caller.
func (t *Trainer) Load(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if profile, err := t.store.LoadProfile(ctx); err != nil {
		t.log.Warn().Err(err).Msg("profile load failed, using defaults")
	} else if profile != nil {
		t.profile = *profile
	}

	if entries, err := t.store.LoadLeaderboard(ctx); err != nil {
		t.log.Warn().Err(err).Msg("leaderboard load failed, starting empty")
	} else {
		t.leaderboard = NewLeaderboard(entries)
	}
}

// BankSize reports how many questions are available, so the setup surface
// can cap the requested count.
func (t *Trainer) BankSize(ctx context.Context) (int, error) {
	bank, err := t.bank.Bank(ctx)
	if err != nil {
		return 0, err
	}
	return len(bank), nil
}

// StartQuiz discards any previous attempt and starts a new session.
func (t *Trainer) StartQuiz(ctx context.Context, cfg domain.QuizConfig) (SessionSnapshot, error) {
	bank, err := t.bank.Bank(ctx)
	if err != nil {
		return SessionSnapshot{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	session, err := NewSessionAt(cfg, bank, t.clock(), t.rng)
	if err != nil {
		return SessionSnapshot{}, err
	}
	t.session = session
	t.result = nil
	t.resultSaved = false
	t.review = nil
	return session.Snapshot(t.clock()), nil
}

// Abandon drops the active attempt without grading it.
func (t *Trainer) Abandon() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.session = nil
}

// Answer records an option value for the given question slot.
func (t *Trainer) Answer(index int, value string) (SessionSnapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session == nil {
		return SessionSnapshot{}, domain.ErrNoActiveSession
	}
	if err := t.session.Answer(index, value); err != nil {
		// Unreachable from a well-behaved surface; a defect signal, not a crash.
		t.log.Warn().Err(err).Int("index", index).Msg("rejected answer")
		return SessionSnapshot{}, err
	}
	return t.session.Snapshot(t.clock()), nil
}

// AnswerCurrent records an option value for the question under the cursor.
// Reading the cursor and recording the answer happen under one lock, so a
// concurrent restart cannot route the value into a different session.
func (t *Trainer) AnswerCurrent(value string) (SessionSnapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session == nil {
		return SessionSnapshot{}, domain.ErrNoActiveSession
	}
	index := t.session.CurrentIndex()
	if err := t.session.Answer(index, value); err != nil {
		t.log.Warn().Err(err).Int("index", index).Msg("rejected answer")
		return SessionSnapshot{}, err
	}
	return t.session.Snapshot(t.clock()), nil
}

// Seek jumps the navigation cursor (clamped).
func (t *Trainer) Seek(index int) (SessionSnapshot, error) {
	return t.navigate(func(s *Session) { s.Seek(index) })
}

// Next moves to the following question.
func (t *Trainer) Next() (SessionSnapshot, error) {
	return t.navigate((*Session).Next)
}

// Previous moves to the preceding question.
func (t *Trainer) Previous() (SessionSnapshot, error) {
	return t.navigate((*Session).Previous)
}

func (t *Trainer) navigate(move func(*Session)) (SessionSnapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session == nil {
		return SessionSnapshot{}, domain.ErrNoActiveSession
	}
	move(t.session)
	return t.session.Snapshot(t.clock()), nil
}

// Snapshot projects the active session for rendering.
func (t *Trainer) Snapshot() (SessionSnapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session == nil {
		return SessionSnapshot{}, domain.ErrNoActiveSession
	}
	return t.session.Snapshot(t.clock()), nil
}

// Submit freezes and grades the active attempt. Safe to call again after
// submission; the frozen result is returned unchanged.
func (t *Trainer) Submit() (domain.Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.submitLocked()
}

func (t *Trainer) submitLocked() (domain.Result, error) {
	if t.session == nil {
		return domain.Result{}, domain.ErrNoActiveSession
	}
	res := t.session.Submit(t.clock())
	if t.result == nil {
		t.result = &res
	}
	return *t.result, nil
}

// Tick is the cooperative scheduler entry: at each poll it submits the
// active session once its deadline has passed. The returned flag is true
// only on the tick that performed the submission, so jittery schedulers
// cannot double-fire completion handling.
func (t *Trainer) Tick(now time.Time) (domain.Result, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session == nil || t.session.State() != StateActive || !t.session.IsExpired(now) {
		return domain.Result{}, false
	}
	res, err := t.submitLocked()
	if err != nil {
		return domain.Result{}, false
	}
	return res, true
}

// Result returns the last graded result.
func (t *Trainer) Result() (domain.Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.result == nil {
		return domain.Result{}, domain.ErrNoResult
	}
	return *t.result, nil
}

// SaveResult appends the last result to history and folds it into the
// leaderboard under the profile name, then persists. A store failure leaves
// the in-memory state intact and the save retryable; a repeated successful
// save is a no-op so history stays append-only without duplicates.
func (t *Trainer) SaveResult(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.result == nil {
		return domain.ErrNoResult
	}
	if t.resultSaved {
		return nil
	}

	if err := t.store.AppendHistory(ctx, *t.result); err != nil {
		return fmt.Errorf("%w: append history: %v", domain.ErrStorage, err)
	}
	t.leaderboard.Upsert(t.profile.Name, *t.result)
	if err := t.store.SaveLeaderboard(ctx, t.leaderboard.Entries()); err != nil {
		return fmt.Errorf("%w: save leaderboard: %v", domain.ErrStorage, err)
	}
	t.resultSaved = true
	return nil
}

// Review opens (or returns) the cursor over the last result and projects
// the current outcome.
func (t *Trainer) Review() (ReviewView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureReviewLocked(); err != nil {
		return ReviewView{}, err
	}
	return t.review.View(), nil
}

// ReviewSeek jumps the review cursor (clamped) and projects the outcome.
func (t *Trainer) ReviewSeek(index int) (ReviewView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureReviewLocked(); err != nil {
		return ReviewView{}, err
	}
	t.review.GoTo(index)
	return t.review.View(), nil
}

// ReviewNext advances the review cursor.
func (t *Trainer) ReviewNext() (ReviewView, error) {
	return t.reviewMove((*ReviewCursor).Next)
}

// ReviewPrevious steps the review cursor back.
func (t *Trainer) ReviewPrevious() (ReviewView, error) {
	return t.reviewMove((*ReviewCursor).Previous)
}

func (t *Trainer) reviewMove(move func(*ReviewCursor)) (ReviewView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureReviewLocked(); err != nil {
		return ReviewView{}, err
	}
	move(t.review)
	return t.review.View(), nil
}

func (t *Trainer) ensureReviewLocked() error {
	if t.review != nil {
		return nil
	}
	if t.result == nil {
		return domain.ErrNoResult
	}
	cursor, err := NewReviewCursor(*t.result)
	if err != nil {
		return err
	}
	t.review = cursor
	return nil
}

// History returns the persisted results, oldest first. Corrupt storage
// degrades to an empty history.
func (t *Trainer) History(ctx context.Context) []domain.Result {
	results, err := t.store.LoadHistory(ctx)
	if err != nil {
		t.log.Warn().Err(err).Msg("history load failed, showing empty")
		return nil
	}
	return results
}

// Stats summarizes history for the home screen.
func (t *Trainer) Stats(ctx context.Context) domain.Stats {
	results := t.History(ctx)
	stats := domain.Stats{TotalQuizzes: len(results)}
	if len(results) == 0 {
		return stats
	}
	sum := 0
	for _, r := range results {
		sum += r.ScorePercent
		if r.ScorePercent > stats.BestScore {
			stats.BestScore = r.ScorePercent
		}
	}
	stats.AverageScore = int(math.Round(float64(sum) / float64(len(results))))
	return stats
}

// Leaderboard returns the ranked entries.
func (t *Trainer) Leaderboard() []domain.LeaderboardEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.leaderboard.Entries()
}

// Profile returns the local participant identity.
func (t *Trainer) Profile() domain.Profile {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profile
}

// SetProfile updates and persists the identity. The in-memory profile is
// updated even when persistence fails, matching the retryable-save contract.
func (t *Trainer) SetProfile(ctx context.Context, p domain.Profile) error {
	t.mu.Lock()
	if p.Name == "" {
		p.Name = domain.DefaultProfile().Name
	}
	t.profile = p
	t.mu.Unlock()

	if err := t.store.SaveProfile(ctx, p); err != nil {
		return fmt.Errorf("%w: save profile: %v", domain.ErrStorage, err)
	}
	return nil
}
