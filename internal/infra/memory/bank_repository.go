package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/newn79677-coder/PRACTICE-APP/internal/domain"
)

// BankLoader fetches raw question records from a backing store (Redis,
// Postgres, a static set).
type BankLoader interface {
	LoadBank(ctx context.Context) ([]domain.Question, error)
}

// BankRepository serves the validated question bank, caching the loader
// result with a TTL to avoid repeated store hits. Loader failures and empty
// or fully-malformed banks degrade to the built-in default set; malformed
// individual records are quarantined with a warning. Callers never see a
// load error.
type BankRepository struct {
	loader BankLoader
	ttl    time.Duration
	clock  func() time.Time
	log    zerolog.Logger
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	cached    []domain.Question
	expiresAt time.Time
}

func NewBankRepository(loader BankLoader, ttl time.Duration, log zerolog.Logger) *BankRepository {
	return &BankRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		log:    log,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *BankRepository) Bank(ctx context.Context) ([]domain.Question, error) {
	now := r.clock()

	r.mu.RLock()
	if r.cached != nil && r.expiresAt.After(now) {
		bank := r.cached
		r.mu.RUnlock()
		return bank, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("bank", func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if r.cached != nil && r.expiresAt.After(now) {
			bank := r.cached
			r.mu.RUnlock()
			return bank, nil
		}
		r.mu.RUnlock()

		bank := r.loadValidated(ctx)

		r.mu.Lock()
		r.cached = bank
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return bank, nil
	})
	if err != nil {
		// loadValidated absorbs failures; kept for interface symmetry.
		return nil, err
	}
	return result.([]domain.Question), nil
}

// loadValidated pulls the bank from the loader, quarantines malformed
// records, and falls back to the defaults when nothing usable remains.
func (r *BankRepository) loadValidated(ctx context.Context) []domain.Question {
	raw, err := r.loader.LoadBank(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("question bank load failed, using default set")
		return DefaultQuestions()
	}

	valid := make([]domain.Question, 0, len(raw))
	for _, q := range raw {
		if err := q.Validate(); err != nil {
			r.log.Warn().Err(err).Msg("quarantined malformed question")
			continue
		}
		for lang := range q.Options {
			if !q.AnswerIn(lang) {
				r.log.Warn().
					Str("lang", lang).
					Str("question", q.PromptIn(domain.DefaultLanguage)).
					Msg("canonical answer missing from localized options; scoring cannot match in this language")
			}
		}
		valid = append(valid, q)
	}
	if len(valid) == 0 {
		r.log.Warn().Int("raw", len(raw)).Msg("question bank empty after validation, using default set")
		return DefaultQuestions()
	}
	return valid
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticBankLoader serves a fixed slice (tests, the play command).
type StaticBankLoader struct {
	questions []domain.Question
}

func NewStaticBankLoader(questions []domain.Question) *StaticBankLoader {
	return &StaticBankLoader{questions: questions}
}

func (l *StaticBankLoader) LoadBank(_ context.Context) ([]domain.Question, error) {
	return l.questions, nil
}
