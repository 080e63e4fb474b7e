package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/newn79677-coder/PRACTICE-APP/internal/domain"
)

// countingLoader records how often the backing store is hit.
type countingLoader struct {
	mu    sync.Mutex
	calls int
	bank  []domain.Question
	err   error
}

func (l *countingLoader) LoadBank(context.Context) ([]domain.Question, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	return l.bank, l.err
}

func (l *countingLoader) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func TestBankRepositoryCachesWithinTTL(t *testing.T) {
	loader := &countingLoader{bank: DefaultQuestions()}
	repo := NewBankRepository(loader, time.Minute, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		bank, err := repo.Bank(ctx)
		if err != nil {
			t.Fatalf("Bank: %v", err)
		}
		if len(bank) != len(DefaultQuestions()) {
			t.Fatalf("got %d questions, want %d", len(bank), len(DefaultQuestions()))
		}
	}
	if got := loader.Calls(); got != 1 {
		t.Errorf("loader hit %d times within TTL, want 1", got)
	}
}

func TestBankRepositoryReloadsAfterTTL(t *testing.T) {
	loader := &countingLoader{bank: DefaultQuestions()}
	repo := NewBankRepository(loader, time.Minute, zerolog.Nop())
	now := time.Now()
	repo.clock = func() time.Time { return now }
	ctx := context.Background()

	if _, err := repo.Bank(ctx); err != nil {
		t.Fatalf("Bank: %v", err)
	}
	// Jitter extends the TTL by at most 10%.
	now = now.Add(time.Minute + time.Minute/10 + time.Second)
	if _, err := repo.Bank(ctx); err != nil {
		t.Fatalf("Bank: %v", err)
	}
	if got := loader.Calls(); got != 2 {
		t.Errorf("loader hit %d times across TTL expiry, want 2", got)
	}
}

func TestBankRepositoryFallsBackOnLoaderError(t *testing.T) {
	loader := &countingLoader{err: errors.New("store down")}
	repo := NewBankRepository(loader, time.Minute, zerolog.Nop())

	bank, err := repo.Bank(context.Background())
	if err != nil {
		t.Fatalf("Bank: %v", err)
	}
	if len(bank) != len(DefaultQuestions()) {
		t.Errorf("got %d questions, want the default set of %d", len(bank), len(DefaultQuestions()))
	}
}

func TestBankRepositoryQuarantinesMalformedRecords(t *testing.T) {
	good := DefaultQuestions()[0]
	bad := domain.Question{
		Prompt:  map[string]string{"en": "One option only?"},
		Options: map[string][]string{"en": {"yes"}},
		Answer:  "yes",
	}
	loader := &countingLoader{bank: []domain.Question{bad, good}}
	repo := NewBankRepository(loader, time.Minute, zerolog.Nop())

	bank, err := repo.Bank(context.Background())
	if err != nil {
		t.Fatalf("Bank: %v", err)
	}
	if len(bank) != 1 {
		t.Fatalf("got %d questions after quarantine, want 1", len(bank))
	}
	if bank[0].PromptIn(domain.DefaultLanguage) != good.PromptIn(domain.DefaultLanguage) {
		t.Errorf("kept the wrong question: %q", bank[0].PromptIn(domain.DefaultLanguage))
	}
}

func TestBankRepositoryFallsBackWhenAllRecordsInvalid(t *testing.T) {
	bad := domain.Question{Prompt: map[string]string{"en": "no options"}}
	loader := &countingLoader{bank: []domain.Question{bad}}
	repo := NewBankRepository(loader, time.Minute, zerolog.Nop())

	bank, err := repo.Bank(context.Background())
	if err != nil {
		t.Fatalf("Bank: %v", err)
	}
	if len(bank) != len(DefaultQuestions()) {
		t.Errorf("got %d questions, want the default set of %d", len(bank), len(DefaultQuestions()))
	}
}

func TestBankRepositoryConcurrentAccessSingleLoad(t *testing.T) {
	loader := &countingLoader{bank: DefaultQuestions()}
	repo := NewBankRepository(loader, time.Minute, zerolog.Nop())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Bank(ctx); err != nil {
				t.Errorf("Bank: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := loader.Calls(); got != 1 {
		t.Errorf("loader hit %d times under concurrent access, want 1", got)
	}
}
