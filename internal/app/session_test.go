package app_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newn79677-coder/PRACTICE-APP/internal/app"
	"github.com/newn79677-coder/PRACTICE-APP/internal/domain"
	"github.com/newn79677-coder/PRACTICE-APP/internal/infra/memory"
)

func testBank() []domain.Question {
	return memory.DefaultQuestions()
}

func testConfig(count int) domain.QuizConfig {
	return domain.QuizConfig{
		Name:          "Unit Quiz",
		QuestionCount: count,
		TimeLimit:     5 * time.Minute,
		Language:      "en",
	}
}

func newTestSession(t *testing.T, count int) (*app.Session, time.Time) {
	t.Helper()
	start := time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)
	s, err := app.NewSessionAt(testConfig(count), testBank(), start, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return s, start
}

func TestNewSessionSamplesDistinctQuestions(t *testing.T) {
	bank := testBank()
	for seed := int64(0); seed < 20; seed++ {
		s, err := app.NewSessionAt(testConfig(3), bank, time.Now(), rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		seen := map[string]bool{}
		for _, q := range s.Questions() {
			prompt := q.PromptIn("en")
			assert.False(t, seen[prompt], "duplicate question %q with seed %d", prompt, seed)
			seen[prompt] = true

			found := false
			for _, b := range bank {
				if b.PromptIn("en") == prompt {
					found = true
				}
			}
			assert.True(t, found, "question %q not from the bank", prompt)
		}
		assert.Equal(t, 3, s.Len())
	}
}

func TestNewSessionRejectsOversizedRequest(t *testing.T) {
	_, err := app.NewSessionAt(testConfig(4), testBank(), time.Now(), rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, domain.ErrInsufficientQuestions)
}

func TestAnswerOverwrites(t *testing.T) {
	s, _ := newTestSession(t, 3)

	require.NoError(t, s.Answer(1, "first pick"))
	require.NoError(t, s.Answer(1, "second pick"))
	assert.Equal(t, "second pick", s.AnswerAt(1))
}

func TestAnswerRejectsOutOfRangeIndex(t *testing.T) {
	s, _ := newTestSession(t, 3)

	assert.ErrorIs(t, s.Answer(-1, "x"), domain.ErrInvalidAnswerIndex)
	assert.ErrorIs(t, s.Answer(3, "x"), domain.ErrInvalidAnswerIndex)
}

func TestAnswerAfterSubmitIsRejected(t *testing.T) {
	s, start := newTestSession(t, 3)
	s.Submit(start.Add(time.Minute))

	err := s.Answer(0, "late")
	assert.ErrorIs(t, err, domain.ErrSessionSubmitted)
	assert.Equal(t, domain.Unanswered, s.AnswerAt(0), "rejected answer must not mutate state")
}

func TestSeekClamps(t *testing.T) {
	s, _ := newTestSession(t, 3)

	s.Seek(99)
	assert.Equal(t, 2, s.CurrentIndex())
	s.Seek(-5)
	assert.Equal(t, 0, s.CurrentIndex())

	s.Previous()
	assert.Equal(t, 0, s.CurrentIndex(), "previous at first question is a no-op")
	s.Seek(2)
	s.Next()
	assert.Equal(t, 2, s.CurrentIndex(), "next at last question is a no-op")
}

func TestExpiryBoundary(t *testing.T) {
	s, start := newTestSession(t, 3)

	assert.False(t, s.IsExpired(start))
	assert.False(t, s.IsExpired(start.Add(5*time.Minute-time.Millisecond)))
	assert.True(t, s.IsExpired(start.Add(5*time.Minute)), "expired exactly at the deadline")
	assert.True(t, s.IsExpired(start.Add(6*time.Minute)))
	assert.Negative(t, s.RemainingTime(start.Add(6*time.Minute)))
}

func TestSubmitIsIdempotent(t *testing.T) {
	s, start := newTestSession(t, 3)
	require.NoError(t, s.Answer(0, s.Questions()[0].Answer))

	first := s.Submit(start.Add(time.Minute))
	second := s.Submit(start.Add(2 * time.Minute))

	assert.Equal(t, first, second, "re-submission must return the frozen result")
	assert.Equal(t, app.StateSubmitted, s.State())
}

func TestResultRequiresSubmission(t *testing.T) {
	s, _ := newTestSession(t, 3)

	_, err := s.Result()
	assert.ErrorIs(t, err, domain.ErrSessionNotSubmitted)
}
