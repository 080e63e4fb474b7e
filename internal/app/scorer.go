package app

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/newn79677-coder/PRACTICE-APP/internal/domain"
)

// gradeSession turns a frozen session into an immutable result. Outcomes
// keep the attempt order; an answered-but-wrong question is neither correct
// nor skipped.
func gradeSession(s *Session, completedAt time.Time) domain.Result {
	outcomes := make([]domain.Outcome, 0, len(s.questions))
	for i, q := range s.questions {
		outcomes = append(outcomes, gradeQuestion(q, s.answers[i]))
	}

	correct, skipped := 0, 0
	for _, o := range outcomes {
		if o.IsCorrect {
			correct++
		}
		if o.IsSkipped {
			skipped++
		}
	}
	total := len(outcomes)

	elapsed := completedAt.Sub(s.startedAt).Milliseconds()
	if elapsed < 0 {
		elapsed = 0
	}

	return domain.Result{
		ID:             uuid.NewString(),
		QuizName:       s.cfg.Name,
		Language:       s.cfg.Language,
		Outcomes:       outcomes,
		CorrectCount:   correct,
		IncorrectCount: total - correct - skipped,
		SkippedCount:   skipped,
		ScorePercent:   scorePercent(correct, total),
		TotalQuestions: total,
		CompletedAt:    completedAt,
		ElapsedMillis:  elapsed,
	}
}

// gradeQuestion compares the recorded option value against the canonical
// answer string.
func gradeQuestion(q domain.Question, answer string) domain.Outcome {
	return domain.Outcome{
		Question:   q,
		UserAnswer: answer,
		IsCorrect:  answer == q.Answer,
		IsSkipped:  answer == domain.Unanswered,
	}
}

// scorePercent rounds half away from zero: 2 of 3 is 67, 1 of 3 is 33.
func scorePercent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}
