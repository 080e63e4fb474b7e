package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newn79677-coder/PRACTICE-APP/internal/app"
	"github.com/newn79677-coder/PRACTICE-APP/internal/domain"
)

func mathQuestion() domain.Question {
	return domain.Question{
		Prompt:  map[string]string{"en": "What is 2 + 2?"},
		Options: map[string][]string{"en": {"2", "3", "4", "5"}},
		Answer:  "4",
	}
}

func TestClassifyWrongAnswer(t *testing.T) {
	outcome := domain.Outcome{
		Question:   mathQuestion(),
		UserAnswer: "3",
		IsCorrect:  false,
	}

	classified := app.ClassifyOptions(outcome, "en")
	require.Len(t, classified, 4)
	assert.Equal(t, app.OptionNeutral, classified[0].Status)
	assert.Equal(t, app.OptionIncorrect, classified[1].Status, "wrong pick is incorrect-selected")
	assert.Equal(t, app.OptionCorrect, classified[2].Status, "true answer is marked correct")
	assert.Equal(t, app.OptionNeutral, classified[3].Status)
}

func TestClassifyCorrectAnswer(t *testing.T) {
	outcome := domain.Outcome{
		Question:   mathQuestion(),
		UserAnswer: "4",
		IsCorrect:  true,
	}

	classified := app.ClassifyOptions(outcome, "en")
	assert.Equal(t, app.OptionCorrect, classified[2].Status, "correct wins over selected")
	for _, i := range []int{0, 1, 3} {
		assert.Equal(t, app.OptionNeutral, classified[i].Status)
	}
}

func TestClassifySkippedAnswer(t *testing.T) {
	outcome := domain.Outcome{
		Question:   mathQuestion(),
		UserAnswer: domain.Unanswered,
		IsSkipped:  true,
	}

	classified := app.ClassifyOptions(outcome, "en")
	assert.Equal(t, app.OptionCorrect, classified[2].Status)
	for _, i := range []int{0, 1, 3} {
		assert.Equal(t, app.OptionNeutral, classified[i].Status)
	}
}

func TestReviewCursorNavigation(t *testing.T) {
	result := domain.Result{
		Language: "en",
		Outcomes: []domain.Outcome{
			{Question: mathQuestion(), UserAnswer: "4", IsCorrect: true},
			{Question: mathQuestion(), UserAnswer: "3"},
			{Question: mathQuestion(), UserAnswer: domain.Unanswered, IsSkipped: true},
		},
	}

	cursor, err := app.NewReviewCursor(result)
	require.NoError(t, err)

	assert.Equal(t, 0, cursor.Index())
	cursor.Previous()
	assert.Equal(t, 0, cursor.Index(), "previous at first outcome is a no-op")

	cursor.Next()
	cursor.Next()
	assert.Equal(t, 2, cursor.Index())
	cursor.Next()
	assert.Equal(t, 2, cursor.Index(), "next at last outcome is a no-op")

	cursor.GoTo(99)
	assert.Equal(t, 2, cursor.Index())
	cursor.GoTo(-1)
	assert.Equal(t, 0, cursor.Index())

	view := cursor.View()
	assert.Equal(t, "What is 2 + 2?", view.Prompt)
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, "No explanation provided", view.Explanation)
}

func TestReviewCursorRejectsEmptyResult(t *testing.T) {
	_, err := app.NewReviewCursor(domain.Result{})
	assert.ErrorIs(t, err, domain.ErrNoResult)
}
