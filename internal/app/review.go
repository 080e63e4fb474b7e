package app

import (
	"github.com/newn79677-coder/PRACTICE-APP/internal/domain"
)

// OptionStatus is the three-way display classification of an option during
// review.
type OptionStatus string

const (
	// OptionNeutral marks options the user neither picked nor needed.
	OptionNeutral OptionStatus = "neutral"
	// OptionCorrect marks the true answer.
	OptionCorrect OptionStatus = "correct"
	// OptionIncorrect marks the user's pick when it was wrong.
	OptionIncorrect OptionStatus = "incorrect"
	// OptionSelected marks the user's pick when it was right; it coincides
	// with OptionCorrect, which wins.
	OptionSelected OptionStatus = "selected"
)

// ClassifiedOption pairs a displayed option string with its review status.
type ClassifiedOption struct {
	Text   string       `json:"text"`
	Status OptionStatus `json:"status"`
}

// ClassifyOptions derives the review classification for every option of an
// outcome, in display order for lang. Pure function of the outcome; nothing
// is re-derived from the session.
func ClassifyOptions(o domain.Outcome, lang string) []ClassifiedOption {
	opts := o.Question.OptionsIn(lang)
	out := make([]ClassifiedOption, 0, len(opts))
	for _, opt := range opts {
		status := OptionNeutral
		switch {
		case opt == o.Question.Answer:
			status = OptionCorrect
		case opt == o.UserAnswer && !o.IsCorrect:
			status = OptionIncorrect
		case opt == o.UserAnswer:
			status = OptionSelected
		}
		out = append(out, ClassifiedOption{Text: opt, Status: status})
	}
	return out
}

// ReviewView is the read-only projection of one outcome for the rendering
// surface.
type ReviewView struct {
	Index       int                `json:"index"`
	Total       int                `json:"total"`
	Prompt      string             `json:"prompt"`
	Options     []ClassifiedOption `json:"options"`
	Explanation string             `json:"explanation"`
	IsCorrect   bool               `json:"isCorrect"`
	IsSkipped   bool               `json:"isSkipped"`
}

// ReviewCursor is a read-only navigator over a result's outcomes.
type ReviewCursor struct {
	result domain.Result
	index  int
}

// NewReviewCursor opens a cursor at the first outcome.
func NewReviewCursor(result domain.Result) (*ReviewCursor, error) {
	if len(result.Outcomes) == 0 {
		return nil, domain.ErrNoResult
	}
	return &ReviewCursor{result: result}, nil
}

func (c *ReviewCursor) Index() int { return c.index }
func (c *ReviewCursor) Len() int   { return len(c.result.Outcomes) }

// Current returns the outcome under the cursor.
func (c *ReviewCursor) Current() domain.Outcome {
	return c.result.Outcomes[c.index]
}

// Next advances the cursor; no-op at the last outcome.
func (c *ReviewCursor) Next() { c.GoTo(c.index + 1) }

// Previous moves back; no-op at the first outcome.
func (c *ReviewCursor) Previous() { c.GoTo(c.index - 1) }

// GoTo jumps to index, clamped to the valid range.
func (c *ReviewCursor) GoTo(index int) {
	if index < 0 {
		index = 0
	}
	if index >= len(c.result.Outcomes) {
		index = len(c.result.Outcomes) - 1
	}
	c.index = index
}

// View projects the current outcome in the result's language.
func (c *ReviewCursor) View() ReviewView {
	o := c.Current()
	lang := c.result.Language
	return ReviewView{
		Index:       c.index,
		Total:       len(c.result.Outcomes),
		Prompt:      o.Question.PromptIn(lang),
		Options:     ClassifyOptions(o, lang),
		Explanation: o.Question.ExplanationIn(lang),
		IsCorrect:   o.IsCorrect,
		IsSkipped:   o.IsSkipped,
	}
}
