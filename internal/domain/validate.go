package domain

import (
	"fmt"
	"time"
)

// Validate checks the structural invariants of a bank entry: a prompt and at
// least two non-empty options in the default language, equal option
// cardinality across languages, and a canonical answer that matches exactly
// one default-language option.
func (q Question) Validate() error {
	if q.PromptIn(DefaultLanguage) == "" {
		return fmt.Errorf("question has no %q prompt", DefaultLanguage)
	}
	base := q.Options[DefaultLanguage]
	if len(base) < 2 {
		return fmt.Errorf("question %q needs at least two options", q.PromptIn(DefaultLanguage))
	}
	matches := 0
	for _, opt := range base {
		if opt == "" {
			return fmt.Errorf("question %q has an empty option", q.PromptIn(DefaultLanguage))
		}
		if opt == q.Answer {
			matches++
		}
	}
	if matches != 1 {
		return fmt.Errorf("question %q: answer %q must match exactly one option, matches %d",
			q.PromptIn(DefaultLanguage), q.Answer, matches)
	}
	for lang, opts := range q.Options {
		if lang == DefaultLanguage {
			continue
		}
		if len(opts) != len(base) {
			return fmt.Errorf("question %q: %q options count %d differs from %q count %d",
				q.PromptIn(DefaultLanguage), lang, len(opts), DefaultLanguage, len(base))
		}
		for _, opt := range opts {
			if opt == "" {
				return fmt.Errorf("question %q has an empty %q option", q.PromptIn(DefaultLanguage), lang)
			}
		}
	}
	return nil
}

// AnswerIn reports whether the canonical answer appears verbatim among the
// options of lang. Scoring compares displayed strings against the canonical
// answer, so a localization failing this check cannot be answered correctly
// in that language. Surfaced at load time as a warning, not an error.
func (q Question) AnswerIn(lang string) bool {
	for _, opt := range q.OptionsIn(lang) {
		if opt == q.Answer {
			return true
		}
	}
	return false
}

// Validate checks a quiz configuration against a bank of the given size.
func (c QuizConfig) Validate(bankSize int) error {
	if c.QuestionCount <= 0 {
		return fmt.Errorf("question count must be positive, got %d", c.QuestionCount)
	}
	if c.QuestionCount > bankSize {
		return fmt.Errorf("%w: requested %d, bank has %d", ErrInsufficientQuestions, c.QuestionCount, bankSize)
	}
	if c.TimeLimit <= 0 {
		return fmt.Errorf("time limit must be positive, got %s", c.TimeLimit)
	}
	return nil
}

// Normalized fills config defaults: untitled quizzes get a name, a missing
// language code falls back to the default.
func (c QuizConfig) Normalized() QuizConfig {
	if c.Name == "" {
		c.Name = "Untitled Quiz"
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.TimeLimit == 0 {
		c.TimeLimit = 10 * time.Minute
	}
	return c
}
