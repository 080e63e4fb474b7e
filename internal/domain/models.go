package domain

import "time"

// DefaultLanguage is the canonical language code of the question bank.
// The correct answer string is always expressed in this language.
const DefaultLanguage = "en"

// Unanswered is the sentinel stored in an answer slot the user never filled.
// Validation rejects empty option strings, so it can never collide with a
// real selection.
const Unanswered = ""

// Question is a single bank entry with per-language prompt, options and
// explanation. Option lists must agree positionally across languages.
type Question struct {
	Prompt      map[string]string   `json:"question"`
	Options     map[string][]string `json:"options"`
	Answer      string              `json:"answer"`
	Explanation map[string]string   `json:"explanation,omitempty"`
}

// PromptIn returns the prompt in lang, falling back to the default language.
func (q Question) PromptIn(lang string) string {
	if p, ok := q.Prompt[lang]; ok && p != "" {
		return p
	}
	return q.Prompt[DefaultLanguage]
}

// OptionsIn returns the option list in lang, falling back to the default
// language.
func (q Question) OptionsIn(lang string) []string {
	if opts, ok := q.Options[lang]; ok && len(opts) > 0 {
		return opts
	}
	return q.Options[DefaultLanguage]
}

// ExplanationIn returns the explanation in lang, or a placeholder when the
// question carries none.
func (q Question) ExplanationIn(lang string) string {
	if e, ok := q.Explanation[lang]; ok && e != "" {
		return e
	}
	if e, ok := q.Explanation[DefaultLanguage]; ok && e != "" {
		return e
	}
	return "No explanation provided"
}

// QuizConfig describes one attempt before it starts.
type QuizConfig struct {
	Name          string        `json:"name"`
	QuestionCount int           `json:"questionCount"`
	TimeLimit     time.Duration `json:"timeLimit"`
	Language      string        `json:"language"`
}

// Outcome is the graded result of a single question within a submitted
// session.
type Outcome struct {
	Question   Question `json:"question"`
	UserAnswer string   `json:"userAnswer"`
	IsCorrect  bool     `json:"isCorrect"`
	IsSkipped  bool     `json:"isSkipped"`
}

// Result is the immutable record produced by grading a submitted session.
type Result struct {
	ID             string    `json:"id"`
	QuizName       string    `json:"quizName"`
	Language       string    `json:"language"`
	Outcomes       []Outcome `json:"outcomes"`
	CorrectCount   int       `json:"correctCount"`
	IncorrectCount int       `json:"incorrectCount"`
	SkippedCount   int       `json:"skippedCount"`
	// ScorePercent is round(100*correct/total), half away from zero.
	ScorePercent   int       `json:"scorePercent"`
	TotalQuestions int       `json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
	ElapsedMillis  int64     `json:"elapsedMillis"`
}

// LeaderboardEntry is the best score ever achieved by a participant name.
type LeaderboardEntry struct {
	Name       string    `json:"name"`
	BestScore  int       `json:"score"`
	AchievedAt time.Time `json:"date"`
}

// Profile is the local participant identity shown on the home screen and
// used as the leaderboard key.
type Profile struct {
	Name    string `json:"name"`
	Bio     string `json:"bio"`
	Picture string `json:"profilePicture,omitempty"`
}

// DefaultProfile mirrors the profile the app starts with before the user
// edits it.
func DefaultProfile() Profile {
	return Profile{
		Name: "Quiz Master",
		Bio:  "Test your knowledge with our quizzes!",
	}
}

// Stats aggregates the saved history for the home screen.
type Stats struct {
	TotalQuizzes int `json:"totalQuizzes"`
	BestScore    int `json:"bestScore"`
	AverageScore int `json:"avgScore"`
}
