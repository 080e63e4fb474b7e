package domain

import "errors"

var (
	// ErrInsufficientQuestions is returned when a config asks for more
	// questions than the bank holds. User-correctable; no state changes.
	ErrInsufficientQuestions = errors.New("not enough questions in the bank")
	// ErrSessionSubmitted is returned by mutating calls on a session that
	// has already been submitted.
	ErrSessionSubmitted = errors.New("session already submitted")
	// ErrSessionNotSubmitted is returned when grading is requested before
	// the session has been submitted.
	ErrSessionNotSubmitted = errors.New("session not submitted yet")
	// ErrNoActiveSession is returned when an operation needs a running
	// attempt and none exists.
	ErrNoActiveSession = errors.New("no active quiz session")
	// ErrNoResult is returned when review or save is requested before any
	// attempt has been graded.
	ErrNoResult = errors.New("no quiz result available")
	// ErrInvalidAnswerIndex is returned for answer slots outside the
	// session's question range.
	ErrInvalidAnswerIndex = errors.New("answer index out of range")
	// ErrStorage wraps persistence failures. Loads degrade to defaults;
	// saves are reported and retryable.
	ErrStorage = errors.New("storage failure")
)
