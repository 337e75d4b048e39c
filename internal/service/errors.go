package service

import "errors"

var (
	// ErrUnknownRole means the role is not a key of the question bank.
	ErrUnknownRole = errors.New("unknown role")

	// ErrNoQuestions means the role is valid but the index holds no
	// questions for it.
	ErrNoQuestions = errors.New("no questions available for role")

	// ErrAnswerCountMismatch means a submission's answers and questions
	// lists differ in length.
	ErrAnswerCountMismatch = errors.New("number of answers must match number of questions")

	// ErrIndexUnavailable wraps failures reaching the question index.
	ErrIndexUnavailable = errors.New("question index unavailable")

	// ErrSessionNotFound means the quiz session does not exist or expired.
	ErrSessionNotFound = errors.New("session not found")
)
