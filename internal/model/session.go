package model

import "time"

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// QuizSession holds one quiz attempt as it steps through its questions.
// Answers is index-aligned with Questions; an empty string means unanswered.
// Score and Feedback are filled in once on submit and cached with the session.
type QuizSession struct {
	ID          string        `json:"id"`
	Role        string        `json:"role"`
	Status      SessionStatus `json:"status"`
	Questions   []Question    `json:"questions"`
	Answers     []string      `json:"answers"`
	Current     int           `json:"current"`
	Score       int           `json:"score"`
	Feedback    string        `json:"feedback,omitempty"`
	StartedAt   time.Time     `json:"startedAt"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
}
