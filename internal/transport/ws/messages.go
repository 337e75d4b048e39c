package ws

import (
	"encoding/json"

	"appraisals/internal/model"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Client message types
const (
	MsgStart  MessageType = "start"
	MsgResume MessageType = "resume"
	MsgAnswer MessageType = "answer"
	MsgNext   MessageType = "next"
	MsgPrev   MessageType = "prev"
	MsgSubmit MessageType = "submit"
)

// Server message types
const (
	MsgStarted  MessageType = "started"
	MsgQuestion MessageType = "question"
	MsgResult   MessageType = "result"
	MsgError    MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// StartPayload begins a new quiz session.
type StartPayload struct {
	Role         string `json:"role"`
	NumQuestions int    `json:"numQuestions"`
}

// ResumePayload re-attaches to an existing session after a reconnect.
type ResumePayload struct {
	SessionID string `json:"sessionId"`
}

// AnswerPayload records a choice for the current question.
type AnswerPayload struct {
	Choice string `json:"choice"`
}

// StartedPayload acknowledges a started or resumed session. TotalQuestions
// may be smaller than requested when the role has fewer indexed questions.
type StartedPayload struct {
	SessionID      string `json:"sessionId"`
	Role           string `json:"role"`
	TotalQuestions int    `json:"totalQuestions"`
}

// QuestionPayload presents one question. The stored answer is deliberately
// withheld until the session is submitted.
type QuestionPayload struct {
	Index    int      `json:"index"`
	Total    int      `json:"total"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Choice   string   `json:"choice,omitempty"`
	First    bool     `json:"first"`
	Last     bool     `json:"last"`
}

// ErrorPayload reports a recoverable error to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}

func questionPayload(session *model.QuizSession) QuestionPayload {
	q := session.Questions[session.Current]
	return QuestionPayload{
		Index:    session.Current,
		Total:    len(session.Questions),
		Question: q.Text,
		Options:  q.Options,
		Choice:   session.Answers[session.Current],
		First:    session.Current == 0,
		Last:     session.Current == len(session.Questions)-1,
	}
}
