package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"appraisals/internal/cache"
	"appraisals/internal/model"

	"github.com/google/uuid"
)

// SessionService runs stateful quiz attempts: one role's sampled questions
// stepped through one at a time with forward/back navigation, then a single
// submit. All progress lives in the session cache, keyed by session id, so a
// client can reconnect and resume until the session expires.
type SessionService struct {
	assess   *AssessmentService
	sessions cache.SessionCache
}

// NewSessionService creates a new session service.
func NewSessionService(assess *AssessmentService, sessions cache.SessionCache) *SessionService {
	return &SessionService{
		assess:   assess,
		sessions: sessions,
	}
}

// Roles returns the roles a session can be started for.
func (s *SessionService) Roles() []string {
	return s.assess.Roles()
}

// defaultSessionQuestions is used when a start request omits the count.
const defaultSessionQuestions = 10

// Start samples questions for the role and creates a fresh session.
func (s *SessionService) Start(ctx context.Context, role string, count int) (*model.QuizSession, error) {
	if count <= 0 {
		count = defaultSessionQuestions
	}

	questions, err := s.assess.StartAssessment(ctx, role, count)
	if err != nil {
		return nil, err
	}

	session := &model.QuizSession{
		ID:        uuid.NewString(),
		Role:      role,
		Status:    model.SessionInProgress,
		Questions: questions,
		Answers:   make([]string, len(questions)),
		StartedAt: time.Now(),
	}

	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return session, nil
}

// Get loads an existing session.
func (s *SessionService) Get(ctx context.Context, id string) (*model.QuizSession, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Answer records the choice for the session's current question.
func (s *SessionService) Answer(ctx context.Context, id, choice string) (*model.QuizSession, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Answers[session.Current] = choice
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return session, nil
}

// Next advances to the following question, stopping at the last one.
func (s *SessionService) Next(ctx context.Context, id string) (*model.QuizSession, error) {
	return s.move(ctx, id, 1)
}

// Prev steps back to the previous question, stopping at the first one.
func (s *SessionService) Prev(ctx context.Context, id string) (*model.QuizSession, error) {
	return s.move(ctx, id, -1)
}

func (s *SessionService) move(ctx context.Context, id string, delta int) (*model.QuizSession, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := session.Current + delta
	if next >= 0 && next < len(session.Questions) {
		session.Current = next
		if err := s.sessions.Set(ctx, session); err != nil {
			return nil, fmt.Errorf("store session: %w", err)
		}
	}
	return session, nil
}

// Submit scores the session and generates feedback. Submitting an already
// completed session returns the cached result without regenerating feedback.
func (s *SessionService) Submit(ctx context.Context, id string) (*model.Result, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Status == model.SessionCompleted {
		return resultFromSession(session), nil
	}

	result, err := s.assess.Submit(ctx, session.Role, session.Questions, session.Answers)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session.Status = model.SessionCompleted
	session.Score = result.Score
	session.Feedback = result.Feedback
	session.CompletedAt = &now
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return result, nil
}

func resultFromSession(session *model.QuizSession) *model.Result {
	total := len(session.Questions)
	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(session.Score)/float64(total)*100*100) / 100
	}
	return &model.Result{
		Role:           session.Role,
		Score:          session.Score,
		TotalQuestions: total,
		Percentage:     percentage,
		Feedback:       session.Feedback,
	}
}
