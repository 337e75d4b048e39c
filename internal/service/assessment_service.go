package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"appraisals/internal/bank"
	"appraisals/internal/model"
	"appraisals/internal/repository"
)

// FeedbackGenerator produces the natural-language review for a scored
// assessment. Implementations must not fail: on any upstream error they
// return a locally built summary instead.
type FeedbackGenerator interface {
	Generate(ctx context.Context, score, total int, role string) string
}

// AssessmentService samples questions from the index, scores submissions and
// assembles results.
type AssessmentService struct {
	bank     bank.Bank
	repo     repository.QuestionRepo
	feedback FeedbackGenerator
}

// NewAssessmentService creates a new assessment service.
func NewAssessmentService(b bank.Bank, repo repository.QuestionRepo, feedback FeedbackGenerator) *AssessmentService {
	return &AssessmentService{
		bank:     b,
		repo:     repo,
		feedback: feedback,
	}
}

// Roles returns the roles the bank defines, sorted.
func (s *AssessmentService) Roles() []string {
	return s.bank.Roles()
}

// Sample returns up to count questions for a role in uniformly random order,
// without replacement. A role with no indexed questions yields an empty
// slice, not an error; the result may be shorter than count.
func (s *AssessmentService) Sample(ctx context.Context, role string, count int) ([]model.Question, error) {
	entries, err := s.repo.GetByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}

	questions := make([]model.Question, len(entries))
	for i, e := range entries {
		questions[i] = e.ToQuestion()
	}

	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	if count < len(questions) {
		questions = questions[:count]
	}
	return questions, nil
}

// StartAssessment validates the role and samples its questions. It
// distinguishes an unknown role from a known role with an empty index.
func (s *AssessmentService) StartAssessment(ctx context.Context, role string, count int) ([]model.Question, error) {
	if !s.bank.Has(role) {
		return nil, ErrUnknownRole
	}

	questions, err := s.Sample(ctx, role, count)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}

// Score counts answers that match the stored answer, ignoring case and
// surrounding whitespace.
func (s *AssessmentService) Score(questions []model.Question, answers []string) int {
	score := 0
	for i, q := range questions {
		if i >= len(answers) {
			break
		}
		if answersMatch(answers[i], q.Answer) {
			score++
		}
	}
	return score
}

// Submit validates and scores a completed assessment and attaches feedback.
func (s *AssessmentService) Submit(ctx context.Context, role string, questions []model.Question, answers []string) (*model.Result, error) {
	if !s.bank.Has(role) {
		return nil, ErrUnknownRole
	}
	if len(answers) != len(questions) {
		return nil, ErrAnswerCountMismatch
	}

	score := s.Score(questions, answers)
	total := len(questions)
	percentage := 0.0
	if total > 0 {
		percentage = float64(score) / float64(total) * 100
	}

	return &model.Result{
		Role:           role,
		Score:          score,
		TotalQuestions: total,
		Percentage:     math.Round(percentage*100) / 100,
		Feedback:       s.feedback.Generate(ctx, score, total, role),
	}, nil
}

// Stats reports indexed vs bank-defined question counts for a role.
func (s *AssessmentService) Stats(ctx context.Context, role string) (*model.RoleStats, error) {
	if !s.bank.Has(role) {
		return nil, ErrUnknownRole
	}

	indexed, err := s.repo.CountByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}

	return &model.RoleStats{
		Role:             role,
		IndexedQuestions: indexed,
		BankQuestions:    s.bank.Size(role),
	}, nil
}

func answersMatch(given, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(expected))
}
