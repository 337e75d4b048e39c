package handler

import (
	"net/http"

	"appraisals/internal/bank"
	"appraisals/internal/repository"
)

// HealthHandler reports service health and index totals.
type HealthHandler struct {
	bank bank.Bank
	repo repository.QuestionRepo
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(b bank.Bank, repo repository.QuestionRepo) *HealthHandler {
	return &HealthHandler{
		bank: b,
		repo: repo,
	}
}

// HealthResponse is the health check response body.
type HealthResponse struct {
	Status          string   `json:"status"`
	Message         string   `json:"message"`
	AvailableRoles  []string `json:"availableRoles"`
	TotalQuestions  int64    `json:"totalQuestionsInDb"`
	QuestionsInBank int      `json:"questionsInKnowledgeBase"`
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	total, err := h.repo.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "question index unavailable")
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:          "healthy",
		Message:         "API is running successfully",
		AvailableRoles:  h.bank.Roles(),
		TotalQuestions:  total,
		QuestionsInBank: h.bank.TotalQuestions(),
	})
}
