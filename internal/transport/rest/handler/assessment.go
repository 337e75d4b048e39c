package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"appraisals/internal/model"
	"appraisals/internal/service"

	"github.com/gorilla/mux"
)

const defaultQuestionCount = 10

// AssessmentHandler handles the stateless assessment endpoints.
type AssessmentHandler struct {
	assessSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler.
func NewAssessmentHandler(assessSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessSvc: assessSvc}
}

// StartAssessmentRequest is the request body for starting an assessment.
type StartAssessmentRequest struct {
	Role         string `json:"role"`
	NumQuestions int    `json:"numQuestions"`
}

// SubmitAssessmentRequest carries the questions that were issued together
// with the user's answers, index-aligned.
type SubmitAssessmentRequest struct {
	Role      string           `json:"role"`
	Questions []model.Question `json:"questions"`
	Answers   []string         `json:"answers"`
}

// AssessmentResponse is the response body for a started assessment.
type AssessmentResponse struct {
	Role           string           `json:"role"`
	Questions      []model.Question `json:"questions"`
	TotalQuestions int              `json:"totalQuestions"`
}

// Roles handles GET /v1/roles
func (h *AssessmentHandler) Roles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.assessSvc.Roles())
}

// Start handles POST /v1/assessment/start
func (h *AssessmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.startAssessment(w, r, req.Role, req.NumQuestions)
}

// QuestionsByRole handles GET /v1/assessment/questions/{role}
func (h *AssessmentHandler) QuestionsByRole(w http.ResponseWriter, r *http.Request) {
	role := mux.Vars(r)["role"]

	count := defaultQuestionCount
	if raw := r.URL.Query().Get("num_questions"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "num_questions must be an integer")
			return
		}
		count = parsed
	}

	h.startAssessment(w, r, role, count)
}

func (h *AssessmentHandler) startAssessment(w http.ResponseWriter, r *http.Request, role string, count int) {
	if count <= 0 {
		count = defaultQuestionCount
	}

	questions, err := h.assessSvc.StartAssessment(r.Context(), role, count)
	if err != nil {
		h.writeServiceError(w, role, err)
		return
	}

	writeJSON(w, http.StatusOK, AssessmentResponse{
		Role:           role,
		Questions:      questions,
		TotalQuestions: len(questions),
	})
}

// Submit handles POST /v1/assessment/submit
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.assessSvc.Submit(r.Context(), req.Role, req.Questions, req.Answers)
	if err != nil {
		h.writeServiceError(w, req.Role, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// RoleStats handles GET /v1/stats/role/{role}
func (h *AssessmentHandler) RoleStats(w http.ResponseWriter, r *http.Request) {
	role := mux.Vars(r)["role"]

	stats, err := h.assessSvc.Stats(r.Context(), role)
	if err != nil {
		h.writeServiceError(w, role, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// writeServiceError maps service errors onto HTTP statuses: unknown role and
// malformed submissions are client errors, an empty role is not-found, and
// an unreachable index is service-unavailable.
func (h *AssessmentHandler) writeServiceError(w http.ResponseWriter, role string, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownRole):
		writeError(w, http.StatusBadRequest, fmt.Sprintf(
			"role '%s' not found. Available roles: %s",
			role, strings.Join(h.assessSvc.Roles(), ", "),
		))
	case errors.Is(err, service.ErrAnswerCountMismatch):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoQuestions):
		writeError(w, http.StatusNotFound, fmt.Sprintf("no questions found for role: %s", role))
	case errors.Is(err, service.ErrIndexUnavailable):
		writeError(w, http.StatusServiceUnavailable, "question index unavailable")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
