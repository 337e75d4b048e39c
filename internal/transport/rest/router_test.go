package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"appraisals/internal/app"
	"appraisals/internal/bank"
	"appraisals/internal/cache"
	"appraisals/internal/model"
	"appraisals/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memQuestionRepo backs the router tests without a real mongo instance.
type memQuestionRepo struct {
	entries []model.IndexEntry
	failing bool
}

func (r *memQuestionRepo) InsertAll(ctx context.Context, entries []model.IndexEntry) error {
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *memQuestionRepo) GetByRole(ctx context.Context, role string) ([]model.IndexEntry, error) {
	if r.failing {
		return nil, errors.New("down")
	}
	var out []model.IndexEntry
	for _, e := range r.entries {
		if e.Role == role {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memQuestionRepo) DistinctRoles(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var roles []string
	for _, e := range r.entries {
		if !seen[e.Role] {
			seen[e.Role] = true
			roles = append(roles, e.Role)
		}
	}
	return roles, nil
}

func (r *memQuestionRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	if r.failing {
		return 0, errors.New("down")
	}
	var n int64
	for _, e := range r.entries {
		if e.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *memQuestionRepo) Count(ctx context.Context) (int64, error) {
	if r.failing {
		return 0, errors.New("down")
	}
	return int64(len(r.entries)), nil
}

func (r *memQuestionRepo) Drop(ctx context.Context) error {
	r.entries = nil
	return nil
}

// memSessionCache is an in-memory cache.SessionCache.
type memSessionCache struct {
	sessions map[string]*model.QuizSession
}

func (c *memSessionCache) Set(ctx context.Context, s *model.QuizSession) error {
	c.sessions[s.ID] = s
	return nil
}

func (c *memSessionCache) Get(ctx context.Context, id string) (*model.QuizSession, error) {
	return c.sessions[id], nil
}

func (c *memSessionCache) Delete(ctx context.Context, id string) error {
	delete(c.sessions, id)
	return nil
}

var _ cache.SessionCache = (*memSessionCache)(nil)

type staticFeedback struct{}

func (staticFeedback) Generate(ctx context.Context, score, total int, role string) string {
	return fmt.Sprintf("static feedback %d/%d", score, total)
}

func testRouter(t *testing.T) (http.Handler, *memQuestionRepo) {
	t.Helper()

	b := bank.Bank{
		"Engineer": {
			{Text: "FIFO structure?", Options: []string{"Stack", "Queue"}, Answer: "Queue"},
			{Text: "Binary search?", Options: []string{"O(n)", "O(log n)"}, Answer: "O(log n)"},
			{Text: "Merge command?", Options: []string{"git merge", "git tag"}, Answer: "git merge"},
		},
		"Designer": {}, // in the bank, nothing indexed
	}

	repo := &memQuestionRepo{}
	require.NoError(t, service.NewSyncService(b, repo).Reconcile(context.Background()))

	assessSvc := service.NewAssessmentService(b, repo, staticFeedback{})
	sessionCache := &memSessionCache{sessions: make(map[string]*model.QuizSession)}
	sessionSvc := service.NewSessionService(assessSvc, sessionCache)

	return NewRouter(&app.App{
		Bank:           b,
		QuestionRepo:   repo,
		SessionCache:   sessionCache,
		AssessService:  assessSvc,
		SessionService: sessionSvc,
	}), repo
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRolesEndpoint(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, "GET", "/v1/roles", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var roles []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roles))
	assert.Equal(t, []string{"Designer", "Engineer"}, roles)
}

func TestStartAssessment(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, "POST", "/v1/assessment/start", map[string]interface{}{
		"role":         "Engineer",
		"numQuestions": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Role           string           `json:"role"`
		Questions      []model.Question `json:"questions"`
		TotalQuestions int              `json:"totalQuestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Engineer", resp.Role)
	assert.Len(t, resp.Questions, 2)
	assert.Equal(t, 2, resp.TotalQuestions)
}

func TestStartAssessmentUnknownRole(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, "POST", "/v1/assessment/start", map[string]interface{}{
		"role": "Astronaut",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Available roles")
	assert.Contains(t, rec.Body.String(), "Engineer")
}

func TestStartAssessmentNoQuestionsForRole(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, "POST", "/v1/assessment/start", map[string]interface{}{
		"role": "Designer",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no questions found")
}

func TestQuestionsByRoleGET(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, "GET", "/v1/assessment/questions/Engineer?num_questions=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Questions []model.Question `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Questions, 2)
}

func TestSubmitAssessment(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, "POST", "/v1/assessment/submit", map[string]interface{}{
		"role": "Engineer",
		"questions": []model.Question{
			{Text: "FIFO structure?", Options: []string{"Stack", "Queue"}, Answer: "Queue"},
			{Text: "Binary search?", Options: []string{"O(n)", "O(log n)"}, Answer: "O(log n)"},
		},
		"answers": []string{" queue ", "O(n)"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result model.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 50.0, result.Percentage)
	assert.Equal(t, "static feedback 1/2", result.Feedback)
}

func TestSubmitAssessmentLengthMismatch(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, "POST", "/v1/assessment/submit", map[string]interface{}{
		"role": "Engineer",
		"questions": []model.Question{
			{Text: "FIFO structure?", Answer: "Queue"},
		},
		"answers": []string{"Queue", "extra"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must match")
}

func TestRoleStats(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, "GET", "/v1/stats/role/Engineer", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats model.RoleStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(3), stats.IndexedQuestions)
	assert.Equal(t, 3, stats.BankQuestions)
}

func TestRoleStatsUnknownRole(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, "GET", "/v1/stats/role/Astronaut", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	router, repo := testRouter(t)

	rec := doJSON(t, router, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)
	assert.Contains(t, rec.Body.String(), `"totalQuestionsInDb":3`)

	repo.failing = true
	rec = doJSON(t, router, "GET", "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStartAssessmentIndexUnavailable(t *testing.T) {
	router, repo := testRouter(t)
	repo.failing = true

	rec := doJSON(t, router, "POST", "/v1/assessment/start", map[string]interface{}{
		"role": "Engineer",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
