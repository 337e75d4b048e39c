package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"appraisals/internal/config"
)

// FeedbackService generates appraisal feedback via the Gemini API. The
// external call is the least reliable dependency in the system, so every
// failure path ends in a deterministic local summary rather than an error.
type FeedbackService struct {
	config *config.AIConfig
	client *http.Client
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(cfg *config.AIConfig) *FeedbackService {
	return &FeedbackService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// Generate returns the model's feedback text for a scored assessment, or the
// local fallback summary if the call fails for any reason.
func (s *FeedbackService) Generate(ctx context.Context, score, total int, role string) string {
	prompt := buildFeedbackPrompt(score, total, role)
	text, err := s.callGemini(ctx, prompt)
	if err != nil {
		log.Printf("Feedback generation failed for role %s: %v", role, err)
		return FallbackFeedback(score, total)
	}
	return text
}

// FallbackFeedback is the deterministic summary used when the feedback
// service cannot be reached.
func FallbackFeedback(score, total int) string {
	percentage := 0.0
	if total > 0 {
		percentage = float64(score) / float64(total) * 100
	}
	return fmt.Sprintf(
		"Assessment completed with a score of %d out of %d questions correct (%.1f%%). Detailed feedback is temporarily unavailable.",
		score, total, percentage,
	)
}

// callGemini makes a request to the Gemini API
func (s *FeedbackService) callGemini(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.7,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.config.Endpoint(), s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	// Parse Gemini response structure
	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}

func buildFeedbackPrompt(score, total int, role string) string {
	return fmt.Sprintf(`You are an expert HR Manager providing detailed feedback for an employee's appraisal test. The employee is being assessed for the role of: **%s**. The employee's score is: **%d out of %d**.

Please provide a comprehensive and detailed performance review based on this score. The tone should be constructive, professional, and encouraging. Structure the feedback using the following markdown format:

### Overall Performance Analysis
Start with a summary paragraph analyzing the score. Categorize the performance (e.g., Excellent, Very Good, Good, Needs Improvement, Foundational) and explain what this score generally indicates about their current skill level for the '%s' position.

### Key Strengths
Based on the score, describe the employee's likely strengths. For a high score, highlight deep expertise and readiness for more complex challenges. For an average score, acknowledge a solid understanding of core concepts. For a low score, focus on their foundational knowledge and willingness to learn.

### Areas for Professional Development
Identify specific areas for improvement constructively. For a high score, suggest exploring advanced topics or leadership skills. For an average score, recommend focusing on specific intermediate topics. For a low score, gently outline the core competency areas that need attention.

### Recommended Next Steps & Resources
Provide a bulleted list of actionable next steps like specific courses, books, or projects relevant to their role.

### Concluding Remarks
End with an encouraging and motivational closing statement, reinforcing their value and your support for their growth.`,
		role, score, total, role)
}
