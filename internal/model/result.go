package model

// Result is the outcome of a scored assessment.
type Result struct {
	Role           string  `json:"role"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"totalQuestions"`
	Percentage     float64 `json:"percentage"`
	Feedback       string  `json:"feedback"`
}

// RoleStats compares how many questions the index holds for a role against
// how many the question bank defines.
type RoleStats struct {
	Role             string `json:"role"`
	IndexedQuestions int64  `json:"totalQuestionsAvailable"`
	BankQuestions    int    `json:"questionsInKnowledgeBase"`
}
