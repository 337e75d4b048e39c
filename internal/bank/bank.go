package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"appraisals/internal/model"
)

// Bank is the static question bank: role name -> ordered questions.
// It is loaded once at startup and never mutated afterwards, so it is safe
// to share across requests without locking.
type Bank map[string][]model.Question

// Load reads the question bank from a JSON file of the form
// {"Role Name": [{"question": ..., "options": [...], "answer": ...}, ...]}.
func Load(path string) (Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank %s: %w", path, err)
	}

	var b Bank
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse question bank %s: %w", path, err)
	}

	return b, nil
}

// Roles returns the role names in sorted order.
func (b Bank) Roles() []string {
	roles := make([]string, 0, len(b))
	for role := range b {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// Has reports whether the bank defines the role. Lookup is case-sensitive.
func (b Bank) Has(role string) bool {
	_, ok := b[role]
	return ok
}

// Questions returns the role's questions in bank order.
func (b Bank) Questions(role string) []model.Question {
	return b[role]
}

// Size returns the number of questions defined for a role.
func (b Bank) Size(role string) int {
	return len(b[role])
}

// TotalQuestions returns the number of questions across all roles.
func (b Bank) TotalQuestions() int {
	total := 0
	for _, qs := range b {
		total += len(qs)
	}
	return total
}
