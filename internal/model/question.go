package model

import (
	"strconv"
	"strings"
)

// Question is a single multiple-choice appraisal question.
type Question struct {
	Text    string   `json:"question" bson:"question"`
	Options []string `json:"options" bson:"options"`
	Answer  string   `json:"answer" bson:"answer"`
}

// IndexEntry is the persisted form of a question in the index collection.
// The id is stable and re-derivable from (role, ordinal), so reconciliation
// can tell whether the index already holds the bank's content.
type IndexEntry struct {
	ID       string   `bson:"_id"`
	Role     string   `bson:"role"`
	Question string   `bson:"question"`
	Options  []string `bson:"options"`
	Answer   string   `bson:"answer"`
}

// EntryID derives the index id for a question: the role with spaces replaced
// by underscores, followed by the question's ordinal within its role.
func EntryID(role string, ordinal int) string {
	return strings.ReplaceAll(role, " ", "_") + "_" + strconv.Itoa(ordinal)
}

// NewIndexEntry builds the index entry for the ordinal-th question of a role.
func NewIndexEntry(role string, ordinal int, q Question) IndexEntry {
	return IndexEntry{
		ID:       EntryID(role, ordinal),
		Role:     role,
		Question: q.Text,
		Options:  q.Options,
		Answer:   q.Answer,
	}
}

// ToQuestion reconstructs the bank-shaped question from an index entry.
func (e IndexEntry) ToQuestion() Question {
	return Question{
		Text:    e.Question,
		Options: e.Options,
		Answer:  e.Answer,
	}
}
