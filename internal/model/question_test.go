package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryID(t *testing.T) {
	assert.Equal(t, "Engineer_0", EntryID("Engineer", 0))
	assert.Equal(t, "HR_Manager_7", EntryID("HR Manager", 7))
	assert.Equal(t, "Senior_Data_Analyst_12", EntryID("Senior Data Analyst", 12))
}

func TestIndexEntryRoundTrip(t *testing.T) {
	q := Question{
		Text:    "Continue?",
		Options: []string{"Yes", "No", "Maybe"},
		Answer:  "Maybe",
	}

	entry := NewIndexEntry("HR Manager", 3, q)
	assert.Equal(t, "HR_Manager_3", entry.ID)
	assert.Equal(t, "HR Manager", entry.Role)

	got := entry.ToQuestion()
	assert.Equal(t, q, got, "options must survive the index encoding in order")
}
