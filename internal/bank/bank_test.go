package bank

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBankFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knowledge_base.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeBankFile(t, `{
		"Engineer": [
			{"question": "Q1?", "options": ["A", "B"], "answer": "A"},
			{"question": "Q2?", "options": ["C", "D"], "answer": "D"}
		],
		"Designer": [
			{"question": "Q3?", "options": ["E", "F"], "answer": "E"}
		]
	}`)

	b, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Designer", "Engineer"}, b.Roles())
	assert.True(t, b.Has("Engineer"))
	assert.False(t, b.Has("engineer"), "role lookup is case-sensitive")
	assert.Equal(t, 2, b.Size("Engineer"))
	assert.Equal(t, 3, b.TotalQuestions())

	qs := b.Questions("Engineer")
	require.Len(t, qs, 2)
	assert.Equal(t, "Q1?", qs[0].Text)
	assert.Equal(t, []string{"A", "B"}, qs[0].Options)
	assert.Equal(t, "D", qs[1].Answer)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeBankFile(t, `{"Engineer": [`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestQuestionsUnknownRole(t *testing.T) {
	path := writeBankFile(t, `{}`)
	b, err := Load(path)
	require.NoError(t, err)

	assert.Empty(t, b.Questions("Ghost"))
	assert.Equal(t, 0, b.Size("Ghost"))
}
