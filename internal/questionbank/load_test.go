package questionbank

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const validJSON = `{
  "title": "Sample",
  "questions": [
    {
      "category": "Data",
      "variable": "Quality",
      "description": "How good is the data",
      "options": ["a", "b", "c", "d", "e"]
    },
    {
      "category": "Models",
      "variable": "Usage",
      "description": "How models are used",
      "options": ["a", "b", "c", "d", "e"],
      "sub_questions": [
        {"text": "First?", "options": ["no", "yes"]},
        {"text": "Second?", "options": ["1", "2", "3", "4", "5"]}
      ]
    }
  ]
}`

func TestLoad_JSON(t *testing.T) {
	bank, err := Load(writeFile(t, "bank.json", validJSON))
	require.NoError(t, err)

	assert.Equal(t, "Sample", bank.Title)
	require.Len(t, bank.Questions, 2)
	assert.False(t, bank.Questions[0].HasSubQuestions())
	assert.True(t, bank.Questions[1].HasSubQuestions())
	assert.Equal(t, []string{"Data", "Models"}, bank.Categories())

	q, ok := bank.Question("Usage")
	require.True(t, ok)
	assert.Equal(t, "c", q.LevelLabel(3))
	assert.Equal(t, "", q.LevelLabel(6))
}

func TestLoad_YAML(t *testing.T) {
	content := `
questions:
  - category: " Data "
    variable: Quality
    description: How good is the data
    options: [a, b, c, d, e]
`
	bank, err := Load(writeFile(t, "bank.yaml", content))
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, bank.Title)
	assert.Equal(t, "Data", bank.Questions[0].Category)
}

func TestLoad_LegacyArray(t *testing.T) {
	content := `[
  {
    "categoria": "Datos",
    "variable": "Calidad",
    "descripcion": "Calidad de datos",
    "opciones": ["1", "2", "3", "4", "5"],
    "subpreguntas": [{"texto": "¿Se valida?", "opciones": ["Nunca", "Siempre"]}]
  }
]`
	bank, err := Load(writeFile(t, "legacy.json", content))
	require.NoError(t, err)
	require.Len(t, bank.Questions, 1)
	q := bank.Questions[0]
	assert.Equal(t, "Datos", q.Category)
	require.Len(t, q.SubQuestions, 1)
	assert.Equal(t, "¿Se valida?", q.SubQuestions[0].Text)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{
			name: "duplicate variable",
			file: "dup.yaml",
			content: `
questions:
  - {category: A, variable: X, description: d, options: [a, b, c, d, e]}
  - {category: B, variable: X, description: d, options: [a, b, c, d, e]}
`,
			wantErr: "duplicate variable",
		},
		{
			name: "wrong option count",
			file: "opts.yaml",
			content: `
questions:
  - {category: A, variable: X, description: d, options: [a, b, c]}
`,
			wantErr: "expected 5 options",
		},
		{
			name: "sub-question with one option",
			file: "sub.yaml",
			content: `
questions:
  - category: A
    variable: X
    description: d
    options: [a, b, c, d, e]
    sub_questions:
      - {text: t, options: [only]}
`,
			wantErr: "at least 2 options",
		},
		{
			name:    "no questions",
			file:    "empty.yaml",
			content: "title: Empty\nquestions: []\n",
			wantErr: "no questions defined",
		},
		{
			name:    "unknown yaml field",
			file:    "unknown.yaml",
			content: "questions: []\nweights: {}\n",
			wantErr: "field weights not found",
		},
		{
			name:    "json schema violation",
			file:    "schema.json",
			content: `{"questions": [{"category": "A", "variable": "X", "description": "d", "options": ["a"]}]}`,
			wantErr: "invalid question bank",
		},
		{
			name:    "multiple yaml documents",
			file:    "multi.yaml",
			content: "questions:\n  - {category: A, variable: X, description: d, options: [a, b, c, d, e]}\n---\ntitle: again\n",
			wantErr: "multiple documents",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_WrapsSentinel(t *testing.T) {
	err := Validate(&Bank{})
	if !errors.Is(err, ErrInvalidBank) {
		t.Errorf("got %v, want ErrInvalidBank", err)
	}
}

func TestDefault(t *testing.T) {
	var bank *Bank
	require.NotPanics(t, func() { bank = Default() })
	assert.NotEmpty(t, bank.Questions)

	withSubs := 0
	for _, q := range bank.Questions {
		if q.HasSubQuestions() {
			withSubs++
		}
	}
	assert.Positive(t, withSubs)
	assert.Less(t, withSubs, len(bank.Questions))
}
