package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decisionmotor/maturity/internal/questionbank"
	"github.com/decisionmotor/maturity/internal/scoring"
)

func testBank() *questionbank.Bank {
	opts := []string{"one", "two", "three", "four", "five"}
	return &questionbank.Bank{
		Title: "Test",
		Questions: []questionbank.Question{
			{Category: "Data", Variable: "single", Description: "d", Options: opts},
			{
				Category: "Models", Variable: "subs", Description: "d", Options: opts,
				SubQuestions: []questionbank.SubQuestion{
					{Text: "a", Options: opts},
					{Text: "b", Options: opts},
					{Text: "c", Options: opts},
					{Text: "d", Options: opts},
				},
			},
			{Category: "Data", Variable: "other", Description: "d", Options: opts},
		},
	}
}

func fill(t *testing.T, f *Form) {
	t.Helper()
	require.NoError(t, f.Select("single", Single, 4))
	for i, v := range []int{1, 2, 3, 4} {
		require.NoError(t, f.Select("subs", i, v))
	}
	require.NoError(t, f.Select("other", Single, 2))
}

func TestEvaluate_Complete(t *testing.T) {
	f := New(testBank())
	fill(t, f)
	f.SetNote("subs", "  needs work  ")

	res := f.Evaluate()
	require.True(t, res.Complete())
	require.Len(t, res.Answers, 3)

	assert.Equal(t, scoring.Answer{Category: "Data", Variable: "single", Average: 4, Level: 4}, res.Answers[0])
	assert.InDelta(t, 2.5, res.Answers[1].Average, 1e-9)
	assert.Equal(t, scoring.Level(2), res.Answers[1].Level)
	assert.Equal(t, "needs work", res.Answers[1].Note)

	require.Len(t, res.Categories, 2)
	assert.Equal(t, "Data", res.Categories[0].Category)
	assert.InDelta(t, 3.0, res.Categories[0].Mean, 1e-9)
	assert.Equal(t, "Models", res.Categories[1].Category)
	assert.InDelta(t, 2.0, res.Categories[1].Mean, 1e-9)
}

func TestEvaluate_Idempotent(t *testing.T) {
	f := New(testBank())
	fill(t, f)
	first := f.Evaluate()
	second := f.Evaluate()
	assert.Equal(t, first, second)
}

func TestSubmit_Incomplete(t *testing.T) {
	f := New(testBank())
	require.NoError(t, f.Select("single", Single, 3))
	require.NoError(t, f.Select("subs", 0, 5))

	_, err := f.Submit()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncomplete))

	var inc *IncompleteError
	require.True(t, errors.As(err, &inc))
	assert.Equal(t, []string{"subs", "other"}, inc.Missing)

	answered, total := f.Progress()
	assert.Equal(t, 1, answered)
	assert.Equal(t, 3, total)
}

func TestSubmit_Complete(t *testing.T) {
	f := New(testBank())
	fill(t, f)
	res, err := f.Submit()
	require.NoError(t, err)
	assert.Len(t, res.Answers, 3)
	assert.InDelta(t, (4.0+2.0+2.0)/3.0, res.Overall(), 1e-9)
}

func TestSelect_Errors(t *testing.T) {
	f := New(testBank())
	tests := []struct {
		name     string
		variable string
		sub      int
		option   int
	}{
		{"unknown variable", "nope", Single, 1},
		{"option too high", "single", Single, 6},
		{"option zero", "single", Single, 0},
		{"single on sub question", "subs", Single, 1},
		{"sub out of range", "subs", 4, 1},
		{"sub on single question", "single", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := f.Select(tt.variable, tt.sub, tt.option); err == nil {
				t.Error("expected error")
			}
		})
	}
	assert.Len(t, f.Missing(), 3)
}

func TestSelection_Overwrite(t *testing.T) {
	f := New(testBank())
	require.NoError(t, f.Select("single", Single, 1))
	require.NoError(t, f.Select("single", Single, 5))
	assert.Equal(t, 5, f.Selection("single", Single))
	assert.Equal(t, 0, f.Selection("subs", 2))

	f.SetNote("single", "x")
	f.SetNote("single", "   ")
	assert.Equal(t, "", f.Note("single"))
}
