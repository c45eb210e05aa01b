// Package scoring turns questionnaire selections into maturity levels and
// folds per-question levels into per-category means.
package scoring

import (
	"errors"
	"fmt"
)

// Level is a maturity level between MinLevel and MaxLevel.
type Level int

const (
	MinLevel Level = 1
	MaxLevel Level = 5
)

// Valid reports whether l is inside the 1..5 scale.
func (l Level) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}

// ErrNoSelections is returned when a sub-question score is requested without
// any sub-answers.
var ErrNoSelections = errors.New("no selections")

// Score is the outcome for a single question.
type Score struct {
	Average float64
	Level   Level
}

// Classify maps an average of 1-based sub-answer indices to a level.
// The buckets are not evenly spaced: [1,2) [2,3) [3,3.5) [3.5,4.5) [4.5,∞).
func Classify(avg float64) Level {
	switch {
	case avg < 2.0:
		return 1
	case avg < 3.0:
		return 2
	case avg < 3.5:
		return 3
	case avg < 4.5:
		return 4
	default:
		return 5
	}
}

// ScoreSingle scores a single-choice question. The selected 1-based index is
// both the average and the level; Classify is not consulted.
func ScoreSingle(index int) (Score, error) {
	l := Level(index)
	if !l.Valid() {
		return Score{}, fmt.Errorf("option %d out of range %d..%d", index, MinLevel, MaxLevel)
	}
	return Score{Average: float64(index), Level: l}, nil
}

// ScoreSubQuestions scores a question from its sub-answers: the mean of the
// 1-based indices, classified into a level.
func ScoreSubQuestions(indices []int) (Score, error) {
	if len(indices) == 0 {
		return Score{}, ErrNoSelections
	}
	sum := 0
	for i, idx := range indices {
		if idx < 1 {
			return Score{}, fmt.Errorf("sub-question %d: option %d out of range", i+1, idx)
		}
		sum += idx
	}
	avg := float64(sum) / float64(len(indices))
	return Score{Average: avg, Level: Classify(avg)}, nil
}
