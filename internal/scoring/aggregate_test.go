package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	answers := []Answer{
		{Category: "Data", Variable: "d1", Level: 1, Average: 1.75},
		{Category: "Models", Variable: "m1", Level: 2, Average: 2.9},
		{Category: "Data", Variable: "d2", Level: 3, Average: 3},
		{Category: "Models", Variable: "m2", Level: 2, Average: 2},
		{Category: "Data", Variable: "d3", Level: 5, Average: 4.5},
	}

	got := Aggregate(answers)
	require.Len(t, got, 2)

	assert.Equal(t, "Data", got[0].Category)
	assert.InDelta(t, 3.0, got[0].Mean, 1e-9)
	assert.Equal(t, 3, got[0].Count)
	assert.Equal(t, []string{"d1", "d2", "d3"}, got[0].Variables)

	assert.Equal(t, "Models", got[1].Category)
	assert.InDelta(t, 2.0, got[1].Mean, 1e-9)
}

func TestAggregate_UsesLevelsNotAverages(t *testing.T) {
	got := Aggregate([]Answer{
		{Category: "C", Level: 2, Average: 2.99},
		{Category: "C", Level: 4, Average: 3.5},
	})
	require.Len(t, got, 1)
	assert.InDelta(t, 3.0, got[0].Mean, 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	if got := Aggregate(nil); len(got) != 0 {
		t.Errorf("Aggregate(nil) = %v, want empty", got)
	}
}

func TestOverallMean(t *testing.T) {
	assert.Equal(t, 0.0, OverallMean(nil))
	assert.InDelta(t, 2.5, OverallMean([]Answer{{Level: 2}, {Level: 3}}), 1e-9)
}
