package scoring

// Answer is the scored result for one question.
type Answer struct {
	Category string
	Variable string
	Average  float64
	Level    Level
	Note     string
}

// CategorySummary is the unweighted mean level of every answer in a category.
type CategorySummary struct {
	Category  string
	Mean      float64
	Count     int
	Variables []string
}

// Aggregate groups answers by category, preserving first-seen order, and
// averages their levels. Averages are ignored; every answer weighs the same
// regardless of how many sub-questions produced it.
func Aggregate(answers []Answer) []CategorySummary {
	var out []CategorySummary
	index := make(map[string]int)
	sums := make(map[string]int)

	for _, a := range answers {
		i, ok := index[a.Category]
		if !ok {
			i = len(out)
			index[a.Category] = i
			out = append(out, CategorySummary{Category: a.Category})
		}
		out[i].Count++
		out[i].Variables = append(out[i].Variables, a.Variable)
		sums[a.Category] += int(a.Level)
	}

	for i := range out {
		out[i].Mean = float64(sums[out[i].Category]) / float64(out[i].Count)
	}
	return out
}

// OverallMean is the mean level across all answers, or 0 for none.
func OverallMean(answers []Answer) float64 {
	if len(answers) == 0 {
		return 0
	}
	sum := 0
	for _, a := range answers {
		sum += int(a.Level)
	}
	return float64(sum) / float64(len(answers))
}
