// Package advisor asks an LLM for concrete next steps per category based on
// a scored questionnaire.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/decisionmotor/maturity/internal/llm"
	"github.com/decisionmotor/maturity/internal/questionbank"
	"github.com/decisionmotor/maturity/internal/scoring"
)

// Purpose labels advisor calls in the LLM audit log.
const Purpose = "recommendations"

// Config tunes the request.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard request settings.
func DefaultConfig() Config {
	return Config{MaxTokens: 2048, Temperature: 0.3}
}

// Recommendations is the advisor output.
type Recommendations struct {
	Summary    string           `json:"summary"`
	Categories []CategoryAdvice `json:"categories"`
}

// CategoryAdvice holds the actions suggested for one category.
type CategoryAdvice struct {
	Category string   `json:"category"`
	Actions  []string `json:"actions"`
}

// For returns the advice for category, if any.
func (r *Recommendations) For(category string) (CategoryAdvice, bool) {
	if r == nil {
		return CategoryAdvice{}, false
	}
	for _, c := range r.Categories {
		if c.Category == category {
			return c, true
		}
	}
	return CategoryAdvice{}, false
}

// Advisor generates recommendations through an llm.Provider.
type Advisor struct {
	provider llm.Provider
	cfg      Config
}

// New creates an Advisor.
func New(provider llm.Provider, cfg Config) *Advisor {
	return &Advisor{provider: provider, cfg: cfg}
}

// Advise requests recommendations for the scored answers. Categories the
// model returns that are not in the assessment are dropped.
func (a *Advisor) Advise(ctx context.Context, bank *questionbank.Bank, answers []scoring.Answer) (*Recommendations, error) {
	if len(answers) == 0 {
		return nil, fmt.Errorf("advise: no answers")
	}
	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.UserPrompt(systemPrompt, buildUserMessage(bank, answers), Schema, a.cfg.MaxTokens)
	req.Temperature = a.cfg.Temperature

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}

	var out Recommendations
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}

	known := make(map[string]bool)
	for _, s := range scoring.Aggregate(answers) {
		known[s.Category] = true
	}
	kept := out.Categories[:0]
	for _, c := range out.Categories {
		if known[c.Category] && len(c.Actions) > 0 {
			kept = append(kept, c)
		}
	}
	out.Categories = kept
	return &out, nil
}

const systemPrompt = `You are a consultant assessing the maturity of an organization's decision engine.
Levels go from 1 (ad hoc) to 5 (optimized). For each category you receive the
current mean level and the level description of every question.
Recommend 2 or 3 concrete, actionable steps per category that would move the
organization to the next level. Be specific and brief (one sentence per action).
Use the category names exactly as given.`

func buildUserMessage(bank *questionbank.Bank, answers []scoring.Answer) string {
	var b strings.Builder
	if bank.Title != "" {
		fmt.Fprintf(&b, "Assessment: %s\n", bank.Title)
	}
	if bank.Objective != "" {
		fmt.Fprintf(&b, "Objective: %s\n", bank.Objective)
	}

	byVar := make(map[string]scoring.Answer, len(answers))
	for _, a := range answers {
		byVar[a.Variable] = a
	}

	for _, cat := range scoring.Aggregate(answers) {
		fmt.Fprintf(&b, "\n## %s (mean level %.2f)\n", cat.Category, cat.Mean)
		for _, v := range cat.Variables {
			a := byVar[v]
			q, ok := bank.Question(v)
			if !ok {
				fmt.Fprintf(&b, "- %s: level %d\n", v, a.Level)
				continue
			}
			fmt.Fprintf(&b, "- %s: level %d, \"%s\"", v, a.Level, q.LevelLabel(int(a.Level)))
			if next := q.LevelLabel(int(a.Level) + 1); next != "" {
				fmt.Fprintf(&b, "; next level: \"%s\"", next)
			}
			b.WriteString("\n")
			if a.Note != "" {
				fmt.Fprintf(&b, "  respondent note: %s\n", a.Note)
			}
		}
	}
	return b.String()
}

// Schema is the structured output requested from the model.
var Schema = &llm.Schema{
	Name:        "maturity-recommendations",
	Description: "Actions per category to reach the next maturity level",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "2-3 sentence overall assessment",
			},
			"categories": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"category": map[string]any{
							"type":        "string",
							"description": "Category name exactly as given",
						},
						"actions": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "2-3 concrete next steps",
						},
					},
					"required":             []any{"category", "actions"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"summary", "categories"},
		"additionalProperties": false,
	},
}
