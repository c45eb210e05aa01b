package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Submission is the header row for one completed questionnaire.
type Submission struct {
	ent.Schema
}

func (Submission) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (Submission) Fields() []ent.Field {
	return []ent.Field{
		field.String("submission_id").
			Unique().
			Immutable(),
		field.String("respondent_name").
			Immutable(),
		field.String("respondent_email").
			Default("").
			Immutable(),
		field.String("company").
			Immutable(),
		field.String("bank_title").
			Default("").
			Immutable().
			Comment("Title of the question bank answered"),
		field.Int("question_count").
			Immutable(),
		field.Float("overall_level").
			Immutable().
			Comment("Mean level across all answers"),
		field.String("report_path").
			Default("").
			Comment("PDF written for this submission, set after rendering"),
	}
}

func (Submission) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("company"),
	}
}
