package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Response is one scored question inside a submission. Rows are written once
// and never updated.
type Response struct {
	ent.Schema
}

func (Response) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (Response) Fields() []ent.Field {
	return []ent.Field{
		field.String("submission_id").
			NotEmpty().
			Immutable().
			Comment("UUID of the submission this answer belongs to"),
		field.String("respondent_name").
			Immutable(),
		field.String("respondent_email").
			Default("").
			Immutable(),
		field.String("company").
			Immutable(),
		field.String("category").
			Immutable(),
		field.String("variable").
			Immutable(),
		field.Float("average").
			Immutable().
			Comment("Mean of 1-based option indices, or the single choice"),
		field.Int("level").
			Range(1, 5).
			Immutable().
			Comment("Maturity level 1-5"),
		field.Text("note").
			Default("").
			Immutable().
			Comment("Free-text remark entered by the respondent"),
	}
}

func (Response) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("submission_id", "variable").Unique(),
		index.Fields("company"),
		index.Fields("category"),
	}
}
