package store

import (
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// applyOpts adds the QueryOpts predicates and limit to a selector and
// orders it by sequence.
func applyOpts(sel *entsql.Selector, opts QueryOpts, newestFirst bool) *entsql.Selector {
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if newestFirst {
		sel.OrderBy(entsql.Desc("sequence"))
	} else {
		sel.OrderBy(entsql.Asc("sequence"))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}
