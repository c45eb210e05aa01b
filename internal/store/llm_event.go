package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo backed by the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var llmEventColumns = []string{
	"id", "sequence", "timestamp", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx, r.db)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(llmEventsTable).
		Columns(llmEventColumns[1:]...).
		Values(seqNum, time.Now().UTC(), data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
			data.ErrorMessage, data.RequestBody, data.ResponseBody).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	sel := builder().Select(llmEventColumns...).From(entsql.Table(llmEventsTable))
	query, args := applyOpts(sel, opts, true).Query()
	return r.scan(ctx, query, args)
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error) {
	query, args := builder().Select(llmEventColumns...).
		From(entsql.Table(llmEventsTable)).
		Where(entsql.EQ("id", id)).
		Query()
	events, err := r.scan(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *eventRepo) scan(ctx context.Context, query string, args []any) ([]LLMRequestEventRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEventRecord
	for rows.Next() {
		var e LLMRequestEventRecord
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.Provider, &e.Model,
			&e.Purpose, &e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
			&e.ErrorMessage, &e.RequestBody, &e.ResponseBody); err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	return r.usage(ctx, "purpose")
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsageStats, error) {
	return r.usage(ctx, "model")
}

func (r *eventRepo) usage(ctx context.Context, group string) ([]LLMUsageStats, error) {
	query, args := builder().Select(
		group,
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As("COALESCE(SUM(input_tokens), 0)", "input_tokens"),
		entsql.As("COALESCE(SUM(output_tokens), 0)", "output_tokens"),
		entsql.As("CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)", "avg_latency_ms"),
	).
		From(entsql.Table(llmEventsTable)).
		GroupBy(group).
		OrderBy(entsql.Desc("calls")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage by %s: %w", group, err)
	}
	defer rows.Close()

	var out []LLMUsageStats
	for rows.Next() {
		var (
			s   LLMUsageStats
			key string
		)
		if err := rows.Scan(&key, &s.Calls, &s.InputTokens, &s.OutputTokens, &s.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		if group == "purpose" {
			s.Purpose = key
		} else {
			s.Model = key
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
