package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// responseRepo implements ResponseRepo on top of database/sql, with queries
// built by ent's SQL dialect builder.
type responseRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var submissionColumns = []string{
	"id", "sequence", "timestamp", "submission_id", "respondent_name",
	"respondent_email", "company", "bank_title", "question_count",
	"overall_level", "report_path",
}

var responseColumns = []string{
	"id", "sequence", "timestamp", "submission_id", "respondent_name",
	"respondent_email", "company", "category", "variable", "average",
	"level", "note",
}

func (r *responseRepo) AppendSubmission(ctx context.Context, data SubmissionData) (err error) {
	if data.SubmissionID == "" {
		return fmt.Errorf("append submission: empty submission id")
	}
	if len(data.Responses) == 0 {
		return fmt.Errorf("append submission: no responses")
	}
	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	ts = ts.UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	seqNum, err := r.seq.Next(ctx, tx)
	if err != nil {
		return err
	}
	query, args := builder().Insert(submissionsTable).
		Columns("sequence", "timestamp", "submission_id", "respondent_name",
			"respondent_email", "company", "bank_title", "question_count",
			"overall_level", "report_path").
		Values(seqNum, ts, data.SubmissionID, data.RespondentName,
			data.RespondentEmail, data.Company, data.BankTitle, len(data.Responses),
			data.OverallLevel, "").
		Query()
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save submission: %w", err)
	}

	for _, resp := range data.Responses {
		if resp.Level < 1 || resp.Level > 5 {
			return fmt.Errorf("save response %s: level %d out of range", resp.Variable, resp.Level)
		}
		seqNum, err = r.seq.Next(ctx, tx)
		if err != nil {
			return err
		}
		query, args := builder().Insert(responsesTable).
			Columns("sequence", "timestamp", "submission_id", "respondent_name",
				"respondent_email", "company", "category", "variable", "average",
				"level", "note").
			Values(seqNum, ts, data.SubmissionID, data.RespondentName,
				data.RespondentEmail, data.Company, resp.Category, resp.Variable,
				resp.Average, resp.Level, resp.Note).
			Query()
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save response %s: %w", resp.Variable, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit submission: %w", err)
	}
	return nil
}

func (r *responseRepo) SetReportPath(ctx context.Context, submissionID, path string) error {
	query, args := builder().Update(submissionsTable).
		Set("report_path", path).
		Where(entsql.EQ("submission_id", submissionID)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update report path: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update report path: submission %s not found", submissionID)
	}
	return nil
}

func (r *responseRepo) QuerySubmissions(ctx context.Context, opts QueryOpts) ([]SubmissionRecord, error) {
	sel := builder().Select(submissionColumns...).From(entsql.Table(submissionsTable))
	query, args := applyOpts(sel, opts, true).Query()
	return r.scanSubmissions(ctx, query, args)
}

func (r *responseRepo) GetSubmission(ctx context.Context, submissionID string) (*SubmissionRecord, error) {
	query, args := builder().Select(submissionColumns...).
		From(entsql.Table(submissionsTable)).
		Where(entsql.EQ("submission_id", submissionID)).
		Query()
	recs, err := r.scanSubmissions(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

func (r *responseRepo) scanSubmissions(ctx context.Context, query string, args []any) ([]SubmissionRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var out []SubmissionRecord
	for rows.Next() {
		var s SubmissionRecord
		if err := rows.Scan(&s.ID, &s.Sequence, &s.Timestamp, &s.SubmissionID,
			&s.RespondentName, &s.RespondentEmail, &s.Company, &s.BankTitle,
			&s.QuestionCount, &s.OverallLevel, &s.ReportPath); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *responseRepo) QueryResponses(ctx context.Context, filter ResponseFilter) ([]ResponseRecord, error) {
	sel := builder().Select(responseColumns...).From(entsql.Table(responsesTable))
	if filter.SubmissionID != "" {
		sel.Where(entsql.EQ("submission_id", filter.SubmissionID))
	}
	if filter.Company != "" {
		sel.Where(entsql.EQ("company", filter.Company))
	}
	if filter.Category != "" {
		sel.Where(entsql.EQ("category", filter.Category))
	}
	query, args := applyOpts(sel, filter.QueryOpts, false).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	var out []ResponseRecord
	for rows.Next() {
		var rec ResponseRecord
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.SubmissionID,
			&rec.RespondentName, &rec.RespondentEmail, &rec.Company, &rec.Category,
			&rec.Variable, &rec.Average, &rec.Level, &rec.Note); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
