// Package submission turns a completed form into a stored submission and a
// PDF report.
package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/log/v2"
	"github.com/google/uuid"

	"github.com/decisionmotor/maturity/internal/advisor"
	"github.com/decisionmotor/maturity/internal/form"
	"github.com/decisionmotor/maturity/internal/questionbank"
	"github.com/decisionmotor/maturity/internal/report"
	"github.com/decisionmotor/maturity/internal/respondent"
	"github.com/decisionmotor/maturity/internal/scoring"
	"github.com/decisionmotor/maturity/internal/store"
)

// ErrNotFound is returned by Rebuild for an unknown submission ID.
var ErrNotFound = errors.New("submission not found")

// Outcome describes a stored submission.
type Outcome struct {
	SubmissionID    string
	Timestamp       time.Time
	Result          form.Result
	ReportPath      string
	Recommendations *advisor.Recommendations
	// AdviceErr is set when recommendations were requested and failed. The
	// submission and report are still written.
	AdviceErr error
}

// Service wires the form, the persistent log, the optional advisor and the
// report renderer.
type Service struct {
	bank    *questionbank.Bank
	repo    store.ResponseRepo
	advisor *advisor.Advisor
	outDir  string
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithAdvisor enables LLM recommendations in reports.
func WithAdvisor(a *advisor.Advisor) Option {
	return func(s *Service) { s.advisor = a }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service that writes reports into outDir.
func New(bank *questionbank.Bank, repo store.ResponseRepo, outDir string, opts ...Option) *Service {
	s := &Service{bank: bank, repo: repo, outDir: outDir, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Bank returns the question bank the service scores against.
func (s *Service) Bank() *questionbank.Bank { return s.bank }

// Submit validates the respondent and the form, appends the submission and
// writes its report. Nothing is stored if validation fails. A report failure
// is returned after the answers were stored; the outcome then has no path.
func (s *Service) Submit(ctx context.Context, who respondent.Respondent, f *form.Form) (*Outcome, error) {
	who = who.Normalize()
	if err := who.Validate(); err != nil {
		return nil, err
	}
	res, err := f.Submit()
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		SubmissionID: uuid.NewString(),
		Timestamp:    s.now().UTC().Truncate(time.Second),
		Result:       res,
	}

	data := store.SubmissionData{
		SubmissionID:    out.SubmissionID,
		Timestamp:       out.Timestamp,
		RespondentName:  who.Name,
		RespondentEmail: who.Email,
		Company:         who.Company,
		BankTitle:       s.bank.Title,
		OverallLevel:    res.Overall(),
	}
	for _, a := range res.Answers {
		data.Responses = append(data.Responses, store.ResponseData{
			Category: a.Category,
			Variable: a.Variable,
			Average:  a.Average,
			Level:    int(a.Level),
			Note:     a.Note,
		})
	}
	if err := s.repo.AppendSubmission(ctx, data); err != nil {
		return nil, fmt.Errorf("store submission: %w", err)
	}
	log.Debug("submission stored", "id", out.SubmissionID, "company", who.Company, "answers", len(res.Answers))

	if s.advisor != nil {
		recs, err := s.advisor.Advise(ctx, s.bank, res.Answers)
		if err != nil {
			log.Warn("recommendations unavailable", "id", out.SubmissionID, "err", err)
			out.AdviceErr = err
		} else {
			out.Recommendations = recs
		}
	}

	path, err := s.render(ctx, report.Document{
		SubmissionID:    out.SubmissionID,
		Respondent:      who,
		Timestamp:       out.Timestamp,
		Bank:            s.bank,
		Answers:         res.Answers,
		Categories:      res.Categories,
		Recommendations: out.Recommendations,
	})
	if err != nil {
		return out, err
	}
	out.ReportPath = path
	return out, nil
}

// Rebuild re-renders the report of a stored submission, using the current
// bank for question descriptions, and records the new path.
func (s *Service) Rebuild(ctx context.Context, submissionID string) (string, error) {
	rec, err := s.repo.GetSubmission(ctx, submissionID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, submissionID)
	}
	answers, err := s.Answers(ctx, submissionID)
	if err != nil {
		return "", err
	}

	return s.render(ctx, report.Document{
		SubmissionID: rec.SubmissionID,
		Respondent: respondent.Respondent{
			Name:    rec.RespondentName,
			Email:   rec.RespondentEmail,
			Company: rec.Company,
		},
		Timestamp:  rec.Timestamp,
		Bank:       s.bank,
		Answers:    answers,
		Categories: scoring.Aggregate(answers),
	})
}

// Answers loads the stored answers of a submission in their original order.
func (s *Service) Answers(ctx context.Context, submissionID string) ([]scoring.Answer, error) {
	rows, err := s.repo.QueryResponses(ctx, store.ResponseFilter{SubmissionID: submissionID})
	if err != nil {
		return nil, fmt.Errorf("load responses: %w", err)
	}
	answers := make([]scoring.Answer, 0, len(rows))
	for _, r := range rows {
		answers = append(answers, scoring.Answer{
			Category: r.Category,
			Variable: r.Variable,
			Average:  r.Average,
			Level:    scoring.Level(r.Level),
			Note:     r.Note,
		})
	}
	return answers, nil
}

func (s *Service) render(ctx context.Context, doc report.Document) (string, error) {
	path, err := report.WriteFile(s.outDir, doc)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetReportPath(ctx, doc.SubmissionID, path); err != nil {
		return path, fmt.Errorf("record report path: %w", err)
	}
	log.Debug("report written", "id", doc.SubmissionID, "path", path)
	return path, nil
}
