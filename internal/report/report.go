// Package report renders a scored questionnaire as a PDF.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/decisionmotor/maturity/internal/advisor"
	"github.com/decisionmotor/maturity/internal/questionbank"
	"github.com/decisionmotor/maturity/internal/respondent"
	"github.com/decisionmotor/maturity/internal/scoring"
)

// Document is everything a report shows.
type Document struct {
	SubmissionID    string
	Respondent      respondent.Respondent
	Timestamp       time.Time
	Bank            *questionbank.Bank
	Answers         []scoring.Answer
	Categories      []scoring.CategorySummary
	Recommendations *advisor.Recommendations
}

// TimestampLayout is the date format printed in the header.
const TimestampLayout = "2006-01-02 15:04:05"

// FileName returns the report file name for a respondent at t, e.g.
// maturity_report_ana_perez_20250304_103000.pdf.
func FileName(r respondent.Respondent, t time.Time) string {
	return fmt.Sprintf("maturity_report_%s_%s.pdf", r.Slug(), t.Format("20060102_150405"))
}

// Bytes renders doc to memory.
func Bytes(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders doc into dir, creating it if needed, and returns the
// written path.
func WriteFile(dir string, doc Document) (string, error) {
	data, err := Bytes(doc)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, FileName(doc.Respondent, doc.Timestamp))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
