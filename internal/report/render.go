package report

import (
	"fmt"
	"io"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"github.com/decisionmotor/maturity/internal/questionbank"
	"github.com/decisionmotor/maturity/internal/scoring"
)

const (
	fontFamily = "Helvetica"
	lineHeight = 6.0
)

// page wraps an fpdf document with the UTF-8 to cp1252 translator the core
// fonts need.
type page struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (p *page) text(s string) string { return p.tr(s) }

// Render writes the PDF for doc to w.
func Render(w io.Writer, doc Document) error {
	if len(doc.Answers) == 0 {
		return fmt.Errorf("render report: no answers")
	}
	if doc.Bank == nil {
		doc.Bank = &questionbank.Bank{Title: questionbank.DefaultTitle}
	}
	if doc.Categories == nil {
		doc.Categories = scoring.Aggregate(doc.Answers)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	p := &page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.SetTitle(doc.Bank.Title, true)
	pdf.SetAuthor(doc.Respondent.Name, true)
	pdf.SetSubject(doc.Respondent.Company, true)
	pdf.SetCreator("maturity", false)
	pdf.SetCreationDate(doc.Timestamp)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")
	pdf.SetHeaderFunc(func() { p.header(doc) })
	pdf.SetFooterFunc(p.footer)

	pdf.AddPage()
	p.questions(doc)

	pdf.AddPage()
	p.summary(doc)

	pdf.AddPage()
	p.charts(doc)

	if doc.Recommendations != nil && (doc.Recommendations.Summary != "" || len(doc.Recommendations.Categories) > 0) {
		pdf.AddPage()
		p.recommendations(doc)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func (p *page) header(doc Document) {
	pdf := p.pdf
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, 9, p.text(doc.Bank.Title), "", 1, "C", false, 0, "")

	pdf.SetFont(fontFamily, "", 9)
	parts := []string{
		"Respondent: " + doc.Respondent.Name,
		"Company: " + doc.Respondent.Company,
	}
	if doc.Respondent.Email != "" {
		parts = append(parts, "Email: "+doc.Respondent.Email)
	}
	parts = append(parts, "Date: "+doc.Timestamp.Format(TimestampLayout))
	pdf.CellFormat(0, 6, p.text(strings.Join(parts, "  |  ")), "", 1, "C", false, 0, "")

	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(left, pdf.GetY()+1, pageW-right, pdf.GetY()+1)
	pdf.Ln(6)
}

func (p *page) footer() {
	pdf := p.pdf
	pdf.SetY(-12)
	pdf.SetFont(fontFamily, "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func (p *page) heading(s string) {
	p.pdf.SetFont(fontFamily, "B", 12)
	p.pdf.CellFormat(0, 8, p.text(s), "", 1, "L", false, 0, "")
	p.pdf.Ln(1)
}

func (p *page) body(s string) {
	p.pdf.SetFont(fontFamily, "", 10)
	p.pdf.MultiCell(0, lineHeight, p.text(s), "", "L", false)
}

func (p *page) questions(doc Document) {
	if doc.Bank.Objective != "" {
		p.pdf.SetFont(fontFamily, "I", 10)
		p.pdf.MultiCell(0, lineHeight, p.text(doc.Bank.Objective), "", "L", false)
		p.pdf.Ln(4)
	}

	for _, a := range doc.Answers {
		q, ok := doc.Bank.Question(a.Variable)

		p.heading(fmt.Sprintf("%s (%s)", a.Variable, a.Category))
		if ok {
			p.body(q.Description)
		}

		p.pdf.SetFont(fontFamily, "B", 10)
		p.pdf.CellFormat(0, lineHeight,
			p.text(fmt.Sprintf("Level obtained: %d (score %.2f)", a.Level, a.Average)),
			"", 1, "L", false, 0, "")

		if ok {
			if label := q.LevelLabel(int(a.Level)); label != "" {
				p.body("Level detail: " + label)
			}
		}
		if a.Note != "" {
			p.pdf.SetFont(fontFamily, "I", 10)
			p.pdf.MultiCell(0, lineHeight, p.text("Note: "+a.Note), "", "L", false)
		}
		p.pdf.Ln(4)
	}
}

func (p *page) summary(doc Document) {
	pdf := p.pdf
	p.heading("Summary by category")

	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(230, 236, 245)
	pdf.CellFormat(110, 8, p.text("Category"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Questions", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 8, "Mean level", "1", 1, "C", true, 0, "")

	pdf.SetFont(fontFamily, "", 10)
	for _, c := range doc.Categories {
		pdf.CellFormat(110, 7, p.text(c.Category), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", c.Count), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", c.Mean), "1", 1, "C", false, 0, "")
	}

	pdf.SetFont(fontFamily, "B", 10)
	pdf.CellFormat(140, 8, "Overall", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", scoring.OverallMean(doc.Answers)), "1", 1, "C", false, 0, "")
}

func (p *page) recommendations(doc Document) {
	recs := doc.Recommendations
	p.heading("Recommendations")
	if recs.Summary != "" {
		p.body(recs.Summary)
		p.pdf.Ln(3)
	}
	for _, c := range doc.Categories {
		advice, ok := recs.For(c.Category)
		if !ok {
			continue
		}
		p.pdf.SetFont(fontFamily, "B", 11)
		p.pdf.CellFormat(0, 7, p.text(fmt.Sprintf("%s (level %.2f)", c.Category, c.Mean)), "", 1, "L", false, 0, "")
		for _, action := range advice.Actions {
			p.body("- " + action)
		}
		p.pdf.Ln(2)
	}
}
