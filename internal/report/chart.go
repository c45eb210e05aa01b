package report

import (
	"fmt"
	"strings"

	"github.com/decisionmotor/maturity/internal/scoring"
)

type rgb struct{ r, g, b int }

var palette = []rgb{
	{52, 101, 164},
	{78, 154, 6},
	{245, 121, 0},
	{117, 80, 123},
	{204, 0, 0},
	{193, 125, 17},
	{6, 152, 154},
}

// plotArea is a chart frame in page coordinates with a 0..MaxLevel y axis.
type plotArea struct {
	x, y, w, h float64
}

func (a plotArea) levelY(v float64) float64 {
	return a.y + a.h - a.h*v/float64(scoring.MaxLevel)
}

func (p *page) charts(doc Document) {
	left, _, right, _ := p.pdf.GetMargins()
	pageW, _ := p.pdf.GetPageSize()
	width := pageW - left - right - 12

	p.heading("Mean level by category")
	top := p.pdf.GetY() + 2
	bars := plotArea{x: left + 12, y: top, w: width, h: 70}
	p.axes(bars)
	p.barChart(bars, doc.Categories)

	p.pdf.SetY(bars.y + bars.h + 38)
	p.heading("Level by question")
	top = p.pdf.GetY() + 2
	scatter := plotArea{x: left + 12, y: top, w: width, h: 70}
	p.axes(scatter)
	p.scatterChart(scatter, doc.Categories, doc.Answers)
}

// axes draws the frame, horizontal grid lines and y labels.
func (p *page) axes(a plotArea) {
	pdf := p.pdf
	pdf.SetFont(fontFamily, "", 8)
	pdf.SetLineWidth(0.1)
	for lvl := 0; lvl <= int(scoring.MaxLevel); lvl++ {
		y := a.levelY(float64(lvl))
		pdf.SetDrawColor(220, 220, 220)
		pdf.Line(a.x, y, a.x+a.w, y)
		pdf.Text(a.x-5, y+1, fmt.Sprintf("%d", lvl))
	}
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.3)
	pdf.Line(a.x, a.y, a.x, a.y+a.h)
	pdf.Line(a.x, a.y+a.h, a.x+a.w, a.y+a.h)
}

// shortLabel caps an axis label at 28 characters, cutting on rune
// boundaries.
func shortLabel(label string) string {
	r := []rune(label)
	if len(r) <= 28 {
		return label
	}
	return strings.TrimSpace(string(r[:27])) + "..."
}

// categoryLabel writes a label rotated 45 degrees under slot center cx.
func (p *page) categoryLabel(a plotArea, cx float64, label string) {
	pdf := p.pdf
	pdf.SetFont(fontFamily, "", 8)
	pdf.SetTextColor(0, 0, 0)
	label = shortLabel(label)
	y := a.y + a.h + 4
	pdf.TransformBegin()
	pdf.TransformRotate(45, cx, y)
	pdf.Text(cx-pdf.GetStringWidth(p.text(label)), y, p.text(label))
	pdf.TransformEnd()
}

func (p *page) barChart(a plotArea, cats []scoring.CategorySummary) {
	if len(cats) == 0 {
		return
	}
	pdf := p.pdf
	slot := a.w / float64(len(cats))
	barW := slot * 0.6

	for i, c := range cats {
		col := palette[i%len(palette)]
		cx := a.x + slot*(float64(i)+0.5)
		top := a.levelY(c.Mean)

		pdf.SetFillColor(col.r, col.g, col.b)
		pdf.Rect(cx-barW/2, top, barW, a.y+a.h-top, "F")

		pdf.SetFont(fontFamily, "B", 8)
		value := fmt.Sprintf("%.2f", c.Mean)
		pdf.Text(cx-pdf.GetStringWidth(value)/2, top-1.5, value)

		p.categoryLabel(a, cx, c.Category)
	}
}

// scatterChart plots each question's level in its category column, spread
// horizontally so that equal levels stay visible.
func (p *page) scatterChart(a plotArea, cats []scoring.CategorySummary, answers []scoring.Answer) {
	if len(cats) == 0 {
		return
	}
	pdf := p.pdf
	slot := a.w / float64(len(cats))

	levels := make(map[string]scoring.Level, len(answers))
	for _, ans := range answers {
		levels[ans.Variable] = ans.Level
	}

	for i, c := range cats {
		col := palette[i%len(palette)]
		cx := a.x + slot*(float64(i)+0.5)
		spread := slot * 0.5
		for j, v := range c.Variables {
			x := cx
			if n := len(c.Variables); n > 1 {
				x = cx - spread/2 + spread*float64(j)/float64(n-1)
			}
			pdf.SetFillColor(col.r, col.g, col.b)
			pdf.Circle(x, a.levelY(float64(levels[v])), 1.4, "F")
		}

		pdf.SetDrawColor(col.r, col.g, col.b)
		pdf.SetDashPattern([]float64{1, 1}, 0)
		y := a.levelY(c.Mean)
		pdf.Line(cx-slot*0.4, y, cx+slot*0.4, y)
		pdf.SetDashPattern([]float64{}, 0)

		p.categoryLabel(a, cx, c.Category)
	}
}
