package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decisionmotor/maturity/internal/advisor"
	"github.com/decisionmotor/maturity/internal/questionbank"
	"github.com/decisionmotor/maturity/internal/respondent"
	"github.com/decisionmotor/maturity/internal/scoring"
)

func testDocument(t *testing.T) Document {
	t.Helper()
	answers := []scoring.Answer{
		{Category: "Datos", Variable: "Calidad", Average: 2.5, Level: 2, Note: "Auditoría en curso"},
		{Category: "Datos", Variable: "Gobierno", Average: 4, Level: 4},
		{Category: "Tecnología", Variable: "Plataforma", Average: 3.25, Level: 3},
	}
	return Document{
		SubmissionID: "sub-1",
		Respondent:   respondent.Respondent{Name: "Ana Pérez", Email: "ana@example.com", Company: "Acme"},
		Timestamp:    time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC),
		Bank:         questionbank.Default(),
		Answers:      answers,
		Categories:   scoring.Aggregate(answers),
	}
}

func TestFileName(t *testing.T) {
	r := respondent.Respondent{Name: "Ana Pérez"}
	ts := time.Date(2025, 3, 4, 10, 30, 5, 0, time.UTC)
	assert.Equal(t, "maturity_report_ana_p_rez_20250304_103005.pdf", FileName(r, ts))

	anon := FileName(respondent.Respondent{}, ts)
	assert.Equal(t, "maturity_report_anonymous_20250304_103005.pdf", anon)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testDocument(t)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.True(t, bytes.Contains(buf.Bytes(), []byte("%%EOF")))
}

func TestRenderRequiresAnswers(t *testing.T) {
	doc := testDocument(t)
	doc.Answers = nil
	_, err := Bytes(doc)
	assert.Error(t, err)
}

func TestRenderWithoutBankOrCategories(t *testing.T) {
	doc := testDocument(t)
	doc.Bank = nil
	doc.Categories = nil
	data, err := Bytes(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRecommendationsAddPage(t *testing.T) {
	doc := testDocument(t)
	plain, err := Bytes(doc)
	require.NoError(t, err)

	doc.Recommendations = &advisor.Recommendations{
		Summary: "Focus on data governance.",
		Categories: []advisor.CategoryAdvice{
			{Category: "Datos", Actions: []string{"Name data owners", "Publish a quality dashboard"}},
		},
	}
	withRecs, err := Bytes(doc)
	require.NoError(t, err)

	assert.Greater(t, pageCount(t, withRecs), pageCount(t, plain))
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	doc := testDocument(t)

	path, err := WriteFile(dir, doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName(doc.Respondent, doc.Timestamp)), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

// pageCount reads the page tree count, which fpdf writes uncompressed.
func pageCount(t *testing.T, pdf []byte) int {
	t.Helper()
	s := string(pdf)
	i := strings.Index(s, "/Type /Pages")
	require.GreaterOrEqual(t, i, 0)
	rest := s[i:]
	j := strings.Index(rest, "/Count ")
	require.GreaterOrEqual(t, j, 0)
	n := 0
	for _, c := range rest[j+len("/Count "):] {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func TestShortLabelKeepsRunesWhole(t *testing.T) {
	assert.Equal(t, "Datos", shortLabel("Datos"))

	long := "Gestión de la información estratégica del negocio"
	got := shortLabel(long)
	assert.True(t, utf8.ValidString(got), "label %q is not valid UTF-8", got)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, "Gestión de la información e", strings.TrimSuffix(got, "..."))

	accents := strings.Repeat("é", 30)
	assert.Equal(t, strings.Repeat("é", 27)+"...", shortLabel(accents))

	exact := strings.Repeat("é", 28)
	assert.Equal(t, exact, shortLabel(exact))
}

func TestRenderAccentedCategories(t *testing.T) {
	doc := testDocument(t)
	for i := range doc.Answers {
		doc.Answers[i].Category = "Gestión de la información estratégica " + doc.Answers[i].Category
	}
	doc.Categories = scoring.Aggregate(doc.Answers)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, doc))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
