package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decisionmotor/maturity/internal/router"
	"github.com/decisionmotor/maturity/internal/store"
)

func seededRepo(t *testing.T) store.ResponseRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	repo := s.ResponseRepo()
	require.NoError(t, repo.AppendSubmission(context.Background(), store.SubmissionData{
		SubmissionID:    "sub-1",
		Timestamp:       time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC),
		RespondentName:  "Ana",
		RespondentEmail: "ana@example.com",
		Company:         "Acme",
		BankTitle:       "Test",
		OverallLevel:    3,
		Responses: []store.ResponseData{
			{Category: "Data", Variable: "quality", Average: 2.5, Level: 2},
			{Category: "Data", Variable: "governance", Average: 4, Level: 4},
			{Category: "Models", Variable: "usage", Average: 3, Level: 3},
		},
	}))
	return repo
}

// run executes cmd and feeds the resulting message back into the screen.
func run(t *testing.T, s *HistoryScreen, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func TestLoadAndExpand(t *testing.T) {
	s := New(seededRepo(t))
	run(t, s, s.Init())

	require.True(t, s.loaded)
	require.Len(t, s.submissions, 1)
	assert.Contains(t, s.View(120, 30), "Acme")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	run(t, s, cmd)

	cats := s.categories["sub-1"]
	require.Len(t, cats, 2)
	assert.Equal(t, "Data", cats[0].Category)
	assert.InDelta(t, 3.0, cats[0].Mean, 1e-9)
	assert.Equal(t, "Models", cats[1].Category)

	view := s.View(120, 30)
	assert.True(t, strings.Contains(view, "Models"))

	// Collapsing does not reload.
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, s.expanded[0])
}

func TestEmptyHistory(t *testing.T) {
	s := New(seededRepo(t))
	s.Update(historyLoadedMsg{})
	assert.Contains(t, s.View(80, 24), "No submissions yet")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestEscPops(t *testing.T) {
	s := New(seededRepo(t))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}
