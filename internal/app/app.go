package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/decisionmotor/maturity/internal/form"
	"github.com/decisionmotor/maturity/internal/gate"
	"github.com/decisionmotor/maturity/internal/questionbank"
	"github.com/decisionmotor/maturity/internal/respondent"
	"github.com/decisionmotor/maturity/internal/router"
	"github.com/decisionmotor/maturity/internal/screen"
	gatescreen "github.com/decisionmotor/maturity/internal/screens/gate"
	"github.com/decisionmotor/maturity/internal/screens/history"
	"github.com/decisionmotor/maturity/internal/screens/home"
	"github.com/decisionmotor/maturity/internal/screens/identity"
	"github.com/decisionmotor/maturity/internal/screens/questionnaire"
	"github.com/decisionmotor/maturity/internal/screens/results"
	"github.com/decisionmotor/maturity/internal/screens/saved"
	"github.com/decisionmotor/maturity/internal/store"
	"github.com/decisionmotor/maturity/internal/submission"
	"github.com/decisionmotor/maturity/internal/ui/layout"
)

const brand = "Maturity"

// Options holds the dependencies the screens need.
type Options struct {
	Bank       *questionbank.Bank
	Gate       *gate.Gate
	Submitter  results.Submitter
	Responses  store.ResponseRepo
	Respondent respondent.Respondent // prefill for the identity screen
	Notice     string                // shown on the home screen
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	who    string
	width  int
	height int
}

// newAppModel builds the screen chain gate → identity → home.
func newAppModel(opts Options) AppModel {
	homeFactory := func(who respondent.Respondent) screen.Screen {
		return home.New(opts.Bank, who, factories(opts, who), opts.Notice)
	}
	identityFactory := func() screen.Screen {
		return identity.New(opts.Respondent, homeFactory)
	}

	var first screen.Screen
	if opts.Gate.Open() {
		first = identityFactory()
	} else {
		first = gatescreen.New(opts.Gate, identityFactory)
	}
	return AppModel{router: router.New(first)}
}

func factories(opts Options, who respondent.Respondent) home.Factories {
	var f home.Factories
	if opts.Submitter != nil {
		savedFactory := func(out *submission.Outcome) screen.Screen { return saved.New(out) }
		resultsFactory := func(fm *form.Form) screen.Screen {
			return results.New(opts.Submitter, who, fm, savedFactory)
		}
		f.Assessment = func(fm *form.Form) screen.Screen {
			return questionnaire.New(fm, resultsFactory)
		}
	}
	if opts.Responses != nil {
		f.History = func() screen.Screen { return history.New(opts.Responses) }
	}
	return f
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.RespondentMsg:
		m.who = msg.Label
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(brand, title, m.who, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Bank == nil {
		return fmt.Errorf("run app: no question bank")
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
