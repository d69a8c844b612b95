package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"reportcraft/internal/ledger"
	"reportcraft/internal/report"
	"reportcraft/internal/wizard"
)

// page identifies which top-level screen is active.
type page int

const (
	pageLogin page = iota
	pagePricing
	pageAPIKey
	pageWizard
)

// Messages produced by async commands.
type (
	loginDoneMsg struct {
		session ledger.Session
		err     error
	}
	creditSpentMsg struct {
		remaining int
		err       error
	}
	suggestDoneMsg struct {
		field report.Field
		notes string
		err   error
	}
	generateDoneMsg struct {
		field report.Field
		err   error
	}
	resultsDoneMsg struct {
		err error
	}
	copiedMsg struct {
		what string
		err  error
	}
)

// Model is the bubbletea model for the whole shell.
type Model struct {
	deps      Deps
	ctrl      *wizard.Controller
	th        theme
	sessionID string

	page     page
	returnTo page

	width  int
	height int

	// Login page
	username   textinput.Model
	password   textinput.Model
	loginFocus int

	// Credential page
	keyInput textinput.Model

	// Wizard: intro fields and the per-step working buffer
	intro      [3]textinput.Model
	introFocus int
	buffer     textarea.Model
	bufferStep report.Step

	spin    spinner.Model
	busy    bool
	status  string
	errText string
	preview string

	session ledger.Session
}

func newModel(deps Deps, ctrl *wizard.Controller, sessionID string) Model {
	th := newTheme(deps.Config.GetTheme())

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword

	keyInput := textinput.New()
	keyInput.Placeholder = "Gemini API key"
	keyInput.CharLimit = 128
	keyInput.EchoMode = textinput.EchoPassword

	var intro [3]textinput.Model
	for i, placeholder := range []string{
		"initiative title",
		"subject",
		"class",
	} {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 200
		intro[i] = in
	}

	buffer := textarea.New()
	buffer.Placeholder = "Write or generate here..."
	buffer.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorSuccess)

	return Model{
		deps:       deps,
		ctrl:       ctrl,
		th:         th,
		sessionID:  sessionID,
		page:       pageLogin,
		username:   username,
		password:   password,
		keyInput:   keyInput,
		intro:      intro,
		buffer:     buffer,
		bufferStep: report.FirstStep,
		spin:       sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// snapshot is a read-through to the controller.
func (m Model) snapshot() wizard.Snapshot {
	return m.ctrl.Snapshot()
}

// introFields maps the three intro inputs to their aggregate fields.
var introFields = [3]report.Field{
	report.FieldTitle,
	report.FieldSubject,
	report.FieldClass,
}

// stepField returns the aggregate field the working buffer edits on a
// given step, and whether the step has one. The results step uses the
// buffer for raw figures, not a field.
func stepField(s report.Step) (report.Field, bool) {
	switch s {
	case report.StepReason:
		return report.FieldReason, true
	case report.StepContent:
		return report.FieldContent, true
	case report.StepImplementation:
		return report.FieldImplementation, true
	case report.StepConclusion:
		return report.FieldConclusion, true
	default:
		return "", false
	}
}
