package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"reportcraft/internal/gen"
	"reportcraft/internal/ledger"
	"reportcraft/internal/logging"
	"reportcraft/internal/report"
	"reportcraft/internal/wizard"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := msg.Width - 6
		if w > 100 {
			w = 100
		}
		if w < 20 {
			w = 20
		}
		m.buffer.SetWidth(w)
		h := msg.Height - 14
		if h < 4 {
			h = 4
		}
		m.buffer.SetHeight(h)
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case loginDoneMsg:
		return m.handleLoginDone(msg)

	case creditSpentMsg:
		return m.handleCreditSpent(msg)

	case suggestDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m.handleGenerationError(msg.err)
		}
		m.buffer.SetValue(msg.notes)
		m.status = "Suggestions ready. Edit them, then generate the full text."
		return m, nil

	case generateDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m.handleGenerationError(msg.err)
		}
		rep := m.snapshot().Report
		m.buffer.SetValue(rep.Get(msg.field))
		m.status = "Section drafted."
		return m, nil

	case resultsDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m.handleGenerationError(msg.err)
		}
		if len(m.snapshot().Chart) == 0 {
			m.status = "Analysis written. Figures could not be charted."
		} else {
			m.status = "Analysis written and chart extracted."
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errText = "Clipboard unavailable: " + msg.err.Error()
			return m, nil
		}
		m.status = "Copied " + msg.what + " to clipboard."
		return m, nil

	case tea.KeyMsg:
		m.errText = ""
		switch m.page {
		case pageLogin:
			return m.updateLogin(msg)
		case pagePricing:
			return m.updatePricing(msg)
		case pageAPIKey:
			return m.updateAPIKey(msg)
		case pageWizard:
			return m.updateWizard(msg)
		}
	}

	return m, nil
}

// handleGenerationError routes a failed upstream call: a missing
// credential opens the key entry page, everything else becomes a status
// line.
func (m Model) handleGenerationError(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, gen.ErrMissingAPIKey) {
		m.returnTo = m.page
		m.page = pageAPIKey
		m.keyInput.SetValue("")
		m.keyInput.Focus()
		m.status = ""
		m.errText = "No API key configured. Enter one to continue."
		return m, textinput.Blink
	}
	if errors.Is(err, wizard.ErrBusy) {
		m.errText = "Another generation is still running."
		return m, nil
	}
	m.errText = "Generation failed: " + err.Error()
	return m, nil
}

// =============================================================================
// LOGIN
// =============================================================================

func (m Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		if errors.Is(msg.err, ledger.ErrInvalidCredentials) {
			m.errText = "Invalid username or password."
		} else {
			m.errText = "Login failed: " + msg.err.Error()
		}
		return m, nil
	}

	m.session = msg.session
	m.ctrl.SetSession(msg.session)
	if strings.EqualFold(msg.session.Username, "admin") {
		m.ctrl.SetAdminMode(true)
	}
	logging.Session("session %s: %s logged in with %d credits",
		m.sessionID, msg.session.Username, msg.session.Credits)

	if msg.session.Credits <= 0 {
		m.page = pagePricing
		return m, nil
	}
	m.busy = true
	return m, tea.Batch(m.spin.Tick, m.spendCreditCmd(msg.session.Username))
}

func (m Model) handleCreditSpent(msg creditSpentMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		if errors.Is(msg.err, ledger.ErrInsufficientCredit) {
			m.page = pagePricing
			return m, nil
		}
		m.errText = "Could not charge session: " + msg.err.Error()
		return m, nil
	}

	m.session.Credits = msg.remaining
	m.ctrl.SetSession(m.session)
	m.page = pageWizard
	m.syncIntroInputs()
	m.status = "Welcome, " + m.session.DisplayName + "."
	return m, textinput.Blink
}

func (m *Model) syncIntroInputs() {
	rep := m.snapshot().Report
	for i, f := range introFields {
		m.intro[i].SetValue(rep.Get(f))
	}
	m.introFocus = 0
	m.intro[0].Focus()
	for i := 1; i < len(m.intro); i++ {
		m.intro[i].Blur()
	}
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+p":
		m.page = pagePricing
		return m, nil
	case "tab", "shift+tab", "down", "up":
		m.loginFocus = 1 - m.loginFocus
		if m.loginFocus == 0 {
			m.password.Blur()
			return m, m.username.Focus()
		}
		m.username.Blur()
		return m, m.password.Focus()
	case "enter":
		user := strings.TrimSpace(m.username.Value())
		pass := m.password.Value()
		if user == "" {
			m.errText = "Enter a username."
			return m, nil
		}
		m.busy = true
		return m, tea.Batch(m.spin.Tick, m.loginCmd(user, pass))
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// =============================================================================
// PRICING / UPSELL
// =============================================================================

func (m Model) updatePricing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "enter", "b":
		m.page = pageLogin
		m.password.SetValue("")
		return m, textinput.Blink
	}
	return m, nil
}

// =============================================================================
// API KEY ENTRY
// =============================================================================

func (m Model) updateAPIKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.page = m.returnTo
		return m, nil
	case "enter":
		key := strings.TrimSpace(m.keyInput.Value())
		if key == "" {
			m.errText = "Key must not be empty."
			return m, nil
		}
		if err := m.deps.Store.SetAPIKey(key); err != nil {
			m.errText = "Could not store key: " + err.Error()
			return m, nil
		}
		m.page = m.returnTo
		m.status = "API key saved."
		return m, nil
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

// =============================================================================
// WIZARD
// =============================================================================

func (m Model) updateWizard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.snapshot()

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "f1", "f2", "f3", "f4", "f5", "f6", "f7":
		target := report.Step(msg.String()[1] - '0')
		if err := m.ctrl.JumpTo(target); err != nil {
			if errors.Is(err, wizard.ErrAdminOnly) {
				m.errText = "Step jumping is admin-only."
			}
			return m, nil
		}
		return m.enterStep(m.snapshot())
	}

	if snap.Step == report.StepIntro {
		return m.updateIntroStep(msg)
	}
	if snap.Step == report.StepReview {
		return m.updateReviewStep(msg, snap)
	}
	return m.updateSectionStep(msg, snap)
}

// enterStep re-syncs the per-step inputs after any step change.
func (m Model) enterStep(snap wizard.Snapshot) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case snap.Step == report.StepIntro:
		m.syncIntroInputs()
		m.buffer.Blur()
		return m, textinput.Blink
	case snap.Step == report.StepReview:
		m.buffer.Blur()
		m.preview = m.renderPreview()
		return m, nil
	case snap.Step == report.StepResults:
		if m.bufferStep != snap.Step {
			m.buffer.SetValue("")
		}
	default:
		if f, ok := stepField(snap.Step); ok && m.bufferStep != snap.Step {
			m.buffer.SetValue(snap.Report.Get(f))
		}
	}
	m.bufferStep = snap.Step
	return m, m.buffer.Focus()
}

func (m Model) updateIntroStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m.focusIntro((m.introFocus + 1) % len(m.intro))
	case "shift+tab", "up":
		return m.focusIntro((m.introFocus + len(m.intro) - 1) % len(m.intro))
	case "enter":
		for i, f := range introFields {
			m.ctrl.SetField(f, strings.TrimSpace(m.intro[i].Value()))
		}
		if err := m.ctrl.Advance(); err != nil {
			m.errText = "Title, subject, and class are all required."
			return m, nil
		}
		return m.enterStep(m.snapshot())
	}

	var cmd tea.Cmd
	m.intro[m.introFocus], cmd = m.intro[m.introFocus].Update(msg)
	return m, cmd
}

func (m Model) focusIntro(i int) (tea.Model, tea.Cmd) {
	m.intro[m.introFocus].Blur()
	m.introFocus = i
	return m, m.intro[i].Focus()
}

func (m Model) updateSectionStep(msg tea.KeyMsg, snap wizard.Snapshot) (tea.Model, tea.Cmd) {
	field, editable := stepField(snap.Step)

	switch msg.String() {
	case "ctrl+s":
		if snap.Step == report.StepResults {
			m.errText = "The results step has no suggestion pass; enter your figures and generate."
			return m, nil
		}
		if m.busy {
			m.errText = "Another generation is still running."
			return m, nil
		}
		m.busy = true
		m.status = "Gathering suggestions..."
		return m, tea.Batch(m.spin.Tick, m.suggestCmd(field))

	case "ctrl+g":
		if m.busy {
			m.errText = "Another generation is still running."
			return m, nil
		}
		input := strings.TrimSpace(m.buffer.Value())
		if input == "" {
			m.errText = "Nothing to work from. Write notes or use suggestions first."
			return m, nil
		}
		m.busy = true
		if snap.Step == report.StepResults {
			m.status = "Analyzing figures..."
			return m, tea.Batch(m.spin.Tick, m.resultsCmd(input))
		}
		m.status = "Drafting section..."
		return m, tea.Batch(m.spin.Tick, m.generateCmd(field, input))

	case "ctrl+n":
		if editable {
			m.ctrl.SetField(field, strings.TrimSpace(m.buffer.Value()))
		}
		if err := m.ctrl.Advance(); err != nil {
			m.errText = "This section is still empty."
			return m, nil
		}
		return m.enterStep(m.snapshot())

	case "ctrl+b", "esc":
		if editable {
			m.ctrl.SetField(field, strings.TrimSpace(m.buffer.Value()))
		}
		m.ctrl.Retreat()
		return m.enterStep(m.snapshot())
	}

	var cmd tea.Cmd
	m.buffer, cmd = m.buffer.Update(msg)
	return m, cmd
}

func (m Model) updateReviewStep(msg tea.KeyMsg, snap wizard.Snapshot) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "c":
		return m, m.copyCmd("document", m.ctrl.AssembleDocument())
	case "1", "2", "3", "4", "5":
		i := int(msg.String()[0] - '1')
		f := report.SectionFields[i]
		text := report.Normalize(snap.Report.Get(f))
		if text == "" {
			m.errText = "That section is empty."
			return m, nil
		}
		return m, m.copyCmd(string(f)+" section", text)
	case "r":
		m.ctrl.Reset()
		if err := m.deps.Store.ClearDraft(); err != nil {
			logging.StoreError("clearing draft: %v", err)
		}
		m.preview = ""
		return m.enterStep(m.snapshot())
	case "b", "esc":
		m.ctrl.Retreat()
		return m.enterStep(m.snapshot())
	}
	return m, nil
}

// renderPreview renders the assembled document for the review page.
func (m Model) renderPreview() string {
	doc := m.ctrl.AssembleDocument()
	style := "dark"
	if m.deps.Config.GetTheme() == "light" {
		style = "light"
	}
	width := m.width - 4
	if width > 100 {
		width = 100
	}
	if width < 20 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logging.ExportDebug("preview renderer unavailable, falling back to raw: %v", err)
		return doc
	}
	out, err := r.Render("```text\n" + doc + "\n```")
	if err != nil {
		logging.ExportDebug("preview render failed, falling back to raw: %v", err)
		return doc
	}
	return out
}
