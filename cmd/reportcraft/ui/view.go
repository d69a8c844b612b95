package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reportcraft/internal/report"
	"reportcraft/internal/wizard"
)

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.page {
	case pageLogin:
		body = m.viewLogin()
	case pagePricing:
		body = m.viewPricing()
	case pageAPIKey:
		body = m.viewAPIKey()
	case pageWizard:
		body = m.viewWizard()
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.viewStatusLine())
	return b.String()
}

func (m Model) viewHeader() string {
	title := m.th.Title.Render("reportcraft")
	sub := m.th.Subtitle.Render("pedagogical initiative reports")
	header := title + "  " + sub
	if m.session.Username != "" {
		badge := m.th.Badge.Render(fmt.Sprintf("%s · %d credits", m.session.DisplayName, m.session.Credits))
		header += "   " + badge
	}
	return header
}

func (m Model) viewStatusLine() string {
	switch {
	case m.errText != "":
		return m.th.Error.Render(m.errText)
	case m.busy:
		return m.spin.View() + " " + m.th.Subtitle.Render(m.status)
	case m.status != "":
		return m.th.Success.Render(m.status)
	}
	return ""
}

// =============================================================================
// PAGES
// =============================================================================

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(m.th.Label.Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString(m.username.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")
	b.WriteString(m.th.Subtitle.Render(fmt.Sprintf("%d registered users", m.deps.Ledger.Count())))
	b.WriteString("\n")
	b.WriteString(m.th.Help.Render("enter: sign in · tab: switch field · ctrl+p: pricing · ctrl+c: quit"))
	return m.th.Card.Render(b.String())
}

func (m Model) viewPricing() string {
	var b strings.Builder
	b.WriteString(m.th.Label.Render("Out of credits"))
	b.WriteString("\n\n")
	b.WriteString("Each wizard session costs one credit. Top up with one of\nthese packages by contacting your administrator:\n\n")
	for _, p := range pricingPackages {
		line := p.Line()
		if p.Popular {
			line = m.th.Badge.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.th.Help.Render("esc: back to sign-in · q: quit"))
	return m.th.Card.Render(b.String())
}

func (m Model) viewAPIKey() string {
	var b strings.Builder
	b.WriteString(m.th.Label.Render("Gemini API key"))
	b.WriteString("\n\n")
	b.WriteString("Generation needs a Google AI Studio key. It is stored locally\nand never leaves this machine except toward the Gemini API.\n\n")
	b.WriteString(m.keyInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.th.Help.Render("enter: save · esc: cancel"))
	return m.th.Card.Render(b.String())
}

func (m Model) viewWizard() string {
	snap := m.snapshot()

	var b strings.Builder
	b.WriteString(m.viewStepper(snap.Step))
	b.WriteString("\n\n")
	b.WriteString(m.th.Label.Render(fmt.Sprintf("Step %d · %s", snap.Step, snap.Step.Title())))
	b.WriteString("\n\n")

	switch snap.Step {
	case report.StepIntro:
		b.WriteString(m.viewIntroStep())
	case report.StepReview:
		b.WriteString(m.viewReviewStep())
	case report.StepResults:
		b.WriteString(m.viewResultsStep(snap))
	default:
		b.WriteString(m.viewSectionStep(snap))
	}
	return b.String()
}

func (m Model) viewStepper(current report.Step) string {
	parts := make([]string, 0, int(report.LastStep))
	for s := report.FirstStep; s <= report.LastStep; s++ {
		label := fmt.Sprintf("%d %s", s, s.String())
		switch {
		case s == current:
			label = m.th.StepActive.Render("[" + label + "]")
		case s < current:
			label = m.th.StepDone.Render(label)
		default:
			label = m.th.StepTodo.Render(label)
		}
		parts = append(parts, label)
	}
	sep := m.th.StepTodo.Render(" > ")
	line := strings.Join(parts, sep)
	if m.snapshot().AdminMode {
		line += "   " + m.th.Warning.Render("admin")
	}
	return line
}

func (m Model) viewIntroStep() string {
	labels := []string{"Title", "Subject", "Class"}
	var b strings.Builder
	for i, in := range m.intro {
		b.WriteString(m.th.Label.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.th.Help.Render("enter: continue · tab: next field"))
	return b.String()
}

func (m Model) viewSectionStep(snap wizard.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.buffer.View())
	b.WriteString("\n\n")
	b.WriteString(m.th.Help.Render("ctrl+s: suggest ideas · ctrl+g: draft section · ctrl+n: next · ctrl+b: back"))
	return b.String()
}

func (m Model) viewResultsStep(snap wizard.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.th.Subtitle.Render("Enter your before/after figures, then generate."))
	b.WriteString("\n\n")
	b.WriteString(m.buffer.View())
	b.WriteString("\n")

	if snap.Report.Results != "" {
		b.WriteString("\n")
		b.WriteString(m.th.Label.Render("Analysis"))
		b.WriteString("\n")
		b.WriteString(truncateLines(snap.Report.Results, 6))
		b.WriteString("\n")
	}
	if len(snap.Chart) > 0 {
		b.WriteString("\n")
		b.WriteString(m.th.Card.Render(report.RenderChart(snap.Chart)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.th.Help.Render("ctrl+g: analyze figures · ctrl+n: next · ctrl+b: back"))
	return b.String()
}

func (m Model) viewReviewStep() string {
	var b strings.Builder
	if m.preview != "" {
		b.WriteString(m.preview)
	} else {
		b.WriteString(m.ctrl.AssembleDocument())
	}
	b.WriteString("\n")
	b.WriteString(m.th.Help.Render("c: copy document · 1-5: copy one section · r: start over · b: back · q: quit"))
	return b.String()
}

// truncateLines keeps the first n lines of text for inline previews.
func truncateLines(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= n {
		return text
	}
	return strings.Join(lines[:n], "\n") + "\n" + lipgloss.NewStyle().Faint(true).Render("…")
}
