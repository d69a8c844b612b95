package ui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"reportcraft/internal/logging"
	"reportcraft/internal/report"
)

// generationTimeout bounds every upstream call made from the shell.
const generationTimeout = 2 * time.Minute

func (m Model) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.deps.Ledger.Authenticate(username, password)
		return loginDoneMsg{session: session, err: err}
	}
}

func (m Model) spendCreditCmd(username string) tea.Cmd {
	return func() tea.Msg {
		remaining, err := m.deps.Ledger.ConsumeCredit(username)
		return creditSpentMsg{remaining: remaining, err: err}
	}
}

func (m Model) suggestCmd(f report.Field) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
		defer cancel()

		notes, err := m.ctrl.Suggest(ctx, f)
		return suggestDoneMsg{field: f, notes: notes, err: err}
	}
}

func (m Model) generateCmd(f report.Field, notes string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
		defer cancel()

		err := m.ctrl.GenerateSection(ctx, f, notes)
		return generateDoneMsg{field: f, err: err}
	}
}

func (m Model) resultsCmd(figures string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
		defer cancel()

		err := m.ctrl.GenerateResults(ctx, figures)
		return resultsDoneMsg{err: err}
	}
}

func (m Model) copyCmd(what, text string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(text)
		if err == nil {
			logging.Export("copied %s (%d bytes)", what, len(text))
		}
		return copiedMsg{what: what, err: err}
	}
}
