// Package ui is the bubbletea presentation shell for the report wizard.
// It is deliberately thin: all domain state lives in wizard.Controller
// and the packages below it; the shell renders snapshots and translates
// key presses into controller operations.
package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"reportcraft/internal/config"
	"reportcraft/internal/gen"
	"reportcraft/internal/ledger"
	"reportcraft/internal/logging"
	"reportcraft/internal/report"
	"reportcraft/internal/store"
	"reportcraft/internal/wizard"
)

// Deps are the services the shell runs on top of.
type Deps struct {
	Config *config.UserConfig
	Store  *store.KV
	Ledger *ledger.Ledger
}

// Run assembles the wizard controller and blocks inside the bubbletea
// event loop until the user quits.
func Run(deps Deps) error {
	sessionID := uuid.NewString()
	logging.Session("ui session %s starting", sessionID)
	defer logging.Session("ui session %s finished", sessionID)

	factory := func(ctx context.Context) (wizard.Generator, error) {
		key, ok, err := deps.Store.APIKey()
		if err != nil {
			return nil, fmt.Errorf("reading credential: %w", err)
		}
		if !ok {
			return nil, gen.ErrMissingAPIKey
		}
		client, err := gen.New(ctx, key, deps.Config.GetModel())
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	ctrl := wizard.NewController(factory)

	// Autosave: every mutation persists the draft so `export` and a
	// later session can pick it up.
	ctrl.Subscribe(func(snap wizard.Snapshot) {
		encoded, err := report.EncodeDraft(report.Draft{
			Report: snap.Report,
			Chart:  snap.Chart,
		})
		if err != nil {
			logging.StoreError("encoding draft: %v", err)
			return
		}
		if err := deps.Store.SetDraft(encoded); err != nil {
			logging.StoreError("saving draft: %v", err)
		}
	})

	// Resume an earlier draft when one exists.
	if raw, ok, err := deps.Store.Draft(); err == nil && ok {
		if draft, err := report.DecodeDraft(raw); err == nil {
			ctrl.Restore(draft.Report, draft.Chart)
			logging.Session("resumed draft %q", draft.Report.Title)
		}
	}

	m := newModel(deps, ctrl, sessionID)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
