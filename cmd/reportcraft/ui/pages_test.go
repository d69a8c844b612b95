package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportcraft/internal/config"
	"reportcraft/internal/gen"
	"reportcraft/internal/ledger"
	"reportcraft/internal/report"
	"reportcraft/internal/store"
	"reportcraft/internal/wizard"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	dir := t.TempDir()
	kv, err := store.Open(filepath.Join(dir, "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	accounts, err := ledger.LoadRegistry(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)

	deps := Deps{
		Config: &config.UserConfig{},
		Store:  kv,
		Ledger: ledger.New(accounts, kv, store.CreditKey),
	}
	ctrl := wizard.NewController(func(ctx context.Context) (wizard.Generator, error) {
		t.Fatal("unexpected generation call")
		return nil, nil
	})
	return newModel(deps, ctrl, "test-session")
}

func TestLoginSuccessSpendsCreditAndEntersWizard(t *testing.T) {
	m := newTestModel(t)

	session, err := m.deps.Ledger.Authenticate("teacher1", "123")
	require.NoError(t, err)

	next, cmd := m.Update(loginDoneMsg{session: session})
	m = next.(Model)
	require.NotNil(t, cmd, "expected a credit-spend command")

	msg := runCmd(t, cmd)
	spent, ok := msg.(creditSpentMsg)
	require.True(t, ok, "expected creditSpentMsg, got %T", msg)
	require.NoError(t, spent.err)
	assert.Equal(t, 9, spent.remaining)

	next, _ = m.Update(spent)
	m = next.(Model)
	assert.Equal(t, pageWizard, m.page)
	assert.Equal(t, 9, m.session.Credits)
}

func TestLoginWithZeroBalanceShowsPricing(t *testing.T) {
	m := newTestModel(t)

	session, err := m.deps.Ledger.Authenticate("teacher2", "456")
	require.NoError(t, err)
	_, err = m.deps.Ledger.ConsumeCredit("teacher2")
	require.NoError(t, err)

	session.Credits = 0
	next, _ := m.Update(loginDoneMsg{session: session})
	m = next.(Model)
	assert.Equal(t, pagePricing, m.page)
}

func TestInvalidLoginShowsError(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(loginDoneMsg{err: ledger.ErrInvalidCredentials})
	m = next.(Model)
	assert.Equal(t, pageLogin, m.page)
	assert.Contains(t, m.errText, "Invalid username or password")
}

func TestAdminLoginEnablesStepJumping(t *testing.T) {
	m := newTestModel(t)

	session, err := m.deps.Ledger.Authenticate("admin", "123")
	require.NoError(t, err)

	next, _ := m.Update(loginDoneMsg{session: session})
	m = next.(Model)
	assert.True(t, m.ctrl.Snapshot().AdminMode)
}

func TestMissingKeyOpensCredentialPage(t *testing.T) {
	m := newTestModel(t)
	m.page = pageWizard

	next, _ := m.handleGenerationError(gen.ErrMissingAPIKey)
	m = next.(Model)
	assert.Equal(t, pageAPIKey, m.page)
	assert.Equal(t, pageWizard, m.returnTo)
}

func TestStepFieldMapping(t *testing.T) {
	for _, step := range []report.Step{
		report.StepReason, report.StepContent,
		report.StepImplementation, report.StepConclusion,
	} {
		f, ok := stepField(step)
		assert.True(t, ok, "step %s should be editable", step)
		assert.Equal(t, report.Field(step.String()), f)
	}
	for _, step := range []report.Step{report.StepIntro, report.StepResults, report.StepReview} {
		_, ok := stepField(step)
		assert.False(t, ok, "step %s should have no buffer field", step)
	}
}

func TestPricingCatalog(t *testing.T) {
	require.Len(t, pricingPackages, 3)

	popular := 0
	for _, p := range pricingPackages {
		assert.NotEmpty(t, p.Name)
		assert.Greater(t, p.Credits, 0)
		if p.Popular {
			popular++
			assert.True(t, strings.HasPrefix(p.Line(), "★"))
		}
	}
	assert.Equal(t, 1, popular)
}

func TestTruncateLines(t *testing.T) {
	text := "a\nb\nc\nd"
	assert.Equal(t, text, truncateLines(text, 4))
	assert.True(t, strings.HasPrefix(truncateLines(text, 2), "a\nb\n"))
}

// runCmd executes a tea.Cmd synchronously and returns the first domain
// message it produces, unwrapping batches and skipping spinner ticks.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)

	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return msg
	}
	for _, c := range batch {
		switch m := c().(type) {
		case creditSpentMsg, loginDoneMsg, suggestDoneMsg, generateDoneMsg, resultsDoneMsg, copiedMsg:
			return m
		}
	}
	t.Fatal("batch produced no domain message")
	return nil
}
