package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"reportcraft/internal/gen"
	"reportcraft/internal/report"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeGen is a programmable Generator. Setting block makes calls wait
// until release is closed, which lets tests hold the busy flag open.
type fakeGen struct {
	text        string
	textErr     error
	suggestions string
	suggestErr  error
	chart       report.ChartSeries
	chartErr    error

	block   bool
	release chan struct{}
	started chan struct{}

	textCalls  int
	chartCalls int
}

func newFakeGen() *fakeGen {
	return &fakeGen{
		release: make(chan struct{}),
		started: make(chan struct{}, 8),
	}
}

func (f *fakeGen) wait(ctx context.Context) error {
	if !f.block {
		return nil
	}
	f.started <- struct{}{}
	select {
	case <-f.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeGen) GenerateText(ctx context.Context, prompt, instruction string) (string, error) {
	f.textCalls++
	if err := f.wait(ctx); err != nil {
		return "", err
	}
	return f.text, f.textErr
}

func (f *fakeGen) GenerateSuggestions(ctx context.Context, prompt, instruction string) (string, error) {
	if err := f.wait(ctx); err != nil {
		return "", err
	}
	return f.suggestions, f.suggestErr
}

func (f *fakeGen) GenerateChartSeries(ctx context.Context, raw string) (report.ChartSeries, error) {
	f.chartCalls++
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.chart, f.chartErr
}

func newTestController(g Generator) *Controller {
	return NewController(func(ctx context.Context) (Generator, error) {
		return g, nil
	})
}

func completedIntro(c *Controller) {
	c.SetField(report.FieldTitle, "Using flashcards in vocabulary drills")
	c.SetField(report.FieldSubject, "English")
	c.SetField(report.FieldClass, "6A")
}

func TestAdvanceBlockedOnIncompleteStep(t *testing.T) {
	c := newTestController(newFakeGen())

	err := c.Advance()
	require.ErrorIs(t, err, ErrStepIncomplete)
	assert.Equal(t, report.StepIntro, c.Snapshot().Step)

	completedIntro(c)
	require.NoError(t, c.Advance())
	assert.Equal(t, report.StepReason, c.Snapshot().Step)
}

func TestAdvanceStopsAtReview(t *testing.T) {
	c := newTestController(newFakeGen())
	completedIntro(c)
	for _, f := range report.SectionFields {
		c.SetField(f, "drafted")
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, c.Advance())
	}
	assert.Equal(t, report.StepReview, c.Snapshot().Step)
}

func TestRetreatClampsAtFirstStep(t *testing.T) {
	c := newTestController(newFakeGen())
	c.Retreat()
	assert.Equal(t, report.StepIntro, c.Snapshot().Step)

	completedIntro(c)
	require.NoError(t, c.Advance())
	c.Retreat()
	assert.Equal(t, report.StepIntro, c.Snapshot().Step)
}

func TestJumpRequiresAdminMode(t *testing.T) {
	c := newTestController(newFakeGen())

	err := c.JumpTo(report.StepResults)
	require.ErrorIs(t, err, ErrAdminOnly)
	assert.Equal(t, report.StepIntro, c.Snapshot().Step)

	c.SetAdminMode(true)
	require.NoError(t, c.JumpTo(report.StepResults))
	assert.Equal(t, report.StepResults, c.Snapshot().Step)

	err = c.JumpTo(report.Step(99))
	require.ErrorIs(t, err, ErrInvalidStep)
}

func TestResetClearsAggregateNotSession(t *testing.T) {
	g := newFakeGen()
	c := newTestController(g)
	completedIntro(c)
	c.SetField(report.FieldReason, "because")
	require.NoError(t, c.Advance())

	c.Reset()

	snap := c.Snapshot()
	assert.Equal(t, report.StepIntro, snap.Step)
	assert.Equal(t, report.Report{}, snap.Report)
	assert.Empty(t, snap.Chart)
}

func TestGenerateSectionWritesNormalizedText(t *testing.T) {
	g := newFakeGen()
	g.text = "## Rationale\n\nThe initiative is **necessary** because:\n* low scores"
	c := newTestController(g)
	completedIntro(c)

	err := c.GenerateSection(context.Background(), report.FieldReason, "- low scores")
	require.NoError(t, err)

	got := c.Snapshot().Report.Reason
	assert.Equal(t, "Rationale\n\nThe initiative is necessary because:\n - low scores", got)
}

func TestGenerateSectionRejectsUnknownField(t *testing.T) {
	c := newTestController(newFakeGen())
	err := c.GenerateSection(context.Background(), report.FieldTitle, "")
	require.ErrorIs(t, err, ErrUnknownSection)
}

func TestGenerateFailureLeavesAggregateUntouched(t *testing.T) {
	g := newFakeGen()
	g.textErr = errors.New("upstream unavailable")
	c := newTestController(g)
	completedIntro(c)
	c.SetField(report.FieldReason, "previous draft")

	err := c.GenerateSection(context.Background(), report.FieldReason, "notes")
	require.Error(t, err)

	snap := c.Snapshot()
	assert.Equal(t, "previous draft", snap.Report.Reason)
	assert.False(t, snap.Generating)
}

func TestMissingCredentialSurfacesBeforeBusy(t *testing.T) {
	c := NewController(func(ctx context.Context) (Generator, error) {
		return nil, gen.ErrMissingAPIKey
	})
	completedIntro(c)

	err := c.GenerateSection(context.Background(), report.FieldReason, "notes")
	require.ErrorIs(t, err, gen.ErrMissingAPIKey)
	assert.False(t, c.Snapshot().Generating)
}

func TestConcurrentGenerationRejectedWhileBusy(t *testing.T) {
	g := newFakeGen()
	g.block = true
	g.text = "draft"
	c := newTestController(g)
	completedIntro(c)

	done := make(chan error, 1)
	go func() {
		done <- c.GenerateSection(context.Background(), report.FieldReason, "notes")
	}()

	select {
	case <-g.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first generation never started")
	}
	assert.True(t, c.Snapshot().Generating)

	err := c.GenerateSection(context.Background(), report.FieldContent, "notes")
	require.ErrorIs(t, err, ErrBusy)

	_, err = c.Suggest(context.Background(), report.FieldContent)
	require.ErrorIs(t, err, ErrBusy)

	close(g.release)
	require.NoError(t, <-done)
	assert.False(t, c.Snapshot().Generating)

	// Flag released, next call goes through.
	g.block = false
	require.NoError(t, c.GenerateSection(context.Background(), report.FieldContent, "notes"))
}

func TestGenerateResultsMalformedChartDegrades(t *testing.T) {
	g := newFakeGen()
	g.text = "Scores improved from 45% to 82%."
	g.chartErr = gen.ErrMalformedChart
	c := newTestController(g)
	completedIntro(c)

	err := c.GenerateResults(context.Background(), "before 45, after 82")
	require.NoError(t, err)

	snap := c.Snapshot()
	assert.Equal(t, "Scores improved from 45% to 82%.", snap.Report.Results)
	assert.Empty(t, snap.Chart)
	assert.False(t, snap.Generating)
}

func TestGenerateResultsChartTransportErrorKeepsAnalysis(t *testing.T) {
	g := newFakeGen()
	g.text = "Analysis paragraph."
	g.chartErr = errors.New("rate limited")
	c := newTestController(g)
	completedIntro(c)

	err := c.GenerateResults(context.Background(), "before 45, after 82")
	require.Error(t, err)
	require.NotErrorIs(t, err, gen.ErrMalformedChart)

	snap := c.Snapshot()
	assert.Equal(t, "Analysis paragraph.", snap.Report.Results)
	assert.Empty(t, snap.Chart)
	assert.False(t, snap.Generating)
}

func TestGenerateResultsStoresChart(t *testing.T) {
	g := newFakeGen()
	g.text = "Analysis paragraph."
	g.chart = report.ChartSeries{
		{Name: "Before", Value: 45},
		{Name: "After", Value: 82},
	}
	c := newTestController(g)
	completedIntro(c)

	require.NoError(t, c.GenerateResults(context.Background(), "before 45, after 82"))

	snap := c.Snapshot()
	require.Len(t, snap.Chart, 2)
	assert.Equal(t, "After", snap.Chart[1].Name)
	assert.Equal(t, 1, g.chartCalls)
}

func TestSuggestReturnsNotesWithoutTouchingAggregate(t *testing.T) {
	g := newFakeGen()
	g.suggestions = "- weak engagement\n- low test scores"
	c := newTestController(g)
	completedIntro(c)

	notes, err := c.Suggest(context.Background(), report.FieldReason)
	require.NoError(t, err)
	assert.Equal(t, "- weak engagement\n- low test scores", notes)
	assert.Empty(t, c.Snapshot().Report.Reason)
}

func TestObserverSeesMutations(t *testing.T) {
	c := newTestController(newFakeGen())

	var steps []report.Step
	c.Subscribe(func(s Snapshot) {
		steps = append(steps, s.Step)
	})

	completedIntro(c)
	require.NoError(t, c.Advance())
	require.NotEmpty(t, steps)
	assert.Equal(t, report.StepReason, steps[len(steps)-1])
}
