package wizard

import (
	"context"
	"errors"
	"fmt"

	"reportcraft/internal/gen"
	"reportcraft/internal/logging"
	"reportcraft/internal/report"
)

// Generator is the slice of the generation client the wizard needs.
type Generator interface {
	GenerateText(ctx context.Context, prompt, systemInstruction string) (string, error)
	GenerateSuggestions(ctx context.Context, prompt, systemInstruction string) (string, error)
	GenerateChartSeries(ctx context.Context, raw string) (report.ChartSeries, error)
}

// ClientFactory builds a generation client from the currently configured
// credential. It is invoked at the start of every generation operation,
// so gen.ErrMissingAPIKey surfaces before any state is touched.
type ClientFactory func(ctx context.Context) (Generator, error)

// ErrUnknownSection is returned when a generation operation targets a
// field that has no prompt.
var ErrUnknownSection = errors.New("section does not support generation")

// acquireBusy takes the global generation flag, or reports ErrBusy if
// another call holds it. At most one generation runs at a time across
// the whole wizard, suggestion passes included.
func (c *Controller) acquireBusy() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generating {
		return ErrBusy
	}
	c.generating = true
	c.notifyLocked()
	return nil
}

// releaseBusy clears the generation flag. Deferred on every path out of
// a generation operation so a failure never leaves the wizard stuck.
func (c *Controller) releaseBusy() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generating = false
	c.notifyLocked()
}

// Suggest runs the idea-gathering pass for a section and returns a
// bullet list for the user to edit. It holds the same exclusivity flag
// as full drafting.
func (c *Controller) Suggest(ctx context.Context, f report.Field) (string, error) {
	c.mu.Lock()
	rep := c.rep
	c.mu.Unlock()

	prompt, instruction, ok := suggestPrompt(f, &rep)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSection, f)
	}

	client, err := c.clients(ctx)
	if err != nil {
		return "", err
	}
	if err := c.acquireBusy(); err != nil {
		return "", err
	}
	defer c.releaseBusy()

	logging.Wizard("suggest: section=%s", f)
	return client.GenerateSuggestions(ctx, prompt, instruction)
}

// GenerateSection drafts one text section from the user's suggestion
// notes, normalizes it, and writes it into the aggregate. On any error
// the aggregate is left untouched.
func (c *Controller) GenerateSection(ctx context.Context, f report.Field, notes string) error {
	c.mu.Lock()
	rep := c.rep
	c.mu.Unlock()

	prompt, instruction, ok := draftPrompt(f, &rep, notes)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSection, f)
	}

	client, err := c.clients(ctx)
	if err != nil {
		return err
	}
	if err := c.acquireBusy(); err != nil {
		return err
	}
	defer c.releaseBusy()

	logging.Wizard("generate: section=%s notes_len=%d", f, len(notes))
	text, err := client.GenerateText(ctx, prompt, instruction)
	if err != nil {
		return fmt.Errorf("generating %s: %w", f, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.rep.Set(f, report.Normalize(text))
	c.notifyLocked()
	return nil
}

// GenerateResults runs the two-pass results step: an analysis paragraph
// from the user's raw figures, then a chart extraction over the same
// figures. A malformed chart payload degrades to an empty series and
// the operation still succeeds; any other chart error is returned with
// the analysis text already committed.
func (c *Controller) GenerateResults(ctx context.Context, figures string) error {
	c.mu.Lock()
	rep := c.rep
	c.mu.Unlock()

	client, err := c.clients(ctx)
	if err != nil {
		return err
	}
	if err := c.acquireBusy(); err != nil {
		return err
	}
	defer c.releaseBusy()

	logging.Wizard("generate results: figures_len=%d", len(figures))
	analysis, err := client.GenerateText(ctx, analysisPrompt(&rep, figures), instructAnalysis)
	if err != nil {
		return fmt.Errorf("generating results analysis: %w", err)
	}

	c.mu.Lock()
	c.rep.Set(report.FieldResults, report.Normalize(analysis))
	c.notifyLocked()
	c.mu.Unlock()

	chart, err := client.GenerateChartSeries(ctx, figures)
	if err != nil {
		if !errors.Is(err, gen.ErrMalformedChart) {
			return fmt.Errorf("generating chart series: %w", err)
		}
		logging.WizardWarn("chart payload malformed, continuing without chart: %v", err)
		chart = nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.chart = chart
	c.notifyLocked()
	return nil
}
