// Package wizard owns the report-writing flow: the current step, the
// transition rules, and the orchestration of generation calls against the
// report aggregate. All state lives in the Controller and is mutated only
// through its operations; the presentation layer observes it through
// snapshots and subscriptions, never through shared variables.
package wizard

import (
	"errors"
	"sync"

	"reportcraft/internal/ledger"
	"reportcraft/internal/logging"
	"reportcraft/internal/report"
)

var (
	// ErrBusy is returned when a generation request arrives while another
	// generation call is still in flight.
	ErrBusy = errors.New("a generation call is already in progress")

	// ErrAdminOnly guards free step navigation.
	ErrAdminOnly = errors.New("step jumping requires admin mode")

	// ErrStepIncomplete is returned by Advance when the current step's
	// required fields are not filled in. The step is left unchanged.
	ErrStepIncomplete = errors.New("current step is not complete")

	// ErrInvalidStep is returned for jumps outside the wizard's range.
	ErrInvalidStep = errors.New("step out of range")
)

// Snapshot is an immutable view of the wizard state, safe to hand to any
// presentation layer.
type Snapshot struct {
	Step       report.Step
	Report     report.Report
	Chart      report.ChartSeries
	Generating bool
	AdminMode  bool
	Session    ledger.Session
}

// Observer receives a snapshot after every state mutation.
type Observer func(Snapshot)

// Controller is the wizard state machine.
type Controller struct {
	mu         sync.Mutex
	step       report.Step
	rep        report.Report
	chart      report.ChartSeries
	generating bool
	adminMode  bool
	session    ledger.Session

	clients   ClientFactory
	observers []Observer
}

// NewController creates a controller at the first step with an empty
// aggregate. The factory builds a generation client from the currently
// configured credential; it is consulted before every generation
// operation so a credential configured mid-session takes effect
// immediately.
func NewController(clients ClientFactory) *Controller {
	return &Controller{
		step:    report.FirstStep,
		clients: clients,
	}
}

// Subscribe registers an observer. The observer is invoked synchronously
// after every mutation, outside the controller's lock.
func (c *Controller) Subscribe(fn Observer) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// snapshotLocked builds a snapshot. Callers hold c.mu.
func (c *Controller) snapshotLocked() Snapshot {
	chart := make(report.ChartSeries, len(c.chart))
	copy(chart, c.chart)
	return Snapshot{
		Step:       c.step,
		Report:     c.rep,
		Chart:      chart,
		Generating: c.generating,
		AdminMode:  c.adminMode,
		Session:    c.session,
	}
}

// notifyLocked snapshots under the lock, releases it, and fans the
// snapshot out to observers. Callers hold c.mu and must not touch state
// afterwards.
func (c *Controller) notifyLocked() {
	snap := c.snapshotLocked()
	observers := make([]Observer, len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()
	for _, fn := range observers {
		fn(snap)
	}
	c.mu.Lock()
}

// SetSession records the authenticated identity on the wizard.
func (c *Controller) SetSession(s ledger.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
	c.notifyLocked()
}

// SetAdminMode toggles the free-navigation override. This is an explicit
// testing/demo escape hatch, not a normal user mode.
func (c *Controller) SetAdminMode(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adminMode = on
	logging.Wizard("admin mode: %v", on)
	c.notifyLocked()
}

// Advance moves to the next step when the current step's required fields
// are filled. At the terminal step it is a no-op.
func (c *Controller) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.rep.StepComplete(c.step) {
		logging.WizardDebug("advance blocked at %s: step incomplete", c.step)
		return ErrStepIncomplete
	}
	if c.step >= report.LastStep {
		return nil
	}
	c.step++
	logging.Wizard("advanced to step %d (%s)", c.step, c.step)
	c.notifyLocked()
	return nil
}

// Retreat moves one step back, clamped at the first step.
func (c *Controller) Retreat() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step <= report.FirstStep {
		return
	}
	c.step--
	logging.Wizard("retreated to step %d (%s)", c.step, c.step)
	c.notifyLocked()
}

// JumpTo moves directly to the given step, bypassing field-completeness
// gating. Permitted only in admin mode.
func (c *Controller) JumpTo(s report.Step) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.adminMode {
		return ErrAdminOnly
	}
	if !s.Valid() {
		return ErrInvalidStep
	}
	c.step = s
	logging.Wizard("admin jump to step %d (%s)", s, s)
	c.notifyLocked()
	return nil
}

// Reset clears the aggregate and chart and returns to the first step.
// The session and its credit state are not affected.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rep = report.Report{}
	c.chart = nil
	c.step = report.FirstStep
	logging.Wizard("wizard reset")
	c.notifyLocked()
}

// Restore replaces the aggregate and chart wholesale, for resuming a
// saved draft. The step stays where it is.
func (c *Controller) Restore(r report.Report, chart report.ChartSeries) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rep = r
	c.chart = make(report.ChartSeries, len(chart))
	copy(c.chart, chart)
	logging.Wizard("draft restored: title=%q", r.Title)
	c.notifyLocked()
}

// SetField overwrites one aggregate field wholesale (direct user edit).
func (c *Controller) SetField(f report.Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rep.Set(f, value)
	c.notifyLocked()
}

// AssembleDocument renders the current aggregate into the canonical
// flat-text document.
func (c *Controller) AssembleDocument() string {
	c.mu.Lock()
	rep := c.rep
	chart := make(report.ChartSeries, len(c.chart))
	copy(chart, c.chart)
	c.mu.Unlock()

	return report.Assemble(&rep, chart)
}
