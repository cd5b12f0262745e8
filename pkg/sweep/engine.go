package sweep

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sweeparr/pkg/exclusions"
	"sweeparr/pkg/logger"
	"sweeparr/pkg/machine"
)

// State is the engine's run lifecycle.
type State string

const (
	StateIdle      State = "Idle"
	StateScanning  State = "Scanning"
	StateReviewing State = "Reviewing"
	StateDeleting  State = "Deleting"
)

var (
	ErrNoSelection = errors.New("no candidates selected")
	ErrNoSuchItem  = errors.New("no such candidate")
)

// RulesProvider yields the retention thresholds. It is called once at
// scan start; the returned snapshot is held fixed for that run.
type RulesProvider func() Rules

// Engine drives the scan, review and delete cycle. All entry points are
// serialized by a mutex; there is no mid-run cancellation.
type Engine struct {
	mu sync.Mutex

	scanner  Scanner
	executor Executor
	notifier Notifier
	store    exclusions.Store
	rules    RulesProvider

	machine    *machine.StateMachine[State]
	candidates []Candidate
	lastScan   *ScanResult
	reporter   *Reporter
}

func NewEngine(scanner Scanner, executor Executor, notifier Notifier, store exclusions.Store, rules RulesProvider) *Engine {
	return &Engine{
		scanner:  scanner,
		executor: executor,
		notifier: notifier,
		store:    store,
		rules:    rules,
		reporter: NewReporter(),
		machine: machine.New(StateIdle,
			machine.From(StateIdle).To(StateScanning),
			machine.From(StateScanning).To(StateReviewing, StateIdle),
			machine.From(StateReviewing).To(StateScanning, StateDeleting),
			machine.From(StateDeleting).To(StateScanning),
		),
	}
}

// State reports the engine's current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.Current()
}

// Candidates returns the current review set.
func (e *Engine) Candidates() []Candidate {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Candidate, len(e.candidates))
	copy(out, e.candidates)
	return out
}

// Report returns the accumulated run report lines. The engine mutex
// guards the reporter pointer, which a new scan swaps out.
func (e *Engine) Report() []Entry {
	e.mu.Lock()
	rep := e.reporter
	e.mu.Unlock()
	return rep.Entries()
}

// LastScan returns the counters of the most recent scan.
func (e *Engine) LastScan() *ScanResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastScan
}

// Scan runs the candidate scanner and moves the engine into review.
func (e *Engine) Scan(ctx context.Context) (*ScanResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scanLocked(ctx)
}

func (e *Engine) scanLocked(ctx context.Context) (*ScanResult, error) {
	if err := e.machine.Transition(StateScanning); err != nil {
		return nil, err
	}

	e.reporter = NewReporter()
	e.reporter.Infof("starting library scan")

	return e.runScan(ctx)
}

// runScan assumes the machine is already in StateScanning.
func (e *Engine) runScan(ctx context.Context) (*ScanResult, error) {
	result, err := e.scanner.Scan(ctx, e.rules())
	if err != nil {
		e.reporter.Errorf("scan failed: %v", err)
		// a failed scan leaves nothing to review
		if terr := e.machine.Transition(StateIdle); terr != nil {
			logger.FromCtx(ctx).Errorw("failed to reset engine state", "error", terr)
		}
		e.candidates = nil
		e.lastScan = nil
		return nil, err
	}

	e.reporter.Infof("found %d item(s) of %d eligible for deletion", len(result.Candidates), result.TotalScanned)

	e.candidates = result.Candidates
	e.lastScan = result
	if err := e.machine.Transition(StateReviewing); err != nil {
		return nil, err
	}

	return result, nil
}

// ToggleSelect flips a candidate's selection while reviewing.
func (e *Engine) ToggleSelect(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.machine.Current() != StateReviewing {
		return machine.ErrInvalidTransition
	}

	for i := range e.candidates {
		if e.candidates[i].Item.ID == id {
			e.candidates[i].Selected = !e.candidates[i].Selected
			return nil
		}
	}

	return ErrNoSuchItem
}

// Exclude protects a candidate from automation and drops it from the
// review set without a re-scan.
func (e *Engine) Exclude(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.machine.Current() != StateReviewing {
		return machine.ErrInvalidTransition
	}

	idx := -1
	for i := range e.candidates {
		if e.candidates[i].Item.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNoSuchItem
	}

	if err := e.store.Add(ctx, id); err != nil {
		return err
	}

	e.reporter.Infof("%q added to the exclusion list", e.candidates[idx].Item.DisplayName())
	e.candidates = append(e.candidates[:idx], e.candidates[idx+1:]...)
	return nil
}

// ExcludeAll protects every currently visible candidate and clears the
// review set.
func (e *Engine) ExcludeAll(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.machine.Current() != StateReviewing {
		return machine.ErrInvalidTransition
	}

	if len(e.candidates) == 0 {
		return nil
	}

	ids := make([]string, 0, len(e.candidates))
	for _, c := range e.candidates {
		ids = append(ids, c.Item.ID)
	}

	if err := e.store.AddMany(ctx, ids); err != nil {
		return err
	}

	e.reporter.Infof("%d item(s) added to the exclusion list", len(ids))
	e.candidates = nil
	return nil
}

// DeleteSelected deletes the selected candidates downstream, notifies the
// webhook, and ends with a fresh scan so the review set reflects the new
// downstream state.
func (e *Engine) DeleteSelected(ctx context.Context) ([]Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.machine.Current() != StateReviewing {
		return nil, machine.ErrInvalidTransition
	}

	selected := 0
	for _, c := range e.candidates {
		if c.Selected {
			selected++
		}
	}
	if selected == 0 {
		return nil, ErrNoSelection
	}

	if err := e.machine.Transition(StateDeleting); err != nil {
		return nil, err
	}

	outcomes, summary, err := e.executor.DeleteSelected(ctx, e.candidates, e.reporter)
	if err != nil {
		err = fmt.Errorf("delete batch aborted: %w", err)
	}

	if summary.Succeeded > 0 {
		e.notifier.Notify(ctx, summary.Succeeded, summary.BytesFreed)
	}

	// consistency by refresh: always re-scan, even after a critical
	// setup failure, so the review set is rebuilt from live state
	if terr := e.machine.Transition(StateScanning); terr != nil {
		logger.FromCtx(ctx).Errorw("failed to restart scan after delete", "error", terr)
		return outcomes, err
	}

	if _, scanErr := e.runScan(ctx); scanErr != nil && err == nil {
		err = scanErr
	}

	return outcomes, err
}
