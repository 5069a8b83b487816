// Package workflow drives an import from statement upload to the final
// keep/cancel review. It owns the candidate list and cursor exclusively;
// the extractors never touch them once parsing completes.
package workflow

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/subtrackr/subscan/cancel"
	"github.com/subtrackr/subscan/extractor"
	"github.com/subtrackr/subscan/extractor/common"
	"github.com/subtrackr/subscan/extractor/rules"
	"github.com/subtrackr/subscan/subscriptions"
)

// State names the phases of an import.
type State string

const (
	StateIdle     State = "idle"
	StateParsing  State = "parsing"
	StateCreating State = "creating"
	StateReady    State = "ready"
	StateDone     State = "done"
)

// EventKind classifies workflow events.
type EventKind string

const (
	EventState      EventKind = "state"
	EventCreated    EventKind = "created"
	EventSkipped    EventKind = "skipped"
	EventLinkOpened EventKind = "link"
	EventDone       EventKind = "done"
)

// Event is a typed transition notification emitted on the flow's event
// channel instead of an ambient bus.
type Event struct {
	Kind      EventKind
	State     State
	Candidate *common.Candidate
	Link      *common.CancelLink
	Err       error
}

// Option configures a Flow.
type Option func(*Flow)

// WithLinkOpener sets the callback invoked when a cancellation link
// should be opened for the user.
func WithLinkOpener(open func(common.CancelLink)) Option {
	return func(f *Flow) { f.openLink = open }
}

// Flow is the per-import state machine:
// idle -> parsing -> creating -> ready -> done.
type Flow struct {
	rules    rules.ExtractionRules
	store    subscriptions.Store
	links    *cancel.Registry
	openLink func(common.CancelLink)

	state      State
	candidates []common.Candidate
	cursor     int
	summary    common.Summary
	events     chan Event
}

// New returns a Flow in the idle state.
func New(store subscriptions.Store, links *cancel.Registry, r rules.ExtractionRules, opts ...Option) *Flow {
	f := &Flow{
		rules:  r,
		store:  store,
		links:  links,
		state:  StateIdle,
		events: make(chan Event, 64),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Events returns the channel transition events are emitted on. Events
// are dropped, never blocked on, when no one is listening.
func (f *Flow) Events() <-chan Event { return f.events }

// State returns the current state.
func (f *Flow) State() State { return f.state }

// Candidates returns the surviving candidate list.
func (f *Flow) Candidates() []common.Candidate { return f.candidates }

// Cursor returns the index of the candidate under review.
func (f *Flow) Cursor() int { return f.cursor }

// Summary returns the running import accounting.
func (f *Flow) Summary() common.Summary { return f.summary }

// Current returns the candidate under review, if any.
func (f *Flow) Current() (*common.Candidate, bool) {
	if f.state != StateReady || f.cursor >= len(f.candidates) {
		return nil, false
	}
	return &f.candidates[f.cursor], true
}

// Run processes a statement file end to end: extract, skip existing,
// create the rest sequentially, bind identifiers, and land in ready for
// review. Any extraction failure returns the flow to idle with no
// partial state retained.
func (f *Flow) Run(ctx context.Context, path string) (common.Summary, error) {
	f.setState(StateParsing)

	candidates, err := extractor.FromFile(path, f.rules)
	if err != nil {
		f.reset()
		return common.Summary{}, err
	}
	return f.reconcile(ctx, candidates)
}

// RunReader is Run for already-open statement content; the filename
// decides the extraction path.
func (f *Flow) RunReader(ctx context.Context, reader io.Reader, filename string) (common.Summary, error) {
	f.setState(StateParsing)

	candidates, err := extractor.FromReader(reader, filename, f.rules)
	if err != nil {
		f.reset()
		return common.Summary{}, err
	}
	return f.reconcile(ctx, candidates)
}

func (f *Flow) reconcile(ctx context.Context, candidates []common.Candidate) (common.Summary, error) {
	existing, err := f.store.List(ctx)
	if err != nil {
		f.reset()
		return common.Summary{}, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	matcher := subscriptions.NewMatcher(existing)

	// Phase 1: candidates matching a tracked subscription by normalized
	// name are never submitted for creation.
	toCreate := make([]int, 0, len(candidates))
	fresh := make([]bool, len(candidates))
	for i := range candidates {
		if matcher.Exists(candidates[i].Name) {
			f.summary.SkippedCount++
			f.emit(Event{Kind: EventSkipped, State: f.state, Candidate: &candidates[i]})
			continue
		}
		toCreate = append(toCreate, i)
	}

	f.setState(StateCreating)

	// Creation is sequential on purpose: document order in, document
	// order out. One bad line must never block the rest.
	err = Sequential(ctx, len(toCreate), func(ctx context.Context, n int) error {
		i := toCreate[n]
		_, err := f.store.Create(ctx, subscriptions.NewSubscription{
			Name:     candidates[i].Name,
			Price:    candidates[i].Amount,
			Category: f.rules.DefaultCategory,
			Interval: candidates[i].Interval,
		})
		if err != nil {
			return err
		}
		fresh[i] = true
		f.summary.CreatedCount++
		f.emit(Event{Kind: EventCreated, State: f.state, Candidate: &candidates[i]})
		return nil
	}, func(n int, err error) {
		i := toCreate[n]
		log.Printf("Warning: failed to create %q: %v", candidates[i].Name, err)
		f.summary.SkippedCount++
		f.emit(Event{Kind: EventSkipped, State: f.state, Candidate: &candidates[i], Err: err})
	})
	if err != nil {
		// Aborted mid-batch: committed counts stand, review never opens.
		return f.summary, err
	}

	// Phase 2: re-fetch and bind every candidate, including skipped
	// ones, back to a persisted identifier.
	f.bind(ctx, candidates, fresh)

	f.candidates = candidates
	f.cursor = 0
	f.setState(StateReady)
	return f.summary, nil
}

func (f *Flow) bind(ctx context.Context, candidates []common.Candidate, fresh []bool) {
	current, err := f.store.List(ctx)
	if err != nil {
		log.Printf("Warning: failed to re-fetch subscriptions, review will be link-only: %v", err)
		current = nil
	}
	matcher := subscriptions.NewMatcher(current)

	for i := range candidates {
		if sub, ok := matcher.Match(candidates[i].Name, candidates[i].Amount, fresh[i]); ok {
			candidates[i].SubscriptionID = sub.ID
		}
		if f.links != nil {
			link := f.links.Resolve(candidates[i].Name)
			candidates[i].Cancel = &link
		}
	}
}

// Keep advances past the current candidate without side effects.
func (f *Flow) Keep() {
	if f.state != StateReady {
		return
	}
	f.advance()
}

// Cancel opens the cancellation link for the current candidate and, when
// it is bound to a subscription, marks that record inactive. The update
// is best-effort: the link was already opened, so the workflow advances
// whether or not it succeeds.
func (f *Flow) Cancel(ctx context.Context) {
	cand, ok := f.Current()
	if !ok {
		return
	}

	if cand.Cancel != nil {
		f.emit(Event{Kind: EventLinkOpened, State: f.state, Candidate: cand, Link: cand.Cancel})
		if f.openLink != nil {
			f.openLink(*cand.Cancel)
		}
	}

	f.deactivate(ctx, cand)
	f.summary.CanceledCount++
	f.advance()
}

// CancelAll marks every remaining bound candidate inactive and finishes
// the review.
func (f *Flow) CancelAll(ctx context.Context) {
	if f.state != StateReady {
		return
	}
	for ; f.cursor < len(f.candidates); f.cursor++ {
		cand := &f.candidates[f.cursor]
		f.deactivate(ctx, cand)
		f.summary.CanceledCount++
	}
	f.setState(StateDone)
	f.emit(Event{Kind: EventDone, State: f.state})
}

func (f *Flow) deactivate(ctx context.Context, cand *common.Candidate) {
	if cand.SubscriptionID == "" {
		return
	}
	inactive := false
	if err := f.store.Update(ctx, cand.SubscriptionID, subscriptions.Patch{Active: &inactive}); err != nil {
		log.Printf("Warning: failed to mark %q inactive: %v", cand.Name, err)
	}
}

func (f *Flow) advance() {
	f.cursor++
	if f.cursor >= len(f.candidates) {
		f.setState(StateDone)
		f.emit(Event{Kind: EventDone, State: f.state})
	}
}

func (f *Flow) reset() {
	f.candidates = nil
	f.cursor = 0
	f.summary = common.Summary{}
	f.setState(StateIdle)
}

func (f *Flow) setState(s State) {
	f.state = s
	f.emit(Event{Kind: EventState, State: s})
}

func (f *Flow) emit(ev Event) {
	select {
	case f.events <- ev:
	default:
	}
}
