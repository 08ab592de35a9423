package service

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
	"github.com/aussiebroadwan/intake/internal/intake/store"
	"github.com/aussiebroadwan/intake/internal/intake/validation"
	"github.com/aussiebroadwan/intake/pkg/slogx"
)

// DefaultBannerDuration is how long the success banner stays visible.
const DefaultBannerDuration = 5 * time.Second

// Messages shown for store failures.
const (
	MsgEmailExists        = "A client with this email already exists"
	MsgBusinessNameExists = "A client with this business name already exists"
	MsgSaveFailed         = "Something went wrong while saving the client. Please try again."
)

// State is the submission state of a Workflow.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// NotifyStatus tracks the welcome email of the most recent created client.
type NotifyStatus int

const (
	NotifyNone NotifyStatus = iota
	NotifyPending
	NotifySucceeded
	NotifyFailed
)

func (n NotifyStatus) String() string {
	switch n {
	case NotifyPending:
		return "pending"
	case NotifySucceeded:
		return "succeeded"
	case NotifyFailed:
		return "failed"
	default:
		return "none"
	}
}

func (n NotifyStatus) MarshalText() ([]byte, error) { return []byte(n.String()), nil }

// Outcome is the result of a single Submit.
type Outcome string

const (
	OutcomeCreated  Outcome = "created"
	OutcomeRejected Outcome = "rejected"
	OutcomeConflict Outcome = "conflict"
	OutcomeFailed   Outcome = "failed"
	OutcomeIgnored  Outcome = "ignored"
)

// FormState is the per-session view of the intake form.
type FormState struct {
	Draft         domain.Draft
	Errors        validation.Errors
	State         State
	Submitting    bool
	BannerVisible bool
	Clients       []domain.Client
	Notice        string
	Notify        NotifyStatus
}

func (f FormState) clone() FormState {
	f.Errors = f.Errors.Clone()
	f.Clients = slices.Clone(f.Clients)
	return f
}

// Workflow coordinates validation, the store and the welcome notification
// for one session. At most one submission is in flight at a time.
type Workflow struct {
	clients        store.Clients
	dispatcher     Dispatcher
	bannerDuration time.Duration
	now            func() time.Time
	onOutcome      func(Outcome)

	mu       sync.Mutex
	form     FormState
	banner   *time.Timer
	bannerID uint64
	notifyID uint64
	lastUsed time.Time
	closed   bool
}

// WorkflowOption configures a Workflow.
type WorkflowOption func(*Workflow)

// WithBannerDuration overrides DefaultBannerDuration.
func WithBannerDuration(d time.Duration) WorkflowOption {
	return func(w *Workflow) {
		if d > 0 {
			w.bannerDuration = d
		}
	}
}

// WithWorkflowClock overrides the clock used to track idleness.
func WithWorkflowClock(now func() time.Time) WorkflowOption {
	return func(w *Workflow) { w.now = now }
}

// WithOutcomeHook is called once per Submit with its outcome.
func WithOutcomeHook(fn func(Outcome)) WorkflowOption {
	return func(w *Workflow) { w.onOutcome = fn }
}

func NewWorkflow(clients store.Clients, dispatcher Dispatcher, opts ...WorkflowOption) *Workflow {
	w := &Workflow{
		clients:        clients,
		dispatcher:     dispatcher,
		bannerDuration: DefaultBannerDuration,
		now:            time.Now,
		form:           FormState{Errors: validation.Errors{}},
	}
	for _, opt := range opts {
		opt(w)
	}
	w.lastUsed = w.now()
	return w
}

// Snapshot returns a copy of the current form state.
func (w *Workflow) Snapshot() FormState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form.clone()
}

// LastUsed reports when the workflow last handled a call.
func (w *Workflow) LastUsed() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastUsed
}

// Submit runs one pass of the intake state machine for d:
//
//	Idle -> Validating -> (Idle with errors | Submitting)
//	Submitting -> create -> (Idle with conflict | Idle with notice | notify, refresh, Idle)
//
// A Submit arriving while another is Submitting returns OutcomeIgnored
// without touching the store. The store calls do not observe ctx
// cancellation; an in-flight submission always runs to completion.
func (w *Workflow) Submit(ctx context.Context, d domain.Draft) (outcome Outcome) {
	if w.onOutcome != nil {
		defer func() { w.onOutcome(outcome) }()
	}
	log := slogx.FromContext(ctx)

	w.mu.Lock()
	w.lastUsed = w.now()
	if w.form.Submitting {
		w.mu.Unlock()
		log.Debug("submit ignored: submission in flight")
		return OutcomeIgnored
	}

	w.form.State = StateValidating
	w.form.Draft = d
	w.form.Notice = ""

	if errs := validation.Validate(d); !errs.Valid() {
		w.form.Errors = errs
		w.form.State = StateIdle
		w.mu.Unlock()
		return OutcomeRejected
	}

	w.form.Errors = validation.Errors{}
	w.form.State = StateSubmitting
	w.form.Submitting = true
	w.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	created, err := w.clients.CreateClient(ctx, d.Normalized())

	if err != nil {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.form.State = StateIdle
		w.form.Submitting = false

		var conflict *store.ConflictError
		if errors.As(err, &conflict) {
			w.form.Errors = validation.Errors{conflict.Field: conflictMessage(conflict.Field)}
			log.Info("client conflict", "field", conflict.Field)
			return OutcomeConflict
		}

		log.Error("failed to create client", "error", err)
		w.form.Notice = MsgSaveFailed
		return OutcomeFailed
	}

	log.Info("client created", "client_id", created.ID)

	results := w.dispatcher.Dispatch(ctx, created.Email, created.Name)

	w.mu.Lock()
	w.form.Draft = domain.Draft{}
	w.form.Errors = validation.Errors{}
	w.form.Notify = NotifyPending
	w.notifyID++
	notifyID := w.notifyID
	w.showBannerLocked()
	w.mu.Unlock()

	go w.trackNotification(notifyID, results)

	// The refresh starts only after the create has resolved so the new
	// record is part of the result.
	list := w.loadClients(ctx)

	w.mu.Lock()
	w.form.Clients = list
	w.form.State = StateIdle
	w.form.Submitting = false
	w.mu.Unlock()

	return OutcomeCreated
}

// Refresh reloads the client list, unless a submission is in flight.
func (w *Workflow) Refresh(ctx context.Context) FormState {
	w.mu.Lock()
	w.lastUsed = w.now()
	busy := w.form.Submitting
	w.mu.Unlock()

	if !busy {
		list := w.loadClients(ctx)
		w.mu.Lock()
		if !w.form.Submitting {
			w.form.Clients = list
		}
		w.mu.Unlock()
	}
	return w.Snapshot()
}

// Close stops the banner timer. The workflow must not be used afterwards.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.banner != nil {
		w.banner.Stop()
		w.banner = nil
	}
}

// loadClients lists the store, degrading to an empty list on failure.
func (w *Workflow) loadClients(ctx context.Context) []domain.Client {
	list, err := w.clients.ListClients(ctx)
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to list clients",
			"error", err,
			"unavailable", errors.Is(err, store.ErrUnavailable),
		)
		return []domain.Client{}
	}
	if list == nil {
		list = []domain.Client{}
	}
	return list
}

func (w *Workflow) showBannerLocked() {
	if w.closed {
		return
	}
	if w.banner != nil {
		w.banner.Stop()
	}

	w.bannerID++
	id := w.bannerID
	w.form.BannerVisible = true
	w.banner = time.AfterFunc(w.bannerDuration, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		// A newer success restarted the banner.
		if w.bannerID == id {
			w.form.BannerVisible = false
			w.banner = nil
		}
	})
}

func (w *Workflow) trackNotification(id uint64, results <-chan error) {
	err, ok := <-results
	status := NotifySucceeded
	if !ok || err != nil {
		status = NotifyFailed
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	// Only the latest creation's result is shown.
	if w.notifyID == id {
		w.form.Notify = status
	}
}

func conflictMessage(f domain.Field) string {
	if f == domain.FieldBusinessName {
		return MsgBusinessNameExists
	}
	return MsgEmailExists
}
