package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
	"github.com/aussiebroadwan/intake/internal/intake/store"
)

// DefaultWorkflowIdleTTL is how long an untouched workflow is kept.
const DefaultWorkflowIdleTTL = 30 * time.Minute

var ErrNoSession = errors.New("service: session id is required")

// IntakeService owns one Workflow per session. Workflows are never shared
// between sessions.
type IntakeService struct {
	Store      store.Store
	Dispatcher Dispatcher
	IdleTTL    time.Duration

	// WorkflowOptions are applied to every new workflow.
	WorkflowOptions []WorkflowOption

	// OnWorkflowCount, when set, receives the registry size after changes.
	OnWorkflowCount func(int)

	mu        sync.Mutex
	workflows map[string]*Workflow
}

// Workflow returns the session's workflow, creating it on first use.
func (s *IntakeService) Workflow(sessionID string) (*Workflow, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.workflows == nil {
		s.workflows = make(map[string]*Workflow)
	}
	if w, ok := s.workflows[sessionID]; ok {
		return w, nil
	}

	w := NewWorkflow(s.Store.Clients(), s.Dispatcher, s.WorkflowOptions...)
	s.workflows[sessionID] = w
	s.reportLocked()
	return w, nil
}

// Submit runs d through the session's workflow and returns the outcome with
// the resulting form state.
func (s *IntakeService) Submit(ctx context.Context, sessionID string, d domain.Draft) (Outcome, FormState, error) {
	w, err := s.Workflow(sessionID)
	if err != nil {
		return "", FormState{}, err
	}
	outcome := w.Submit(ctx, d)
	return outcome, w.Snapshot(), nil
}

// Form returns the session's form state with a freshly loaded client list.
func (s *IntakeService) Form(ctx context.Context, sessionID string) (FormState, error) {
	w, err := s.Workflow(sessionID)
	if err != nil {
		return FormState{}, err
	}
	return w.Refresh(ctx), nil
}

// ListClients reads the shared client list directly from the store.
func (s *IntakeService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.Store.Clients().ListClients(ctx)
}

// Discard drops the session's workflow, e.g. on sign-out.
func (s *IntakeService) Discard(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w, ok := s.workflows[sessionID]; ok {
		w.Close()
		delete(s.workflows, sessionID)
		s.reportLocked()
	}
}

// EvictIdle drops workflows unused since now-IdleTTL and returns how many
// were removed. Workflows with a submission in flight are kept.
func (s *IntakeService) EvictIdle(now time.Time) int {
	ttl := s.IdleTTL
	if ttl <= 0 {
		ttl = DefaultWorkflowIdleTTL
	}
	cutoff := now.Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, w := range s.workflows {
		if w.LastUsed().After(cutoff) || w.Snapshot().Submitting {
			continue
		}
		w.Close()
		delete(s.workflows, id)
		evicted++
	}
	if evicted > 0 {
		s.reportLocked()
	}
	return evicted
}

// Len reports how many workflows are held.
func (s *IntakeService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workflows)
}

// Close stops every workflow's timers.
func (s *IntakeService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, w := range s.workflows {
		w.Close()
		delete(s.workflows, id)
	}
	s.reportLocked()
}

func (s *IntakeService) reportLocked() {
	if s.OnWorkflowCount != nil {
		s.OnWorkflowCount(len(s.workflows))
	}
}
