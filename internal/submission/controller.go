// Package submission drives the recommendation request lifecycle: the
// Idle/Submitting/Succeeded/Failed state machine, last-issued-request-wins
// sequencing, and the HTTP client for the recommendation service.
package submission

import (
	"context"
	"sync"

	"playcoach/internal/recommendation"
	"playcoach/internal/situation"

	"github.com/google/uuid"
)

// Phase is the lifecycle stage of the current submission.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

// String returns the display name for each phase
func (p Phase) String() string {
	names := []string{"idle", "submitting", "succeeded", "failed"}
	if int(p) >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "unknown"
}

// State is a value snapshot of the controller. Recommendation is only
// meaningful when Phase is PhaseSucceeded and Message only when PhaseFailed.
type State struct {
	Phase          Phase
	Recommendation recommendation.Recommendation
	Message        string
	Seq            uint64
	RequestID      string
	Situation      situation.Situation
}

// Busy reports whether a request is in flight.
func (s State) Busy() bool { return s.Phase == PhaseSubmitting }

// Ticket identifies an issued request. Only the ticket with the latest Seq
// can settle the controller.
type Ticket struct {
	Request
	Seq uint64
}

// Controller owns the single SubmissionState of a form session.
type Controller struct {
	mu        sync.Mutex
	state     State
	issued    uint64
	newID     func() string
	observers []func(State)
}

// NewController returns a controller in PhaseIdle.
func NewController() *Controller {
	return &Controller{newID: uuid.NewString}
}

// OnChange registers fn to receive every accepted transition. Observers run
// synchronously on the goroutine that caused the transition.
func (c *Controller) OnChange(fn func(State)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether the latest request is still in flight.
func (c *Controller) Busy() bool {
	return c.State().Busy()
}

// Latest returns the sequence number of the most recently issued request.
func (c *Controller) Latest() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.issued
}

// Begin moves the controller to PhaseSubmitting for a new request, clearing
// any previous result or error. A Begin while another request is in flight
// supersedes it: the earlier ticket can no longer settle the controller.
func (c *Controller) Begin(s situation.Situation) Ticket {
	c.mu.Lock()
	c.issued++
	t := Ticket{
		Request: Request{ID: c.newID(), Situation: s},
		Seq:     c.issued,
	}
	c.state = State{
		Phase:     PhaseSubmitting,
		Seq:       t.Seq,
		RequestID: t.ID,
		Situation: s,
	}
	snapshot, observers := c.state, c.observers
	c.mu.Unlock()

	notify(observers, snapshot)
	return t
}

// Resolve settles the latest request with a recommendation. It returns false,
// leaving the state unchanged, when seq is stale or already settled.
func (c *Controller) Resolve(seq uint64, rec recommendation.Recommendation) bool {
	return c.settle(seq, func(s *State) {
		s.Phase = PhaseSucceeded
		s.Recommendation = rec
	})
}

// Fail settles the latest request with an operator-facing message.
func (c *Controller) Fail(seq uint64, message string) bool {
	if message == "" {
		message = GenericFailureMessage
	}
	return c.settle(seq, func(s *State) {
		s.Phase = PhaseFailed
		s.Message = message
	})
}

// Settle resolves or fails seq depending on err.
func (c *Controller) Settle(seq uint64, rec recommendation.Recommendation, err error) bool {
	if err != nil {
		return c.Fail(seq, FailureMessage(err))
	}
	return c.Resolve(seq, rec)
}

func (c *Controller) settle(seq uint64, apply func(*State)) bool {
	c.mu.Lock()
	if seq != c.issued || c.state.Phase != PhaseSubmitting {
		c.mu.Unlock()
		return false
	}
	apply(&c.state)
	snapshot, observers := c.state, c.observers
	c.mu.Unlock()

	notify(observers, snapshot)
	return true
}

// Submit runs a full cycle synchronously and returns the resulting state.
// If another request is issued meanwhile, the returned state reflects it.
func (c *Controller) Submit(ctx context.Context, r Recommender, s situation.Situation) State {
	t := c.Begin(s)
	rec, err := r.Recommend(ctx, t.Request)
	c.Settle(t.Seq, rec, err)
	return c.State()
}

func notify(observers []func(State), s State) {
	for _, fn := range observers {
		fn(s)
	}
}
