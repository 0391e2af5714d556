package media

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// State is the lifecycle state of a long-running synthesis job.
type State string

const (
	StateSubmitted State = "submitted"
	StatePolling   State = "polling"
	StateDone      State = "done"
	StateFailed    State = "failed"
)

// ProgressFunc receives human-readable progress narration while an operation
// is in flight. Messages are monotonic: no milestone is ever repeated, and a
// completion message always precedes resolution.
type ProgressFunc func(message string)

// Operation is a handle to one long-running media-synthesis job. Callers
// cancel by cancelling the context passed to Submit and discarding the
// handle; there is no separate cancel primitive.
type Operation struct {
	ID      string
	jobName string

	mu            sync.Mutex
	state         State
	polls         int
	nextMilestone int
	result        string
	err           error

	onProgress ProgressFunc
	done       chan struct{}
}

func newOperation(jobName string, onProgress ProgressFunc) *Operation {
	return &Operation{
		ID:         uuid.NewString(),
		jobName:    jobName,
		state:      StateSubmitted,
		onProgress: onProgress,
		done:       make(chan struct{}),
	}
}

// State returns the operation's current lifecycle state.
func (o *Operation) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Polls returns how many status checks have been issued so far.
func (o *Operation) Polls() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.polls
}

// Wait blocks until the operation resolves or ctx is cancelled, returning
// the signed artifact locator.
func (o *Operation) Wait(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-o.done:
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result, o.err
}

func (o *Operation) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Operation) incPolls() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.polls++
	return o.polls
}

// notifyUpTo emits, in order, every not-yet-sent milestone whose poll count
// has been reached. The index guard keeps narration strictly monotonic.
func (o *Operation) notifyUpTo(count int) {
	o.mu.Lock()
	var due []string
	for o.nextMilestone < len(milestones) && milestones[o.nextMilestone].poll <= count {
		due = append(due, milestones[o.nextMilestone].message)
		o.nextMilestone++
	}
	fn := o.onProgress
	o.mu.Unlock()

	if fn == nil {
		return
	}
	for _, msg := range due {
		fn(msg)
	}
}

func (o *Operation) complete(locator string) {
	o.mu.Lock()
	o.state = StateDone
	o.result = locator
	fn := o.onProgress
	o.mu.Unlock()

	// Terminal narration always lands before the locator is observable.
	if fn != nil {
		fn(completionMessage)
	}
	close(o.done)
}

func (o *Operation) fail(err error) {
	o.mu.Lock()
	o.state = StateFailed
	o.err = err
	o.mu.Unlock()
	close(o.done)
}
