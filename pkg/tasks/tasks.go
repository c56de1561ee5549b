// Package tasks schedules delayed callbacks that are tied to the lifetime of an owner.
// Closing the owning Group cancels everything still pending, so a callback never
// runs against state that has already been torn down.
package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Func is the work executed when a task fires. ctx is cancelled when the group closes.
type Func func(ctx context.Context)

// Task is a handle on one scheduled callback.
type Task struct {
	group  *Group
	timer  clockwork.Timer
	status Status
	done   chan struct{}
}

// Done is closed once the task completed or was cancelled.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Status returns the current state of the task.
func (t *Task) Status() Status {
	t.group.mu.Lock()
	defer t.group.mu.Unlock()

	return t.status
}

// Cancel prevents a pending task from running. It reports whether the task was still pending.
func (t *Task) Cancel() bool {
	g := t.group

	g.mu.Lock()
	if t.status != StatusPending {
		g.mu.Unlock()

		return false
	}

	delete(g.pending, t)
	t.status = StatusCancelled
	timer := t.timer
	g.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}

	close(t.done)

	return true
}

// Group owns a set of tasks and cancels them together.
type Group struct {
	clock  clockwork.Clock
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	pending map[*Task]struct{}
	closed  bool
	running sync.WaitGroup
}

// NewGroup creates a group whose tasks observe a context derived from parent.
// A nil clock means the real clock.
func NewGroup(parent context.Context, clock clockwork.Clock) *Group {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	ctx, cancel := context.WithCancel(parent)

	return &Group{
		clock:   clock,
		ctx:     ctx,
		cancel:  cancel,
		pending: make(map[*Task]struct{}),
	}
}

// After schedules fn to run once delay has elapsed on the group's clock.
// On a closed group the returned task is already cancelled.
func (g *Group) After(delay time.Duration, fn Func) *Task {
	task := &Task{group: g, status: StatusPending, done: make(chan struct{})}

	g.mu.Lock()
	if g.closed || g.ctx.Err() != nil {
		task.status = StatusCancelled
		g.mu.Unlock()
		close(task.done)

		return task
	}

	g.pending[task] = struct{}{}
	g.mu.Unlock()

	timer := g.clock.AfterFunc(delay, func() { g.fire(task, fn) })

	g.mu.Lock()
	task.timer = timer
	g.mu.Unlock()

	return task
}

// fire runs from the clock's timer. It must not call back into the clock.
func (g *Group) fire(task *Task, fn Func) {
	g.mu.Lock()
	if _, ok := g.pending[task]; !ok || g.closed {
		g.mu.Unlock()

		return
	}

	delete(g.pending, task)
	task.status = StatusRunning
	g.running.Add(1)
	g.mu.Unlock()

	defer g.running.Done()

	fn(g.ctx)

	g.mu.Lock()
	task.status = StatusCompleted
	g.mu.Unlock()

	close(task.done)
}

// Pending returns how many tasks are waiting to fire.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.pending)
}

// Context returns the context handed to task functions.
func (g *Group) Context() context.Context {
	return g.ctx
}

// Close cancels every pending task and waits for running ones to return.
// Task functions must not call Close on their own group.
func (g *Group) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()

		return
	}

	g.closed = true

	cancelled := make([]*Task, 0, len(g.pending))
	timers := make([]clockwork.Timer, 0, len(g.pending))

	for task := range g.pending {
		task.status = StatusCancelled
		cancelled = append(cancelled, task)

		if task.timer != nil {
			timers = append(timers, task.timer)
		}
	}

	clear(g.pending)
	g.mu.Unlock()

	g.cancel()

	for _, timer := range timers {
		timer.Stop()
	}

	for _, task := range cancelled {
		close(task.done)
	}

	g.running.Wait()
}
