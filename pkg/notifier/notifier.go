// Package notifier implements the toast store: a list of short-lived notifications
// with synchronous change listeners.
package notifier

import (
	"crypto/rand"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/dukex/agentflow/pkg/models"
	"github.com/jonboulle/clockwork"
	"github.com/oklog/ulid"
)

// DefaultTTL is how long a toast stays visible unless dismissed.
const DefaultTTL = 5 * time.Second

// Listener receives the full toast list after every change.
type Listener func(toasts []models.Toast)

type subscription struct {
	id       int
	listener Listener
}

// Notifier holds the active toasts of one owner (usually a session).
type Notifier struct {
	clock clockwork.Clock
	ttl   time.Duration

	mu        sync.Mutex
	toasts    []models.Toast
	timers    map[string]clockwork.Timer
	listeners []subscription
	nextSubID int
	entropy   io.Reader
	closed    bool
}

// New creates a notifier. A nil clock means the real clock; a non-positive ttl means DefaultTTL.
func New(clock clockwork.Clock, ttl time.Duration) *Notifier {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Notifier{
		clock:   clock,
		ttl:     ttl,
		timers:  make(map[string]clockwork.Timer),
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Notify appends a toast, informs every listener and schedules its removal.
func (n *Notifier) Notify(kind models.ToastType, message string) models.Toast {
	n.mu.Lock()

	now := n.clock.Now()
	toast := models.Toast{
		ID:        ulid.MustNew(ulid.Timestamp(now), n.entropy).String(),
		Type:      kind,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(n.ttl),
	}

	n.toasts = append(n.toasts, toast)

	if !n.closed {
		id := toast.ID
		n.timers[id] = n.clock.AfterFunc(n.ttl, func() { n.expire(id) })
	}

	toasts, listeners := n.snapshot()
	n.mu.Unlock()

	broadcast(listeners, toasts)

	return toast
}

func (n *Notifier) Success(message string) models.Toast { return n.Notify(models.ToastSuccess, message) }
func (n *Notifier) Error(message string) models.Toast   { return n.Notify(models.ToastError, message) }
func (n *Notifier) Info(message string) models.Toast    { return n.Notify(models.ToastInfo, message) }
func (n *Notifier) Warning(message string) models.Toast { return n.Notify(models.ToastWarning, message) }

// Dismiss removes the toast with the given id. It reports whether a toast was removed.
func (n *Notifier) Dismiss(id string) bool {
	n.mu.Lock()

	timer, hasTimer := n.timers[id]
	removed := n.remove(id)
	toasts, listeners := n.snapshot()
	n.mu.Unlock()

	if hasTimer {
		timer.Stop()
	}

	if !removed {
		return false
	}

	broadcast(listeners, toasts)

	return true
}

// expire runs from the clock's timer. It must not call back into the clock.
func (n *Notifier) expire(id string) {
	n.mu.Lock()

	if !n.remove(id) {
		n.mu.Unlock()

		return
	}

	toasts, listeners := n.snapshot()
	n.mu.Unlock()

	broadcast(listeners, toasts)
}

// Subscribe registers a listener and returns the function that removes it.
func (n *Notifier) Subscribe(listener Listener) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextSubID++
	id := n.nextSubID
	n.listeners = append(n.listeners, subscription{id: id, listener: listener})

	var once sync.Once

	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()

			n.listeners = slices.DeleteFunc(n.listeners, func(s subscription) bool {
				return s.id == id
			})
		})
	}
}

// Toasts returns the active toasts in insertion order.
func (n *Notifier) Toasts() []models.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()

	return slices.Clone(n.toasts)
}

// Len returns the number of active toasts.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.toasts)
}

// Close stops every pending expiry and drops all listeners. Toasts added after Close never expire.
func (n *Notifier) Close() {
	n.mu.Lock()

	timers := make([]clockwork.Timer, 0, len(n.timers))
	for id, timer := range n.timers {
		timers = append(timers, timer)
		delete(n.timers, id)
	}

	n.listeners = nil
	n.closed = true
	n.mu.Unlock()

	for _, timer := range timers {
		timer.Stop()
	}
}

// remove deletes a toast and its timer entry. Callers hold n.mu.
func (n *Notifier) remove(id string) bool {
	delete(n.timers, id)

	i := slices.IndexFunc(n.toasts, func(t models.Toast) bool { return t.ID == id })
	if i < 0 {
		return false
	}

	n.toasts = slices.Delete(n.toasts, i, i+1)

	return true
}

// snapshot copies the state handed to listeners. Callers hold n.mu.
func (n *Notifier) snapshot() ([]models.Toast, []Listener) {
	listeners := make([]Listener, len(n.listeners))
	for i, s := range n.listeners {
		listeners[i] = s.listener
	}

	return slices.Clone(n.toasts), listeners
}

func broadcast(listeners []Listener, toasts []models.Toast) {
	for _, listener := range listeners {
		listener(slices.Clone(toasts))
	}
}
