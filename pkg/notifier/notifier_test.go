package notifier

import (
	"testing"
	"time"

	"github.com/dukex/agentflow/pkg/models"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifier(t *testing.T) (*Notifier, *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	n := New(clock, DefaultTTL)
	t.Cleanup(n.Close)

	return n, clock
}

func TestNotifier_NotifyAppendsOneToast(t *testing.T) {
	n, clock := newTestNotifier(t)

	before := n.Len()
	toast := n.Notify(models.ToastSuccess, "Agent saved successfully!")

	assert.Equal(t, before+1, n.Len())
	assert.NotEmpty(t, toast.ID)
	assert.Equal(t, models.ToastSuccess, toast.Type)
	assert.Equal(t, clock.Now().Add(DefaultTTL), toast.ExpiresAt)
	assert.Equal(t, []models.Toast{toast}, n.Toasts())
}

func TestNotifier_ListenersAreInformedSynchronously(t *testing.T) {
	n, _ := newTestNotifier(t)

	var received [][]models.Toast
	unsubscribe := n.Subscribe(func(toasts []models.Toast) {
		received = append(received, toasts)
	})

	first := n.Info("first")
	second := n.Warning("second")

	require.Len(t, received, 2)
	assert.Equal(t, []models.Toast{first}, received[0])
	assert.Equal(t, []models.Toast{first, second}, received[1])

	unsubscribe()
	unsubscribe()
	n.Error("third")
	assert.Len(t, received, 2)
}

func TestNotifier_ToastExpiresAfterTTL(t *testing.T) {
	n, clock := newTestNotifier(t)

	toast := n.Success("Webhook URL copied to clipboard")

	clock.Advance(DefaultTTL - time.Millisecond)
	assert.Equal(t, 1, n.Len())

	clock.Advance(time.Millisecond)
	assert.Eventually(t, func() bool {
		for _, active := range n.Toasts() {
			if active.ID == toast.ID {
				return false
			}
		}

		return true
	}, time.Second, 5*time.Millisecond)
}

func TestNotifier_DismissRemovesExactlyOne(t *testing.T) {
	n, _ := newTestNotifier(t)

	first := n.Info("first")
	second := n.Info("second")
	third := n.Info("third")

	assert.True(t, n.Dismiss(second.ID))
	assert.Equal(t, []models.Toast{first, third}, n.Toasts())

	assert.False(t, n.Dismiss(second.ID))
	assert.False(t, n.Dismiss("missing"))
	assert.Equal(t, 2, n.Len())
}

func TestNotifier_IDsAreUniqueWithinTheSameInstant(t *testing.T) {
	n, _ := newTestNotifier(t)

	seen := map[string]bool{}
	previous := ""

	for range 50 {
		toast := n.Info("same millisecond")
		assert.False(t, seen[toast.ID])
		assert.Greater(t, toast.ID, previous)

		seen[toast.ID] = true
		previous = toast.ID
	}
}

func TestNotifier_NoDeduplication(t *testing.T) {
	n, _ := newTestNotifier(t)

	n.Error("Please enter a prompt to test")
	n.Error("Please enter a prompt to test")

	assert.Equal(t, 2, n.Len())
}

func TestNotifier_CloseStopsExpiry(t *testing.T) {
	n, clock := newTestNotifier(t)

	n.Info("kept")
	n.Close()

	clock.Advance(2 * DefaultTTL)
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, 1, n.Len())
}
