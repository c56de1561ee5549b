package activity_test

import (
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dukex/agentflow/pkg/activity"
	"github.com/dukex/agentflow/pkg/channels/gochannel"
	"github.com/dukex/agentflow/pkg/eventbus"
	"github.com/dukex/agentflow/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SelectsImplementation(t *testing.T) {
	feed, err := activity.New(t.Context(), "", 0)
	require.NoError(t, err)
	assert.IsType(t, &activity.Memory{}, feed)

	feed, err = activity.New(t.Context(), "memory", 5)
	require.NoError(t, err)
	assert.IsType(t, &activity.Memory{}, feed)

	_, err = activity.New(t.Context(), "postgres://localhost/db", 5)
	assert.ErrorIs(t, err, activity.ErrUnsupportedURL)
}

func TestAttach_FeedsEveryPublishedActivity(t *testing.T) {
	pub, sub, err := gochannel.CreateChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)
	t.Cleanup(func() { _ = bus.Close() })

	feed := activity.NewMemory(10)

	require.NoError(t, activity.Attach(bus, feed))
	require.NoError(t, bus.Subscribe(t.Context()))

	now := time.Now()
	require.NoError(t, bus.Publish(t.Context(), "s", events.NewActivity(events.SessionCreatedEvent, "s", now)))
	require.NoError(t, bus.Publish(t.Context(), "s", events.NewActivity(events.WorkflowSavedEvent, "s", now)))

	assert.Eventually(t, func() bool {
		recent, err := feed.Recent(t.Context(), 0)

		return err == nil && len(recent) == 2
	}, time.Second, 10*time.Millisecond)
}
