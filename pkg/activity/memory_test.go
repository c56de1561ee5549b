package activity

import (
	"fmt"
	"testing"
	"time"

	"github.com/dukex/agentflow/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activityN(i int) events.Activity {
	return events.NewActivity(events.AgentRunEvent, "sess", time.Unix(int64(i), 0)).WithSubject(fmt.Sprintf("run-%d", i))
}

func subjects(items []events.Activity) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Subject)
	}

	return out
}

func TestMemory_RecentIsNewestFirst(t *testing.T) {
	feed := NewMemory(10)

	for i := range 3 {
		require.NoError(t, feed.Append(t.Context(), activityN(i)))
	}

	recent, err := feed.Recent(t.Context(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-2", "run-1", "run-0"}, subjects(recent))

	recent, err = feed.Recent(t.Context(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-2", "run-1"}, subjects(recent))
}

func TestMemory_DropsOldestWhenFull(t *testing.T) {
	feed := NewMemory(3)

	for i := range 5 {
		require.NoError(t, feed.Append(t.Context(), activityN(i)))
	}

	recent, err := feed.Recent(t.Context(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-4", "run-3", "run-2"}, subjects(recent))
}

func TestMemory_Closed(t *testing.T) {
	feed := NewMemory(3)
	require.NoError(t, feed.Close())

	assert.ErrorIs(t, feed.Append(t.Context(), activityN(1)), ErrClosed)

	_, err := feed.Recent(t.Context(), 1)
	assert.ErrorIs(t, err, ErrClosed)
}
