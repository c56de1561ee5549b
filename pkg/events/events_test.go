package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActivity(t *testing.T) {
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.FixedZone("BRT", -3*3600))

	activity := NewActivity(AgentSavedEvent, "sess-1", at).
		WithAgent(3, "Slack Summarizer").
		WithMessage("Agent saved successfully!")

	assert.Equal(t, AgentSavedEvent, activity.GetType())
	assert.Equal(t, "sess-1", activity.SessionID)
	assert.Equal(t, 3, activity.AgentID)
	assert.Equal(t, "Slack Summarizer", activity.Subject)
	assert.Equal(t, time.UTC, activity.Timestamp.Location())
	assert.True(t, activity.Timestamp.Equal(at))
}

func TestActivity_WithMetadataDoesNotShareMaps(t *testing.T) {
	base := NewActivity(AgentStatusToggledEvent, "sess-1", time.Now()).WithMetadata("status", "paused")
	next := base.WithMetadata("previous", "active")

	assert.Len(t, base.Metadata, 1)
	assert.Len(t, next.Metadata, 2)
}

func TestActivity_JSON(t *testing.T) {
	activity := NewActivity(WorkflowSavedEvent, "sess-2", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)).
		WithSubject("Nightly digest")

	payload, err := json.Marshal(activity)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, "workflow.saved", decoded["type"])
	assert.Equal(t, "sess-2", decoded["sessionId"])
	assert.Equal(t, "Nightly digest", decoded["subject"])
	assert.NotContains(t, decoded, "agentId")
}

func TestEventType_Known(t *testing.T) {
	assert.True(t, AgentRunEvent.Known())
	assert.True(t, SessionNavigatedEvent.Known())
	assert.False(t, AllEvents.Known())
	assert.False(t, EventType("workflow.triggered").Known())
}
