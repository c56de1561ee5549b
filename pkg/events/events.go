// Package events defines the activity events emitted by view sessions.
package events

import (
	"time"
)

type EventType string

const Topic = "agentflow.activity"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

// AllEvents subscribes a handler to every event type.
const AllEvents EventType = "*"

const (
	// Session lifecycle events.
	SessionCreatedEvent   EventType = "session.created"
	SessionClosedEvent    EventType = "session.closed"
	SessionNavigatedEvent EventType = "session.navigated"

	// Agent builder events.
	AgentTestRunStartedEvent   EventType = "agent.test_run.started"
	AgentTestRunCompletedEvent EventType = "agent.test_run.completed"
	AgentSavedEvent            EventType = "agent.saved"
	AgentDeployedEvent         EventType = "agent.deployed"

	// Agent detail events.
	AgentStatusToggledEvent EventType = "agent.status_toggled"
	AgentRunEvent           EventType = "agent.run"
	AgentDeletedEvent       EventType = "agent.deleted"

	// Workflow builder events.
	WorkflowSavedEvent       EventType = "workflow.saved"
	WorkflowTestStartedEvent EventType = "workflow.test_started"
)

var knownTypes = map[EventType]struct{}{
	SessionCreatedEvent:        {},
	SessionClosedEvent:         {},
	SessionNavigatedEvent:      {},
	AgentTestRunStartedEvent:   {},
	AgentTestRunCompletedEvent: {},
	AgentSavedEvent:            {},
	AgentDeployedEvent:         {},
	AgentStatusToggledEvent:    {},
	AgentRunEvent:              {},
	AgentDeletedEvent:          {},
	WorkflowSavedEvent:         {},
	WorkflowTestStartedEvent:   {},
}

// Known reports whether t is an event type sessions emit.
func (t EventType) Known() bool {
	_, ok := knownTypes[t]

	return ok
}

// Activity is a single entry of the activity stream.
type Activity struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	SessionID string         `json:"sessionId"`
	AgentID   int            `json:"agentId,omitempty"`
	Subject   string         `json:"subject,omitempty"`
	Message   string         `json:"message,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func (a Activity) GetType() EventType {
	return a.Type
}

// NewActivity returns an activity stamped with at in UTC.
func NewActivity(eventType EventType, sessionID string, at time.Time) Activity {
	return Activity{
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: at.UTC(),
	}
}

// WithAgent attaches the agent the activity refers to.
func (a Activity) WithAgent(id int, name string) Activity {
	a.AgentID = id
	a.Subject = name

	return a
}

func (a Activity) WithSubject(subject string) Activity {
	a.Subject = subject

	return a
}

func (a Activity) WithMessage(message string) Activity {
	a.Message = message

	return a
}

func (a Activity) WithMetadata(key string, value any) Activity {
	metadata := make(map[string]any, len(a.Metadata)+1)
	for k, v := range a.Metadata {
		metadata[k] = v
	}

	metadata[key] = value
	a.Metadata = metadata

	return a
}
