package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/dukex/agentflow/pkg/events"
	"github.com/dukex/agentflow/pkg/log"
)

var ErrUnknownEventType = errors.New("unknown event type")

type WatermillEventBus struct {
	publisher     message.Publisher
	subscriber    message.Subscriber
	logger        *slog.Logger
	mu            sync.RWMutex
	subscriptions map[events.EventType][]EventHandler
}

func NewWatermillEventBus(pub message.Publisher, sub message.Subscriber) EventBus {
	return &WatermillEventBus{
		publisher:     pub,
		subscriber:    sub,
		logger:        log.WithModule("eventbus"),
		subscriptions: make(map[events.EventType][]EventHandler),
	}
}

func (eb *WatermillEventBus) GenerateID() string {
	return watermill.NewULID()
}

// Publish stamps the event with an id when it has none and writes it to the activity topic.
func (eb *WatermillEventBus) Publish(ctx context.Context, key string, event events.Activity) error {
	if !event.Type.Known() {
		return ErrUnknownEventType
	}

	if event.ID == "" {
		event.ID = eb.GenerateID()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage("msg-"+event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set(events.EventMetadataKey, key)
	msg.Metadata.Set(events.EventTypeMetadataKey, string(event.GetType()))

	return eb.publisher.Publish(events.Topic, msg)
}

// Subscribe starts delivering activities to the registered handlers. Every message is
// acked once: handler failures and undecodable payloads are logged, not redelivered.
func (eb *WatermillEventBus) Subscribe(ctx context.Context) error {
	messages, err := eb.subscriber.Subscribe(ctx, events.Topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			eventType := events.EventType(msg.Metadata.Get(events.EventTypeMetadataKey))

			handlers := eb.handlersFor(eventType)
			if len(handlers) == 0 {
				msg.Ack()

				continue
			}

			var event events.Activity

			err := json.Unmarshal(msg.Payload, &event)
			if err != nil {
				eb.logger.Error("Dropping undecodable activity", "error", err, "message_id", msg.UUID)
				msg.Ack()

				continue
			}

			for _, handler := range handlers {
				if err := handler(ctx, event); err != nil {
					eb.logger.Error("Activity handler failed", "error", err, "event_type", eventType, "message_id", msg.UUID)
				}
			}

			msg.Ack()
		}
	}()

	return nil
}

// Handle registers handler for eventType. events.AllEvents receives every event.
func (eb *WatermillEventBus) Handle(eventType events.EventType, handler EventHandler) error {
	if eventType != events.AllEvents && !eventType.Known() {
		return ErrUnknownEventType
	}

	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subscriptions[eventType] = append(eb.subscriptions[eventType], handler)

	return nil
}

func (eb *WatermillEventBus) handlersFor(eventType events.EventType) []EventHandler {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	handlers := make([]EventHandler, 0, len(eb.subscriptions[eventType])+len(eb.subscriptions[events.AllEvents]))
	handlers = append(handlers, eb.subscriptions[eventType]...)
	handlers = append(handlers, eb.subscriptions[events.AllEvents]...)

	return handlers
}

func (eb *WatermillEventBus) Close() error {
	err := eb.publisher.Close()
	if err != nil {
		return err
	}

	return eb.subscriber.Close()
}
