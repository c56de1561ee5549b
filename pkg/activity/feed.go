// Package activity keeps the recent activity stream published by sessions.
package activity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dukex/agentflow/pkg/eventbus"
	"github.com/dukex/agentflow/pkg/events"
)

const DefaultCapacity = 100

var (
	ErrClosed         = errors.New("activity feed closed")
	ErrUnsupportedURL = errors.New("unsupported activity feed url")
)

// Feed stores the most recent activities, newest first.
type Feed interface {
	Append(ctx context.Context, activity events.Activity) error
	// Recent returns up to n activities, newest first. n <= 0 returns everything kept.
	Recent(ctx context.Context, n int) ([]events.Activity, error)
	Close() error
}

// New picks a feed implementation from rawURL: empty or "memory" keeps the feed in process,
// redis:// and rediss:// URLs use a Redis list.
func New(ctx context.Context, rawURL string, capacity int) (Feed, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	switch {
	case rawURL == "" || rawURL == "memory":
		return NewMemory(capacity), nil
	case strings.HasPrefix(rawURL, "redis://"), strings.HasPrefix(rawURL, "rediss://"):
		return NewRedis(ctx, rawURL, capacity)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedURL, rawURL)
	}
}

// Attach appends every activity delivered by the bus to feed.
func Attach(bus eventbus.EventSubscriber, feed Feed) error {
	return bus.Handle(events.AllEvents, func(ctx context.Context, event events.Activity) error {
		return feed.Append(ctx, event)
	})
}
