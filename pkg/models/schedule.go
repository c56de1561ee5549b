package models

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ParseSchedule parses a standard 5-field cron expression (minute hour day month weekday).
func ParseSchedule(expression string) (cron.Schedule, error) {
	schedule, err := scheduleParser.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchedule, err)
	}

	return schedule, nil
}

// NextRun reports when a scheduled trigger would fire next after the reference time.
// The zero time is returned for triggers without a schedule.
func (c TriggerConfig) NextRun(after time.Time) (time.Time, error) {
	if c.Schedule == "" {
		return time.Time{}, nil
	}

	schedule, err := ParseSchedule(c.Schedule)
	if err != nil {
		return time.Time{}, err
	}

	return schedule.Next(after), nil
}
