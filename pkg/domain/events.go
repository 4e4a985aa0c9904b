package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart  EventType = "run_start"
	EventAttempt   EventType = "attempt"
	EventRunFinish EventType = "run_finish"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	StageID   string    `json:"stage_id,omitempty"`
}

// RunEvent marks the start or end of one trigger.
type RunEvent struct {
	EventBase
	Request   Request       `json:"request"`
	Selection []Path        `json:"selection"`
	Created   int           `json:"created,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// AttemptEvent carries the outcome of one duplicate.
type AttemptEvent struct {
	EventBase
	Attempt Attempt `json:"attempt"`
}

// LifecycleHooks defines callbacks for duplicator observability.
type LifecycleHooks struct {
	OnRunStart  func(context.Context, *RunEvent)
	OnAttempt   func(context.Context, *AttemptEvent)
	OnRunFinish func(context.Context, *RunEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart:  chainRun(h.OnRunStart, other.OnRunStart),
		OnAttempt:   chainAttempt(h.OnAttempt, other.OnAttempt),
		OnRunFinish: chainRun(h.OnRunFinish, other.OnRunFinish),
	}
}

func chainRun(a, b func(context.Context, *RunEvent)) func(context.Context, *RunEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *RunEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainAttempt(a, b func(context.Context, *AttemptEvent)) func(context.Context, *AttemptEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *AttemptEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
