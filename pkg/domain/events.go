package domain

import (
	"context"
	"time"
)

// QueryEvent describes one finished query evaluation.
type QueryEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Kind      string        `json:"kind"`
	Query     string        `json:"query"`
	Duration  time.Duration `json:"duration"`
	Cached    bool          `json:"cached,omitempty"`
	Err       error         `json:"-"`

	// Result is set for successful probability queries.
	Result *QueryResult `json:"result,omitempty"`
	// Independent is set for successful independence queries.
	Independent *bool `json:"independent,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnQuery func(context.Context, *QueryEvent)
}
