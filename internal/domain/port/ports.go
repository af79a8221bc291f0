package port

import (
	"context"
	"time"

	"github.com/okralabs/okra/internal/domain/model"
	"github.com/okralabs/okra/pkg/events"
)

// EventPublisher delivers decision events to an external bus. Implementations
// must be safe for concurrent use; delivery is best-effort from the caller's
// point of view and never blocks a quote.
type EventPublisher interface {
	Publish(ctx context.Context, event events.CloudEvent) error
	Close() error
}

// ExplanationGenerator produces a short plain-language explanation of a
// decision record for downstream display.
type ExplanationGenerator interface {
	Explain(ctx context.Context, record model.DecisionRecord) (string, error)
}

// Clock abstracts time for deterministic quote IDs and event timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock Clock used outside tests.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock returns a Clock pinned to t.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
