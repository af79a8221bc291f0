package model

import (
	"time"

	"github.com/okralabs/okra/internal/domain/valueobject"
)

// DecisionRecord packages everything the explanation and eventing
// collaborators need to reproduce a decision: the quote, the scored signals,
// the normalized input features, and audit metadata. It is assembled once and
// read-only outside the engine.
type DecisionRecord struct {
	Quote         Quote
	Signals       valueobject.SignalSet
	Features      map[string]any
	Subject       string
	Timestamp     time.Time
	PolicyVersion string
}
