package policy

import (
	"fmt"
	"sync/atomic"
)

// Store holds the active parameter set. Reads and swaps are atomic: an
// evaluation in flight keeps the snapshot it took at the start, and a reload
// is only visible to requests that begin after the swap.
type Store struct {
	current atomic.Pointer[Parameters]
}

// NewStore creates a store seeded with the given parameters.
func NewStore(params *Parameters) (*Store, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy parameters: %w", err)
	}
	s := &Store{}
	s.current.Store(params)
	return s, nil
}

// Current returns the active parameter snapshot. Callers must treat it as
// read-only.
func (s *Store) Current() *Parameters {
	return s.current.Load()
}

// Swap atomically replaces the active parameters after validating them.
func (s *Store) Swap(params *Parameters) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("invalid policy parameters: %w", err)
	}
	s.current.Store(params)
	return nil
}
