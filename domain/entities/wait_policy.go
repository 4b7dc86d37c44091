package entities

import "time"

// DefaultActionTimeout bounds the visibility wait when no override is given.
const DefaultActionTimeout = 4000 * time.Millisecond

// WaitPolicy scopes how long a visibility check may block.
type WaitPolicy struct {
	Timeout time.Duration
}

// Resolve returns the effective timeout, falling back to def and then to
// DefaultActionTimeout for non-positive values.
func (w WaitPolicy) Resolve(def time.Duration) time.Duration {
	if w.Timeout > 0 {
		return w.Timeout
	}
	if def > 0 {
		return def
	}
	return DefaultActionTimeout
}
