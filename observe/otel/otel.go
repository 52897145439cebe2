package otel

import "time"

// Nop is a no-op implementation of the abort.Observer interface.
// It serves as a placeholder for an OpenTelemetry-backed observer without adding dependencies.
type Nop struct{}

// NewNop returns a no-op observer.
func NewNop() *Nop { return &Nop{} }

func (*Nop) AttemptFailed(int, error, time.Duration) {}
func (*Nop) RetryStopped(int, error)                 {}
func (*Nop) GroupStarted(int)                        {}
func (*Nop) GroupSettled(int, time.Duration, error)  {}
