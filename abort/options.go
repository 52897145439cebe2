package abort

import (
	"math/rand/v2"
	"time"
)

// Option configures Retry, All, and Race.
type Option func(*Options)

// Options holds tunables shared by Retry and the combinators. The
// combinators only consult Observer; the remaining fields belong to
// Retry.
type Options struct {
	// Base is the delay before the first retry.
	Base time.Duration
	// MaxDelay caps the computed delay for any retry.
	MaxDelay time.Duration
	// MaxAttempts bounds the number of attempts; zero means unbounded.
	MaxAttempts int
	// OnError observes each failed attempt before the backoff delay
	// starts. Returning a non-nil error stops retrying and propagates
	// that error instead.
	OnError func(err error, attempt int, nextDelay time.Duration) error
	// Jitter maps a computed delay to the delay actually slept.
	Jitter func(time.Duration) time.Duration
	// Observer receives lifecycle callbacks.
	Observer Observer
}

func defaultOptions() Options {
	return Options{
		Base:     time.Second,
		MaxDelay: 15 * time.Second,
		Jitter:   fullJitter,
	}
}

// WithBase sets the delay before the first retry.
func WithBase(d time.Duration) Option { return func(o *Options) { o.Base = d } }

// WithMaxDelay sets the ceiling for computed retry delays.
func WithMaxDelay(d time.Duration) Option { return func(o *Options) { o.MaxDelay = d } }

// WithMaxAttempts bounds the number of attempts; n <= 0 means unbounded.
func WithMaxAttempts(n int) Option { return func(o *Options) { o.MaxAttempts = n } }

// WithOnError installs a hook observing each failed attempt.
func WithOnError(fn func(err error, attempt int, nextDelay time.Duration) error) Option {
	return func(o *Options) { o.OnError = fn }
}

// WithJitter replaces the default full-jitter strategy.
func WithJitter(fn func(time.Duration) time.Duration) Option {
	return func(o *Options) { o.Jitter = fn }
}

// WithObserver attaches an observer for lifecycle callbacks.
func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

// Observer receives callbacks from Retry and the combinators.
// Implementations must be safe for concurrent use.
type Observer interface {
	// AttemptFailed fires after each failed retry attempt with the
	// un-jittered delay computed for the next attempt.
	AttemptFailed(attempt int, err error, nextDelay time.Duration)
	// RetryStopped fires when Retry gives up, with the total number of
	// attempts made and the error being propagated.
	RetryStopped(attempts int, err error)
	// GroupStarted fires when a combinator has obtained its futures.
	GroupStarted(n int)
	// GroupSettled fires once every future in a combinator call has
	// settled, with the drain duration and the aggregate error.
	GroupSettled(n int, wait time.Duration, err error)
}

// fullJitter draws a delay uniformly from [0, d], spreading retries of
// independent callers so they do not synchronize into storms.
func fullJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(d) + 1))
}
