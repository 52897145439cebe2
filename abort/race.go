package abort

import (
	"errors"
	"sync"
	"time"
)

// ErrNoOperations is returned by Race when the executor produces no
// futures, since a race over nothing could never settle.
var ErrNoOperations = errors.New("abort: race over no operations")

// Race runs the fixed set of futures produced by executor and settles
// on one of them. The first settlement of any kind aborts the child
// token, cancelling the remaining siblings; only one result is needed.
//
// Race still drains every future before returning, then picks the
// outcome by priority: the first genuine rejection wins over any
// fulfillment, the first fulfillment wins otherwise, and the first
// cancellation rejection is returned only when nothing else settled.
// Draining keeps an operation that happened to finish before being
// cancelled from masking a sibling's real failure. If tok is already
// aborted, executor is not invoked.
func Race[T any](tok *Token, executor func(*Token) []*Future[T], optFns ...Option) (T, error) {
	var zero T
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if err := tok.Err(); err != nil {
		return zero, err
	}

	child := New()
	remove := tok.OnAbort(child.Abort)
	defer remove()

	futures := executor(child)
	var start time.Time
	if o.Observer != nil {
		start = time.Now()
		o.Observer.GroupStarted(len(futures))
	}
	if len(futures) == 0 {
		if o.Observer != nil {
			o.Observer.GroupSettled(0, time.Since(start), ErrNoOperations)
		}
		return zero, ErrNoOperations
	}

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		winner     T
		fulfilled  bool
		genuineErr error
		cancelErr  error
	)
	for _, f := range futures {
		wg.Add(1)
		go func(f *Future[T]) {
			defer wg.Done()
			v, err := f.Result()
			// Any settlement cancels the remaining siblings.
			child.Abort()
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				if !fulfilled {
					winner, fulfilled = v, true
				}
			case IsCancellation(err):
				if cancelErr == nil {
					cancelErr = err
				}
			default:
				if genuineErr == nil {
					genuineErr = err
				}
			}
		}(f)
	}
	wg.Wait()

	var err error
	switch {
	case genuineErr != nil:
		err = genuineErr
	case fulfilled:
	default:
		err = cancelErr
	}
	if o.Observer != nil {
		o.Observer.GroupSettled(len(futures), time.Since(start), err)
	}
	if err != nil {
		return zero, err
	}
	return winner, nil
}
