package abort

import (
	"sync"
	"time"
)

// All runs the fixed set of futures produced by executor and joins
// their settlements. The executor receives a child token that aborts
// when tok aborts; the first rejection also aborts it, so siblings
// stop early. All still waits for every future to settle before
// returning, so no future is left unobserved.
//
// On success the result slice holds each future's value at its
// original position, regardless of settlement order. On failure the
// returned error is the first genuine rejection if any future rejected
// with one, otherwise the first rejection observed; a cancellation
// side-effect never masks a real failure. If tok is already aborted,
// executor is not invoked.
func All[T any](tok *Token, executor func(*Token) []*Future[T], optFns ...Option) ([]T, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if err := tok.Err(); err != nil {
		return nil, err
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

	results := make([]T, len(futures))
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		failure error
	)
	for i, f := range futures {
		wg.Add(1)
		go func(i int, f *Future[T]) {
			defer wg.Done()
			v, err := f.Result()
			if err != nil {
				child.Abort()
				mu.Lock()
				if failure == nil || (IsCancellation(failure) && !IsCancellation(err)) {
					failure = err
				}
				mu.Unlock()
				return
			}
			results[i] = v
		}(i, f)
	}
	wg.Wait()

	if o.Observer != nil {
		o.Observer.GroupSettled(len(futures), time.Since(start), failure)
	}
	if failure != nil {
		return nil, failure
	}
	return results, nil
}
