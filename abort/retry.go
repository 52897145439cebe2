package abort

import "time"

// Retry invokes op until it succeeds, applying exponential backoff
// with jitter between attempts. op receives the caller's token and the
// 1-based attempt number. A cancellation error from op, or an abort of
// tok while waiting out a delay, stops retrying immediately; any other
// error is retried until Options.MaxAttempts is exhausted, at which
// point the last operation error is returned as-is.
func Retry[T any](tok *Token, op func(*Token, int) (T, error), optFns ...Option) (T, error) {
	var zero T
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	for attempt := 1; ; attempt++ {
		if err := tok.Err(); err != nil {
			return zero, err
		}

		v, err := op(tok, attempt)
		if err == nil {
			return v, nil
		}
		if IsCancellation(err) {
			// Cancellation is never retried.
			return zero, err
		}

		next := backoffDelay(o.Base, o.MaxDelay, attempt)
		if o.Observer != nil {
			o.Observer.AttemptFailed(attempt, err, next)
		}
		if o.OnError != nil {
			if herr := o.OnError(err, attempt, next); herr != nil {
				if o.Observer != nil {
					o.Observer.RetryStopped(attempt, herr)
				}
				return zero, herr
			}
		}
		if o.MaxAttempts > 0 && attempt >= o.MaxAttempts {
			if o.Observer != nil {
				o.Observer.RetryStopped(attempt, err)
			}
			return zero, err
		}

		timer := time.NewTimer(o.Jitter(next))
		select {
		case <-timer.C:
		case <-tok.Done():
			timer.Stop()
			cerr := tok.Err()
			if o.Observer != nil {
				o.Observer.RetryStopped(attempt, cerr)
			}
			return zero, cerr
		}
	}
}

// backoffDelay computes min(base * 2^(attempt-1), max) without
// overflowing on large attempt numbers.
func backoffDelay(base, max time.Duration, attempt int) time.Duration {
	d := base
	for i := 1; i < attempt && d < max; i++ {
		d *= 2
	}
	if d > max {
		d = max
	}
	return d
}
