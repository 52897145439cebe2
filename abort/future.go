package abort

import "fmt"

// Future is the single settlement of an asynchronous operation: a
// value on fulfillment or an error on rejection. A well-behaved
// operation observes the token it was spawned with and rejects with a
// cancellation error promptly once that token aborts; the combinators
// in this package rely on that contract but cannot enforce it.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Spawn runs fn in its own goroutine and returns a Future settled with
// its result. A panic inside fn settles the future with an error.
func Spawn[T any](tok *Token, fn func(*Token) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("panic: %v", r)
			}
		}()
		f.value, f.err = fn(tok)
	}()
	return f
}

// Resolve returns a future already fulfilled with v.
func Resolve[T any](v T) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), value: v}
	close(f.done)
	return f
}

// Reject returns a future already rejected with err.
func Reject[T any](err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Done returns a channel that is closed once the future has settled.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Result blocks until the future settles and returns its outcome.
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.value, f.err
}
