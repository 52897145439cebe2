package abort

import "sync"

// Token represents a cancellable scope. It starts pending and makes a
// single one-way transition to aborted; listeners registered with
// OnAbort observe that transition exactly once. Tokens derived with
// Child inherit aborts from their parent but never propagate their own
// abort upward.
type Token struct {
	mu        sync.Mutex
	aborted   bool
	done      chan struct{}
	listeners map[int]func()
	nextID    int
}

// New returns a pending root token.
func New() *Token {
	return &Token{done: make(chan struct{})}
}

// Aborted reports whether the token has been aborted.
func (t *Token) Aborted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.aborted
}

// Done returns a channel that is closed when the token is aborted.
func (t *Token) Done() <-chan struct{} {
	return t.done
}

// Err returns a cancellation error if the token has been aborted and
// nil otherwise. It is intended as a cheap guard at the start of a
// cancellable operation.
func (t *Token) Err() error {
	if t.Aborted() {
		return NewError("operation aborted")
	}
	return nil
}

// Abort transitions the token to aborted and invokes every registered
// listener exactly once. It is idempotent; calling it on an aborted
// token has no effect. Aborting a child never affects its parent.
func (t *Token) Abort() {
	t.mu.Lock()
	if t.aborted {
		t.mu.Unlock()
		return
	}
	t.aborted = true
	close(t.done)
	fns := make([]func(), 0, len(t.listeners))
	for _, fn := range t.listeners {
		fns = append(fns, fn)
	}
	t.listeners = nil
	t.mu.Unlock()

	// Listeners run outside the lock so they may touch the token freely.
	for _, fn := range fns {
		fn()
	}
}

// OnAbort registers fn to be invoked once when the token aborts. If
// the token is already aborted, fn runs immediately before OnAbort
// returns, so callers never miss a transition that already happened.
// The returned remove func deregisters fn; it is a no-op after fn has
// fired.
func (t *Token) OnAbort(fn func()) (remove func()) {
	t.mu.Lock()
	if t.aborted {
		t.mu.Unlock()
		fn()
		return func() {}
	}
	if t.listeners == nil {
		t.listeners = make(map[int]func())
	}
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.listeners, id)
		t.mu.Unlock()
	}
}

// Child returns a token that aborts when t aborts. If t is already
// aborted, the child starts aborted. Aborting the child does not
// affect t.
func (t *Token) Child() *Token {
	c := New()
	t.OnAbort(c.Abort)
	return c
}

// listenerCount reports the number of registered listeners. Used by
// tests to verify combinators drop their subscriptions.
func (t *Token) listenerCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners)
}
