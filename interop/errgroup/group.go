// Package errgroup provides an adapter that mimics golang.org/x/sync/errgroup
// semantics using abort tokens. It enables incremental migration of
// errgroup-based code without pulling errgroup into the core library.
package errgroup

import (
	"sync"

	"github.com/OmkarKirpan/abort-controller-x/abort"
)

// Group is an errgroup-like wrapper over an abort token. The first
// non-nil error aborts the token, cancelling the remaining functions.
type Group struct {
	tok *abort.Token

	wg  sync.WaitGroup
	sem chan struct{}

	mu       sync.Mutex
	firstErr error
}

// WithToken creates a Group whose functions are cancelled together.
// The returned token is aborted when any function passed to Go returns
// a non-nil error; it is a child of parent, so aborting parent cancels
// the whole group.
func WithToken(parent *abort.Token) (*Group, *abort.Token) {
	tok := parent.Child()
	return &Group{tok: tok}, tok
}

// SetLimit bounds the number of functions running concurrently to n.
// A non-positive n removes the bound. It must not be called while any
// function is active.
func (g *Group) SetLimit(n int) {
	if n <= 0 {
		g.sem = nil
		return
	}
	g.sem = make(chan struct{}, n)
}

// Go starts a function. It should observe the group token and return a
// non-nil error to signal failure.
func (g *Group) Go(f func(*abort.Token) error) {
	if f == nil {
		return
	}
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		if g.sem != nil {
			select {
			case g.sem <- struct{}{}:
				defer func() { <-g.sem }()
			case <-g.tok.Done():
				g.fail(g.tok.Err())
				return
			}
		}
		if err := f(g.tok); err != nil {
			g.fail(err)
		}
	}()
}

// Wait blocks until all functions have returned. It returns the first
// non-nil error or nil on success.
func (g *Group) Wait() error {
	g.wg.Wait()
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.firstErr
}

func (g *Group) fail(err error) {
	g.mu.Lock()
	if g.firstErr == nil {
		g.firstErr = err
	}
	g.mu.Unlock()
	g.tok.Abort()
}
