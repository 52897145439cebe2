// Package ctxbridge connects abort tokens with context.Context, so
// token-based code can call into context-based code and back without
// either side losing cancellation.
package ctxbridge

import (
	"context"

	"github.com/OmkarKirpan/abort-controller-x/abort"
)

// ToContext returns a context derived from parent that is cancelled
// when tok aborts. The returned stop func releases the bridge; call it
// once the context is no longer needed.
func ToContext(parent context.Context, tok *abort.Token) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	remove := tok.OnAbort(cancel)
	return ctx, func() {
		remove()
		cancel()
	}
}

// FromContext returns a token that aborts when ctx is done. The
// returned stop func releases the bridge; the token stays pending if
// stop runs before ctx is cancelled.
func FromContext(ctx context.Context) (*abort.Token, func()) {
	tok := abort.New()
	stop := context.AfterFunc(ctx, tok.Abort)
	return tok, func() { stop() }
}
