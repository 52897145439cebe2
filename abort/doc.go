// Package abort provides cooperative-cancellation primitives for Go.
// Tokens carry an observable pending-to-aborted transition that
// cascades from parent to child, Retry reruns failed operations with
// exponential backoff, and the All/Race combinators join a fixed set
// of concurrent futures while propagating cancellation downward.
package abort
