package abort

import (
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestAbortIdempotent(t *testing.T) {
	t.Parallel()
	tok := New()
	fired := atomic.Int32{}
	tok.OnAbort(func() { fired.Add(1) })
	tok.Abort()
	tok.Abort()
	if !tok.Aborted() {
		t.Fatal("token should be aborted")
	}
	if got := fired.Load(); got != 1 {
		t.Fatalf("listener fired %d times, want 1", got)
	}
}

func TestOnAbortImmediateWhenAlreadyAborted(t *testing.T) {
	t.Parallel()
	tok := New()
	tok.Abort()
	fired := false
	tok.OnAbort(func() { fired = true })
	if !fired {
		t.Fatal("listener should fire synchronously on an aborted token")
	}
}

func TestOnAbortRemove(t *testing.T) {
	t.Parallel()
	tok := New()
	fired := atomic.Int32{}
	remove := tok.OnAbort(func() { fired.Add(1) })
	remove()
	tok.Abort()
	if got := fired.Load(); got != 0 {
		t.Fatalf("removed listener fired %d times", got)
	}
}

func TestChildInheritsAbortedState(t *testing.T) {
	t.Parallel()
	parent := New()
	if got, want := parent.Child().Aborted(), parent.Aborted(); got != want {
		t.Fatalf("child aborted=%v, parent aborted=%v", got, want)
	}
	parent.Abort()
	if !parent.Child().Aborted() {
		t.Fatal("child of aborted parent should start aborted")
	}
}

func TestCascadeIsOneDirectional(t *testing.T) {
	t.Parallel()
	parent := New()
	child := parent.Child()
	child.Abort()
	if parent.Aborted() {
		t.Fatal("aborting child must not abort parent")
	}
	parent.Abort()
	if !child.Aborted() {
		t.Fatal("child should follow parent abort")
	}
}

func TestDoneClosedOnAbort(t *testing.T) {
	t.Parallel()
	tok := New()
	select {
	case <-tok.Done():
		t.Fatal("done channel closed before abort")
	default:
	}
	go func() {
		time.Sleep(10 * time.Millisecond)
		tok.Abort()
	}()
	select {
	case <-tok.Done():
	case <-time.After(200 * time.Millisecond):
		t.Fatal("done channel not closed after abort")
	}
}

func TestErrReportsCancellation(t *testing.T) {
	t.Parallel()
	tok := New()
	if err := tok.Err(); err != nil {
		t.Fatalf("pending token Err = %v, want nil", err)
	}
	tok.Abort()
	err := tok.Err()
	if err == nil || !IsCancellation(err) {
		t.Fatalf("aborted token Err = %v, want cancellation error", err)
	}
}
