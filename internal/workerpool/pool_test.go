package workerpool

import (
	"errors"
	"testing"
	"time"
)

func TestSubmitWaitReturnsResult(t *testing.T) {
	p := New(2)
	defer p.Shutdown()

	future, err := Submit(p, func() (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}
	v, err := future.Wait()
	if err != nil || v != 42 {
		t.Fatalf("expected (42, nil), got (%d, %v)", v, err)
	}
}

func TestSubmitPropagatesError(t *testing.T) {
	p := New(1)
	defer p.Shutdown()

	wantErr := errors.New("boom")
	future, _ := Submit(p, func() (int, error) {
		return 0, wantErr
	})
	_, err := future.Wait()
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestPollNonBlocking(t *testing.T) {
	p := New(1)
	defer p.Shutdown()

	block := make(chan struct{})
	future, _ := Submit(p, func() (int, error) {
		<-block
		return 1, nil
	})

	if _, _, ready := future.Poll(); ready {
		t.Fatalf("expected not ready before task completes")
	}
	close(block)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, _, ready := future.Poll(); ready {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("future never became ready")
}

func TestSubmitAfterShutdownFails(t *testing.T) {
	p := New(1)
	p.Shutdown()

	_, err := Submit(p, func() (int, error) { return 0, nil })
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	p := New(1)
	p.Shutdown()
	p.Shutdown()
}
