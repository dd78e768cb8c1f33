package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a buffer written by the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDraws(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(context.Background(), &buf, "Optimizing...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Optimizing...") {
		t.Errorf("spinner output %q lacks message", buf.String())
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after Stop")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinner(ctx, io.Discard, "Testing with context...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinner(ctx, io.Discard, "Testing with timeout...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), io.Discard, "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerFollowsPasses(t *testing.T) {
	ctx := context.Background()
	s := newSpinner(ctx, io.Discard, "Optimizing...")

	s.OnPassStart(ctx, 2, 6)
	if got := s.Message(); got != "Pass 2: exchanging 6 pairs..." {
		t.Errorf("after OnPassStart: %q", got)
	}

	s.OnPassComplete(ctx, 2, 40, 3, time.Millisecond)
	if got := s.Message(); got != "Pass 2: kept 3 swaps, gain 40" {
		t.Errorf("after OnPassComplete: %q", got)
	}

	s.OnPassComplete(ctx, 3, -4, 0, time.Millisecond)
	if got := s.Message(); got != "Pass 3: no improvement" {
		t.Errorf("after reverted pass: %q", got)
	}

	s.OnConverged(ctx, 3, 252, 92, true)
	if got := s.Message(); got != "Cut 252 → 92 after 3 passes" {
		t.Errorf("after OnConverged: %q", got)
	}
}
