package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerStop(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Connecting...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.interrupted() {
		t.Error("interrupted() = true after Stop")
	}
	if !strings.Contains(buf.String(), "Connecting...") {
		t.Errorf("spinner output %q does not contain the message", buf.String())
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, &bytes.Buffer{}, "Connecting...")
	s.Start()

	cancel()
	time.Sleep(50 * time.Millisecond)

	if !s.interrupted() {
		t.Error("spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, &bytes.Buffer{}, "Connecting...")
	s.Start()

	cancel()
	s.Stop()

	if !s.interrupted() {
		t.Error("interrupted() = false after Stop on a cancelled context")
	}
}

func TestSpinnerTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	s := newSpinner(ctx, &bytes.Buffer{}, "Connecting...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.interrupted() {
		t.Error("spinner should be cancelled after context timeout")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), &bytes.Buffer{}, "Connecting...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}
