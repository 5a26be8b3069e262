package logger

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := TraceID(ctx); got != "" {
		t.Errorf("empty context trace ID = %q, want empty", got)
	}

	ctx = WithTraceID(ctx, "SBIN-123")
	if got := TraceID(ctx); got != "SBIN-123" {
		t.Errorf("trace ID = %q, want SBIN-123", got)
	}
}

func TestNewTraceID(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	id := NewTraceID("SBIN", ts)
	if !strings.HasPrefix(id, "SBIN-") {
		t.Errorf("trace ID %q missing symbol prefix", id)
	}
}

func TestTraceAttrs(t *testing.T) {
	if attrs := TraceAttrs(context.Background()); attrs != nil {
		t.Errorf("attrs without trace ID = %v, want nil", attrs)
	}
	ctx := WithTraceID(context.Background(), "X-1")
	if attrs := TraceAttrs(ctx); len(attrs) != 1 {
		t.Errorf("attrs = %v, want one element", attrs)
	}
}
