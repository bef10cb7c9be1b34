package ctxutil

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
	ctx := WithRequestID(nil, "req-1")
	if got := RequestID(ctx); got != "req-1" {
		t.Fatalf("RequestID=%q", got)
	}
}
