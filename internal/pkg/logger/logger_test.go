package logger

import "testing"

func TestRedactMasksSensitiveKeys(t *testing.T) {
	got := redact([]interface{}{"product_id", "p-1", "POSTGRES_PASSWORD", "hunter2", "dangling"})
	if len(got) != 5 {
		t.Fatalf("len: want=5 got=%d", len(got))
	}
	if got[1] != "p-1" {
		t.Fatalf("plain value changed: %v", got[1])
	}
	if got[3] != "[REDACTED]" {
		t.Fatalf("password not redacted: %v", got[3])
	}
	if got[4] != "dangling" {
		t.Fatalf("odd trailing key dropped: %v", got)
	}
}

func TestNewNopDoesNotPanic(t *testing.T) {
	log := NewNop().With("component", "test")
	log.Info("hello", "token", "abc")
	log.Sync()
}
