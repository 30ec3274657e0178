package idempotency

import (
	"path/filepath"
	"testing"
)

func TestMarkOnce(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	first, err := s.MarkOnce("disb-123:COMPLETED")
	if err != nil || !first {
		t.Fatalf("got first=%v err=%v; want true nil", first, err)
	}

	again, err := s.MarkOnce("disb-123:COMPLETED")
	if err != nil || again {
		t.Fatalf("got first=%v err=%v on redelivery; want false nil", again, err)
	}

	other, err := s.MarkOnce("disb-123:FAILED")
	if err != nil || !other {
		t.Fatalf("distinct key got first=%v err=%v; want true nil", other, err)
	}
}
