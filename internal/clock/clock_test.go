package clock

import (
	"testing"
	"time"
)

func TestFixed(t *testing.T) {
	at := time.UnixMilli(1735689600000)
	c := NewFixed(at)
	if !c.Now().Equal(at) || !c.Now().Equal(c.Now()) {
		t.Fatalf("expected frozen %v, got %v", at, c.Now())
	}
}

func TestManual(t *testing.T) {
	c := NewManual(time.UnixMilli(0))
	c.Advance(1400 * time.Second)
	if got := c.Now().UnixMilli(); got != 1_400_000 {
		t.Fatalf("expected 1400000, got %d", got)
	}
	c.Set(time.UnixMilli(42))
	if got := c.Now().UnixMilli(); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}
