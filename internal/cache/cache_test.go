package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := NewTTL[string, int]()
	c.Set("a", 1, time.Minute)
	got, ok := c.Get("a")
	if !ok || got != 1 {
		t.Fatalf("expected hit with 1, got %v %v", got, ok)
	}
}

func TestExpiry(t *testing.T) {
	c := NewTTL[string, int]()
	c.Set("a", 1, time.Nanosecond)
	time.Sleep(time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected expired entry to miss")
	}
	if c.Len() != 0 {
		t.Fatalf("expected expired entry dropped on read, len=%d", c.Len())
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	c := NewTTL[string, int]()
	c.Set("a", 1, 0)
	time.Sleep(time.Millisecond)
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected zero-ttl entry to persist")
	}
}

func TestDelete(t *testing.T) {
	c := NewTTL[string, int]()
	c.Set("a", 1, time.Minute)
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected deleted entry to miss")
	}
}
