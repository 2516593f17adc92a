package database

import "testing"

func TestNewRedisOptional(t *testing.T) {
	client, err := NewRedis("")
	if err != nil {
		t.Fatalf("NewRedis(\"\") error = %v", err)
	}
	if client != nil {
		t.Error("empty URL should yield a nil client, not a connection attempt")
	}
}

func TestNewRedisInvalidURL(t *testing.T) {
	client, err := NewRedis("not-a-redis-url")
	if err == nil {
		t.Fatal("invalid URL should fail to parse")
	}
	if client != nil {
		t.Error("no client should be returned on error")
	}
}

func TestNewRedisUnreachable(t *testing.T) {
	// Nothing listens on this port; the startup ping must fail and
	// the half-built client must not be handed to the caller.
	client, err := NewRedis("redis://127.0.0.1:1")
	if err == nil {
		t.Fatal("unreachable redis should fail the startup ping")
	}
	if client != nil {
		t.Error("no client should be returned on ping failure")
	}
}
