package logger

import (
	"strings"
	"testing"
)

func TestScrubberRedactsSecretsAndHashesIdentity(t *testing.T) {
	s := &scrubber{enabled: true, salt: "pepper"}

	out := s.kvs([]interface{}{
		"openai_api_key", "sk-live-123",
		"user_id", "user-42",
		"topic", "Photosynthesis",
	})
	if len(out) != 6 {
		t.Fatalf("unexpected kv length: %d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("api key not redacted: %v", out[1])
	}
	hashed, _ := out[3].(string)
	if !strings.HasPrefix(hashed, "hash:") || strings.Contains(hashed, "user-42") {
		t.Fatalf("user id not hashed: %v", out[3])
	}
	if out[5] != "Photosynthesis" {
		t.Fatalf("plain value changed: %v", out[5])
	}
}

func TestScrubberHashIsStableForSameSalt(t *testing.T) {
	a := &scrubber{enabled: true, salt: "x"}
	b := &scrubber{enabled: true, salt: "x"}
	c := &scrubber{enabled: true, salt: "y"}
	if a.hash("u1") != b.hash("u1") {
		t.Fatalf("expected same hash for same salt")
	}
	if a.hash("u1") == c.hash("u1") {
		t.Fatalf("expected different hash for different salt")
	}
}

func TestScrubberDisabledPassesThrough(t *testing.T) {
	s := &scrubber{enabled: false}
	in := []interface{}{"token", "abc"}
	out := s.kvs(in)
	if out[1] != "abc" {
		t.Fatalf("disabled scrubber modified value: %v", out[1])
	}
}

func TestScrubberRedactsJWTShapedValues(t *testing.T) {
	s := &scrubber{enabled: true}
	jwtish := "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ1c2VyLTEifQ.sig"
	out := s.kvs([]interface{}{"header", jwtish})
	if out[1] != "[REDACTED]" {
		t.Fatalf("jwt-shaped value not redacted: %v", out[1])
	}
}

func TestNewTestModeIsQuiet(t *testing.T) {
	log, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.With("service", "x").Info("hello", "k", "v")
}
