package security

import (
	"testing"
	"time"
)

func TestCheckPINPlainValue(t *testing.T) {
	if !CheckPIN("1234", "1234") {
		t.Error("matching plain PIN rejected")
	}
	if CheckPIN("1234", "4321") {
		t.Error("wrong plain PIN accepted")
	}
}

func TestCheckPINHashedValue(t *testing.T) {
	hash, err := HashPIN("5678")
	if err != nil {
		t.Fatalf("HashPIN: %v", err)
	}

	if !CheckPIN(hash, "5678") {
		t.Error("matching hashed PIN rejected")
	}
	if CheckPIN(hash, "5679") {
		t.Error("wrong hashed PIN accepted")
	}
}

func TestRateLimiterExhaustsTokens(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request beyond limit should be denied")
	}

	// A different IP has its own bucket.
	if !rl.Allow("10.0.0.2") {
		t.Error("fresh IP should be allowed")
	}
}
