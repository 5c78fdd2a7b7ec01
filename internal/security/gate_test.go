package security

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func newTestGate(t *testing.T, pin string) *Gate {
	t.Helper()
	g, err := NewGate("test-secret", pin)
	if err != nil {
		t.Fatalf("NewGate: %v", err)
	}
	return g
}

// solveChallenge extracts the two operands from the question text.
func solveChallenge(t *testing.T, ch Challenge) int {
	t.Helper()
	fields := strings.Fields(strings.TrimSuffix(ch.Question, "?"))
	if len(fields) != 5 {
		t.Fatalf("unexpected question shape %q", ch.Question)
	}
	a, err1 := strconv.Atoi(fields[2])
	b, err2 := strconv.Atoi(fields[4])
	if err1 != nil || err2 != nil {
		t.Fatalf("unparsable question %q", ch.Question)
	}
	return a + b
}

func TestNewGateRequiresSecret(t *testing.T) {
	if _, err := NewGate("", ""); err == nil {
		t.Error("NewGate with empty secret should fail")
	}
}

func TestChallengeRoundTrip(t *testing.T) {
	g := newTestGate(t, "")
	ch := g.NewChallenge()

	if ch.ID == "" || ch.Proof == "" {
		t.Fatalf("challenge missing id or proof: %+v", ch)
	}

	answer := solveChallenge(t, ch)
	if !g.CheckAnswer(ch.ID, ch.Proof, ch.ExpiresAt, answer) {
		t.Error("correct answer rejected")
	}
	if g.CheckAnswer(ch.ID, ch.Proof, ch.ExpiresAt, answer+1) {
		t.Error("wrong answer accepted")
	}
	if g.CheckAnswer(ch.ID, "forged", ch.ExpiresAt, answer) {
		t.Error("forged proof accepted")
	}
}

func TestChallengeExpires(t *testing.T) {
	g := newTestGate(t, "")
	ch := g.NewChallenge()
	answer := solveChallenge(t, ch)

	g.Now = func() time.Time { return time.Unix(ch.ExpiresAt+1, 0) }
	if g.CheckAnswer(ch.ID, ch.Proof, ch.ExpiresAt, answer) {
		t.Error("expired challenge accepted")
	}
}

func TestChallengeTamperedExpiryRejected(t *testing.T) {
	g := newTestGate(t, "")
	ch := g.NewChallenge()
	answer := solveChallenge(t, ch)

	// Pushing the expiry forward invalidates the proof.
	if g.CheckAnswer(ch.ID, ch.Proof, ch.ExpiresAt+3600, answer) {
		t.Error("tampered expiry accepted")
	}
}

func TestCheckPIN(t *testing.T) {
	if newTestGate(t, "").CheckPIN("1234") {
		t.Error("PIN accepted with no PIN configured")
	}

	g := newTestGate(t, "1234")
	if !g.CheckPIN("1234") {
		t.Error("correct PIN rejected")
	}
	if g.CheckPIN("4321") {
		t.Error("wrong PIN accepted")
	}
	if g.CheckPIN("") {
		t.Error("empty PIN accepted")
	}
}

func TestCheckPINPreHashed(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	g := newTestGate(t, string(hash))
	if !g.CheckPIN("1234") {
		t.Error("correct PIN rejected against pre-hashed config")
	}
	if g.CheckPIN("4321") {
		t.Error("wrong PIN accepted against pre-hashed config")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	g := newTestGate(t, "")

	token, err := g.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if err := g.Verify(token); err != nil {
		t.Errorf("Verify(fresh token) = %v", err)
	}

	other := newTestGate(t, "")
	other.secret = []byte("different-secret")
	if err := other.Verify(token); err == nil {
		t.Error("token verified under a different secret")
	}

	if err := g.Verify("not-a-token"); err == nil {
		t.Error("garbage token verified")
	}
}

func TestTokenExpires(t *testing.T) {
	g := newTestGate(t, "")
	issued := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	g.Now = func() time.Time { return issued }
	token, err := g.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}

	g.Now = func() time.Time { return issued.Add(tokenTTL + time.Minute) }
	if err := g.Verify(token); err == nil {
		t.Error("expired token verified")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     3,
		window:   time.Hour,
	}

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("request over the limit allowed")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("other client blocked")
	}
}
