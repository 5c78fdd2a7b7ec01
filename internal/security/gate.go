// Package security implements the parental gate guarding destructive
// actions: a sum challenge (or the configured parent PIN) is exchanged for a
// short-lived token that the gated endpoints require.
package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	challengeTTL = 5 * time.Minute
	tokenTTL     = 10 * time.Minute
	gateSubject  = "parental-gate"
)

// Gate issues and verifies parental gate tokens. Challenges are stateless:
// the expected answer is bound to the challenge by an HMAC, so no per-replica
// state is required.
type Gate struct {
	secret  []byte
	pinHash []byte

	// Now is swappable for tests.
	Now func() time.Time
}

// Challenge is one sum question. Proof travels to the client and back; the
// client cannot forge it for a different answer without the secret.
type Challenge struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	ExpiresAt int64  `json:"expiresAt"`
	Proof     string `json:"proof"`
}

// NewGate builds a gate from the signing secret and the optional parent PIN.
// The PIN may be supplied pre-hashed (bcrypt) or in the clear, in which case
// it is hashed at startup.
func NewGate(secret, pin string) (*Gate, error) {
	if secret == "" {
		return nil, fmt.Errorf("gate secret is required")
	}

	g := &Gate{
		secret: []byte(secret),
		Now:    time.Now,
	}

	if pin != "" {
		if strings.HasPrefix(pin, "$2") {
			g.pinHash = []byte(pin)
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
			if err != nil {
				return nil, fmt.Errorf("hash parent pin: %w", err)
			}
			g.pinHash = hash
		}
	}

	return g, nil
}

// NewChallenge issues a fresh sum question.
func (g *Gate) NewChallenge() Challenge {
	a := rand.IntN(8) + 3
	b := rand.IntN(8) + 3

	id := uuid.New().String()
	expires := g.Now().Add(challengeTTL).Unix()

	return Challenge{
		ID:        id,
		Question:  fmt.Sprintf("What is %d + %d?", a, b),
		ExpiresAt: expires,
		Proof:     g.proof(id, a+b, expires),
	}
}

// CheckAnswer reports whether answer solves the challenge identified by id,
// proof and expiry, and the challenge has not expired.
func (g *Gate) CheckAnswer(id, proof string, expiresAt int64, answer int) bool {
	if id == "" || proof == "" {
		return false
	}
	if g.Now().Unix() > expiresAt {
		return false
	}
	return hmac.Equal([]byte(g.proof(id, answer, expiresAt)), []byte(proof))
}

// CheckPIN reports whether pin matches the configured parent PIN. Always
// false when no PIN is configured.
func (g *Gate) CheckPIN(pin string) bool {
	if len(g.pinHash) == 0 || pin == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(g.pinHash, []byte(pin)) == nil
}

// Token mints a short-lived gate token for a passed challenge or PIN check.
func (g *Gate) Token() (string, error) {
	now := g.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Subject:   gateSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign gate token: %w", err)
	}
	return signed, nil
}

// Verify checks a gate token's signature, subject and expiry.
func (g *Gate) Verify(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return g.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(func() time.Time { return g.Now() }))
	if err != nil {
		return fmt.Errorf("parse gate token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != gateSubject {
		return fmt.Errorf("gate token has wrong subject")
	}
	return nil
}

// proof binds a challenge id, its answer and its expiry with an HMAC.
func (g *Gate) proof(id string, answer int, expiresAt int64) string {
	mac := hmac.New(sha256.New, g.secret)
	fmt.Fprintf(mac, "%s|%d|%d", id, answer, expiresAt)
	return hex.EncodeToString(mac.Sum(nil))
}
