// Package nonce issues and verifies short-lived, action-scoped HMAC tokens.
// The storefront lookup and the admin settings form both carry one; a token
// minted for one action never verifies for another.
//
// Tokens are bound to a coarse time tick. A token stays valid for the tick it
// was minted in plus the previous one, so a page rendered just before a tick
// boundary keeps working.
package nonce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// DefaultLifetime is the tick length used when none is configured.
const DefaultLifetime = 12 * time.Hour

// Service mints and verifies tokens with a shared secret.
type Service struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// New creates a Service. A non-positive lifetime falls back to DefaultLifetime.
func New(secret string, lifetime time.Duration) *Service {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Service{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Create mints a token for the given action at the current tick.
func (s *Service) Create(action string) string {
	return s.tokenAt(action, s.tick(0))
}

// Verify reports whether token was minted for action within the current or
// previous tick. Comparison is constant-time.
func (s *Service) Verify(token, action string) bool {
	if token == "" {
		return false
	}
	for _, offset := range []int64{0, -1} {
		expected := s.tokenAt(action, s.tick(offset))
		if hmac.Equal([]byte(token), []byte(expected)) {
			return true
		}
	}
	return false
}

func (s *Service) tick(offset int64) int64 {
	return s.now().Unix()/int64(s.lifetime.Seconds()) + offset
}

func (s *Service) tokenAt(action string, tick int64) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(action))
	mac.Write([]byte{'|'})
	mac.Write([]byte(strconv.FormatInt(tick, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
