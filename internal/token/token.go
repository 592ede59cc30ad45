// Package token generates the opaque credentials used by the password
// reset flow.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

const (
	// DefaultTokenBytes yields an 8 character hex token.
	DefaultTokenBytes = 4

	// DefaultTTL is how long a reset token stays valid.
	DefaultTTL = time.Hour
)

// Generator produces reset tokens from a cryptographically secure random
// source together with their expiry instant.
type Generator struct {
	tokenBytes int
	ttl        time.Duration
	now        func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithTokenBytes sets the number of random bytes per token. The encoded
// token is twice as many hex characters.
func WithTokenBytes(n int) Option {
	return func(g *Generator) {
		g.tokenBytes = n
	}
}

// WithTTL sets the token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(g *Generator) {
		g.ttl = ttl
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator creates a Generator with the given options applied over the
// defaults.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		tokenBytes: DefaultTokenBytes,
		ttl:        DefaultTTL,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// NewResetToken returns a random hex token and the instant it expires.
func (g *Generator) NewResetToken() (string, time.Time, error) {
	bytes := make([]byte, g.tokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", time.Time{}, err
	}

	return hex.EncodeToString(bytes), g.now().Add(g.ttl), nil
}
