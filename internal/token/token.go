// Package token generates and verifies session tokens.
//
// A token has the form {prefix}-{version}-{short_token}-{long_secret}. The
// short token is derived from the BLAKE2b hash of the secret and serves as
// the lookup key; only the hash of the secret is ever stored, so a leaked
// session table cannot be replayed.
package token

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/rezkam/taskmaster/internal/domain"
)

const (
	// Prefix identifies taskmaster session tokens.
	Prefix = "tm"

	// Version of the token format.
	Version = "v1"

	secretBytes     = 32
	shortTokenChars = 12
)

// Parts represents the components of a session token.
type Parts struct {
	Prefix     string
	Version    string
	ShortToken string // lookup key, 12 hex chars of the secret's BLAKE2b hash
	LongSecret string // 43 chars base64, backed by 256 bits of entropy
	FullToken  string
}

// Generate creates a new session token.
// Example: tm-v1-a3f5d8c2b4e6-8h3k2jf9s7d6f5g4h3j2k1m0n9p8q7r6s5t4u3v2w1x
func Generate() (*Parts, error) {
	longBytes := make([]byte, secretBytes)
	if _, err := rand.Read(longBytes); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	longSecret := base64.RawURLEncoding.EncodeToString(longBytes)

	hash := blake2b.Sum256([]byte(longSecret))
	shortToken := hex.EncodeToString(hash[:shortTokenChars/2])

	full := fmt.Sprintf("%s-%s-%s-%s", Prefix, Version, shortToken, longSecret)

	return &Parts{
		Prefix:     Prefix,
		Version:    Version,
		ShortToken: shortToken,
		LongSecret: longSecret,
		FullToken:  full,
	}, nil
}

// Parse splits a token string into its components.
// The long secret uses base64 URL encoding and may itself contain hyphens,
// so the split is bounded at four parts.
func Parse(token string) (*Parts, error) {
	parts := strings.SplitN(token, "-", 4)
	if len(parts) != 4 {
		return nil, fmt.Errorf("%w: expected 4 parts, got %d", domain.ErrInvalidSessionToken, len(parts))
	}
	if parts[0] != Prefix || parts[1] != Version {
		return nil, fmt.Errorf("%w: unknown prefix %q-%q", domain.ErrInvalidSessionToken, parts[0], parts[1])
	}
	if len(parts[2]) != shortTokenChars {
		return nil, fmt.Errorf("%w: malformed short token", domain.ErrInvalidSessionToken)
	}

	return &Parts{
		Prefix:     parts[0],
		Version:    parts[1],
		ShortToken: parts[2],
		LongSecret: parts[3],
		FullToken:  token,
	}, nil
}

// SecretHash returns the BLAKE2b hash of the long secret, the only form in
// which the secret is persisted.
func (p *Parts) SecretHash() []byte {
	hash := blake2b.Sum256([]byte(p.LongSecret))
	return hash[:]
}

// Verify compares the secret's hash against a stored hash in constant time.
func (p *Parts) Verify(storedHash []byte) bool {
	return subtle.ConstantTimeCompare(p.SecretHash(), storedHash) == 1
}

// DisplayToken returns a safe-to-log version showing only the short token.
// Example: "tm-v1-a3f5d8c2b4e6-****"
func (p *Parts) DisplayToken() string {
	return fmt.Sprintf("%s-%s-%s-****", p.Prefix, p.Version, p.ShortToken)
}
