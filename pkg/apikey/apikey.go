// Package apikey implements the relay's API key scheme. A key secret is the
// url-safe base64 encoding of "username:random", so the owning user can be
// recovered from the secret itself without a database lookup. Only a salted
// PBKDF2 hash of the secret is ever persisted.
package apikey

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// secretBytes is the number of random bytes appended to the username.
	secretBytes = 24
	// saltBytes is the length of the per-key hashing salt.
	saltBytes = 16
	// hashIterations is the PBKDF2 iteration count.
	hashIterations = 100000
)

// Generate creates a new key secret for the given username. The secret is
// RawURLEncoding base64, padding stripped.
func Generate(username string) (string, error) {
	random := make([]byte, secretBytes)
	if _, err := rand.Read(random); err != nil {
		return "", err
	}

	raw := append([]byte(username+":"), random...)
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Username recovers the owning username embedded in a key secret.
func Username(secret string) (string, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(secret)
	if err != nil {
		return "", ErrMalformedKey
	}

	username, _, found := bytes.Cut(decoded, []byte(":"))
	if !found || len(username) == 0 {
		return "", ErrMalformedKey
	}
	return string(username), nil
}

// NewSalt returns a fresh hex-encoded hashing salt.
func NewSalt() (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return hex.EncodeToString(salt), nil
}

// Hash derives the hex-encoded PBKDF2-HMAC-SHA256 hash of the secret under
// the given salt.
func Hash(secret, salt string) string {
	derived := pbkdf2.Key([]byte(secret), []byte(salt), hashIterations, sha256.Size, sha256.New)
	return hex.EncodeToString(derived)
}

// Matches reports whether the secret hashes to the stored value under the
// given salt, in constant time.
func Matches(storedHash, secret, salt string) bool {
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(Hash(secret, salt))) == 1
}
