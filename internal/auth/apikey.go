package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	KeyPrefix       = "qotd"
	prefixLength    = 12
	secretByteCount = 24
)

var ErrMalformedKey = errors.New("malformed API key")

// GenerateKey creates a new key. It returns the full key (shown to the
// operator once), its public prefix and the secret part.
func GenerateKey() (full, prefix, secret string, err error) {
	prefix = strings.ReplaceAll(uuid.NewString(), "-", "")[:prefixLength]

	buf := make([]byte, secretByteCount)
	if _, err := rand.Read(buf); err != nil {
		return "", "", "", err
	}
	secret = hex.EncodeToString(buf)

	return KeyPrefix + "_" + prefix + "_" + secret, prefix, secret, nil
}

// ParseKey splits a full key into its prefix and secret.
func ParseKey(full string) (prefix, secret string, err error) {
	parts := strings.Split(full, "_")
	if len(parts) != 3 || parts[0] != KeyPrefix || len(parts[1]) != prefixLength || parts[2] == "" {
		return "", "", ErrMalformedKey
	}
	return parts[1], parts[2], nil
}

// HashSecret creates a bcrypt hash of a key secret.
func HashSecret(secret string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckSecret compares a secret with its hash.
func CheckSecret(secret, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidKey
	}
	return err
}
