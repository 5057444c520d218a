package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/qotd/internal/config"
	"github.com/mrlokans/qotd/internal/database/apikeys"
	"github.com/mrlokans/qotd/internal/entities"
)

// StaticKeyName is the name reported for requests authenticated with API_KEY.
const StaticKeyName = "static"

var (
	ErrInvalidKey      = errors.New("invalid API key")
	ErrKeyNameRequired = errors.New("key name is required")
	ErrKeyNotFound     = errors.New("API key not found")
)

// Service issues and verifies API keys.
type Service struct {
	keys   *apikeys.Repository
	config config.Auth
}

func NewService(db *gorm.DB, cfg config.Auth) *Service {
	return &Service{
		keys:   apikeys.NewRepository(db),
		config: cfg,
	}
}

// CreateKey stores a new key and returns it with the full plaintext key.
func (s *Service) CreateKey(ctx context.Context, name string) (*entities.APIKey, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", ErrKeyNameRequired
	}

	full, prefix, secret, err := GenerateKey()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate key: %w", err)
	}
	hash, err := HashSecret(secret, s.config.BcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash key: %w", err)
	}

	key := &entities.APIKey{Name: name, Prefix: prefix, Hash: hash}
	if err := s.keys.Create(ctx, key); err != nil {
		return nil, "", fmt.Errorf("failed to store key: %w", err)
	}
	return key, full, nil
}

// VerifyKey returns the key matching raw, or ErrInvalidKey.
func (s *Service) VerifyKey(ctx context.Context, raw string) (*entities.APIKey, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidKey
	}

	if s.config.StaticKey != "" && subtle.ConstantTimeCompare([]byte(raw), []byte(s.config.StaticKey)) == 1 {
		return &entities.APIKey{Name: StaticKeyName}, nil
	}

	prefix, secret, err := ParseKey(raw)
	if err != nil {
		return nil, ErrInvalidKey
	}

	key, err := s.keys.FindActiveByPrefix(ctx, prefix)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidKey
	}
	if err != nil {
		return nil, err
	}
	if err := CheckSecret(secret, key.Hash); err != nil {
		return nil, ErrInvalidKey
	}

	if err := s.keys.TouchLastUsed(ctx, key.ID, time.Now()); err != nil {
		log.Printf("Failed to record API key use for %q: %v", key.Name, err)
	}
	return key, nil
}

func (s *Service) ListKeys(ctx context.Context) ([]entities.APIKey, error) {
	return s.keys.List(ctx)
}

func (s *Service) RevokeKey(ctx context.Context, id uint) error {
	err := s.keys.Revoke(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrKeyNotFound
	}
	return err
}

// HasKeys reports whether any active stored key or a static key exists.
func (s *Service) HasKeys(ctx context.Context) (bool, error) {
	if s.config.StaticKey != "" {
		return true, nil
	}
	n, err := s.keys.CountActive(ctx)
	return n > 0, err
}
