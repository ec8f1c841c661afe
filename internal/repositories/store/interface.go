package store

//go:generate mockgen -package=mocks -destination=mocks/mock_store.go github.com/KirkDiggler/dejavu/internal/repositories/store Store

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Keys of the persisted documents
const (
	KeyWordCache   = "word_cache"
	KeyLeaderboard = "leaderboard"
	KeyHallOfFame  = "hall_of_fame"
)

var (
	// ErrNotFound is returned by Load when nothing is stored under the key
	ErrNotFound = errors.New("not found")

	// ErrCorrupt is returned by Load when the stored value cannot be decoded
	ErrCorrupt = errors.New("stored value is corrupt")

	// ErrInvalidKey is returned for empty keys or keys containing path separators
	ErrInvalidKey = errors.New("invalid store key")
)

// Store persists whole JSON documents under a key
type Store interface {
	// Load decodes the document stored under key into dest
	Load(ctx context.Context, key string, dest any) error

	// Save overwrites the document stored under key
	Save(ctx context.Context, key string, value any) error
}

// LoadOrDefault returns the stored value for key, or def when the key is
// missing or its value is corrupt. Corrupt data is logged, never fatal.
func LoadOrDefault[T any](ctx context.Context, s Store, key string, def T) T {
	var v T
	err := s.Load(ctx, key, &v)
	if err == nil {
		return v
	}

	if !errors.Is(err, ErrNotFound) {
		log().WithError(err).WithField("key", key).Warn("failed to load stored value, using default")
	}
	return def
}

func log() *logrus.Entry {
	return logrus.WithField("module", "store")
}

func validKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	for _, r := range key {
		if r == '/' || r == '\\' || r == ':' {
			return errors.Wrapf(ErrInvalidKey, "key %q", key)
		}
	}
	if key == "." || key == ".." {
		return errors.Wrapf(ErrInvalidKey, "key %q", key)
	}
	return nil
}
