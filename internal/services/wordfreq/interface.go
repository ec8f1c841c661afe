package wordfreq

//go:generate mockgen -package=mocks -destination=mocks/mock_index.go github.com/KirkDiggler/dejavu/internal/services/wordfreq Index

import (
	"context"
	"time"
)

// Index is the word frequency index behind the word yapper game
type Index interface {
	// IsStale reports whether the cache is older than its TTL at now
	IsStale(now time.Time) bool

	// Rebuild replaces the cache with a fresh scan of the channel history
	Rebuild(ctx context.Context, input *RebuildInput) (*RebuildOutput, error)

	// EnsureFresh rebuilds only when the cache is stale or for another channel
	EnsureFresh(ctx context.Context, input *EnsureFreshInput) (*EnsureFreshOutput, error)

	// SelectTopic picks a random eligible word and its top speaker
	SelectTopic(ctx context.Context, input *SelectTopicInput) (*Topic, error)
}
