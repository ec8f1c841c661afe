package hall_of_fame

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/dejavu/internal/repositories/hall_of_fame Repository

import (
	"context"

	"github.com/KirkDiggler/dejavu/internal/models"
)

// Repository defines the hall of fame registry, keyed by source message id
type Repository interface {
	// Pin adds an entry unless one already exists for the message
	Pin(ctx context.Context, input *PinInput) (*PinOutput, error)

	// Unpin removes the entry for a message if present
	Unpin(ctx context.Context, input *UnpinInput) (*UnpinOutput, error)

	// List returns every entry, most recently pinned first
	List(ctx context.Context) (*ListOutput, error)

	// ListPage returns one page of List
	ListPage(ctx context.Context, input *ListPageInput) (*ListPageOutput, error)

	// Get returns a single entry
	Get(ctx context.Context, input *GetInput) (*models.HallOfFameEntry, error)
}
