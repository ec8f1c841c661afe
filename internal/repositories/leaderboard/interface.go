package leaderboard

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/dejavu/internal/repositories/leaderboard Repository

import (
	"context"

	"github.com/KirkDiggler/dejavu/internal/models"
)

// Repository defines the all-time score ledger
type Repository interface {
	// RecordGame merges one finished game's scores into the ledger and persists it
	RecordGame(ctx context.Context, input *RecordGameInput) error

	// GetTop returns the highest totals first
	GetTop(ctx context.Context, input *GetTopInput) (*GetTopOutput, error)

	// GetEntry returns a single player's entry
	GetEntry(ctx context.Context, input *GetEntryInput) (*models.LeaderboardEntry, error)
}
