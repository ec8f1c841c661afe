package hall_of_fame

//go:generate mockgen -package=mocks -destination=mocks/mock_collaborators.go github.com/KirkDiggler/dejavu/internal/services/hall_of_fame MessageFetcher,Downloader

import (
	"context"

	"github.com/KirkDiggler/dejavu/internal/models"
)

// Service shares hall of fame entries back into a channel
type Service interface {
	// Share resolves the content and images to repost for an entry
	Share(ctx context.Context, input *ShareInput) (*ShareOutput, error)
}

// MessageFetcher loads the live copy of a pinned message
type MessageFetcher interface {
	FetchMessage(ctx context.Context, channelID, messageID string) (*models.Message, error)
}

// Downloader fetches a single image
type Downloader interface {
	Download(ctx context.Context, url string) (*Image, error)
}
