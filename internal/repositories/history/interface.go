package history

//go:generate mockgen -package=mocks -destination=mocks/mock_source.go github.com/KirkDiggler/dejavu/internal/repositories/history Source

import (
	"context"
	"time"

	"github.com/KirkDiggler/dejavu/internal/models"
	"github.com/pkg/errors"
)

var (
	// ErrForbidden is returned when the bot may not read the channel history
	ErrForbidden = errors.New("history fetch forbidden")

	// ErrStopWalk can be returned by a WalkFunc to end a walk early without error
	ErrStopWalk = errors.New("stop walk")
)

// WalkFunc is called once per message, newest first
type WalkFunc func(msg *models.Message) error

// Source reads channel history
type Source interface {
	// ChannelCreatedAt returns when the channel was created
	ChannelCreatedAt(ctx context.Context, channelID string) (time.Time, error)

	// MessagesAround returns up to limit messages near the instant at
	MessagesAround(ctx context.Context, channelID string, at time.Time, limit int) ([]*models.Message, error)

	// Walk visits at most limit messages, newest first. A walk can be
	// restarted at any time and always terminates.
	Walk(ctx context.Context, channelID string, limit int, fn WalkFunc) error
}
