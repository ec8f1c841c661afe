package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/dejavu/internal/services/game Service

import "context"

// Service defines the interface for guessing game operations. At most one
// game of any kind runs at a time.
type Service interface {
	// StartWhoSaid starts a game where players guess who wrote a message
	StartWhoSaid(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// StartWordYapper starts a game where players guess who said a word most
	StartWordYapper(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// SubmitGuess evaluates a chat message that mentions a user
	SubmitGuess(ctx context.Context, input *SubmitGuessInput) (*SubmitGuessOutput, error)

	// Abort stops the running game and keeps the points scored so far
	Abort(ctx context.Context, input *AbortInput) (*AbortOutput, error)

	// Status returns a snapshot of the running game
	Status(ctx context.Context, input *StatusInput) (*StatusOutput, error)

	// SampleMessage picks a random usable message from a channel's history
	SampleMessage(ctx context.Context, input *SampleMessageInput) (*SampleMessageOutput, error)
}
