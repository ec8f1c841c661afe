package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetRoundPromptMessage returns the flavor line above a round prompt
	GetRoundPromptMessage(ctx context.Context, input *GetRoundPromptMessageInput) (*GetRoundPromptMessageOutput, error)

	// GetGuessResultMessage returns a message for a correct guess
	GetGuessResultMessage(ctx context.Context, input *GetGuessResultMessageInput) (*GetGuessResultMessageOutput, error)

	// GetGameEndMessage returns the title and message that close a game
	GetGameEndMessage(ctx context.Context, input *GetGameEndMessageInput) (*GetGameEndMessageOutput, error)

	// GetLeaderboardMessage returns a line for a player on the leaderboard
	GetLeaderboardMessage(ctx context.Context, input *GetLeaderboardMessageInput) (*GetLeaderboardMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
