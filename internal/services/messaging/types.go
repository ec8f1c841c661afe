package messaging

import (
	"github.com/KirkDiggler/dejavu/internal/common/random"
	"github.com/KirkDiggler/dejavu/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneSarcastic is a sarcastic tone
	ToneSarcastic MessageTone = "sarcastic"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// EndReason is why a game ended
type EndReason string

const (
	EndReasonCompleted    EndReason = "completed"
	EndReasonTimeout      EndReason = "timeout"
	EndReasonInsufficient EndReason = "insufficient_data"
	EndReasonAborted      EndReason = "aborted"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// Random picks message variants; defaults to a time-seeded source
	Random random.Source
}

// GetRoundPromptMessageInput contains parameters for a round prompt
type GetRoundPromptMessageInput struct {
	Kind      models.GameKind
	Round     int
	MaxRounds int
}

// GetRoundPromptMessageOutput contains the prompt text
type GetRoundPromptMessageOutput struct {
	Title   string
	Message string
}

// GetGuessResultMessageInput contains parameters for a correct guess message
type GetGuessResultMessageInput struct {
	Kind       models.GameKind
	PlayerName string
	TargetName string

	// Word and Count describe the word yapper answer
	Word  string
	Count int
}

// GetGuessResultMessageOutput contains the guess message
type GetGuessResultMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetGameEndMessageInput contains parameters for the closing message
type GetGameEndMessageInput struct {
	Reason     EndReason
	WinnerName string
	Points     int

	// TargetName is revealed when a round timed out
	TargetName string
}

// GetGameEndMessageOutput contains the closing title and message
type GetGameEndMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetLeaderboardMessageInput contains parameters for a leaderboard line
type GetLeaderboardMessageInput struct {
	PlayerName   string
	Points       int
	Rank         int
	TotalPlayers int
}

// GetLeaderboardMessageOutput contains the leaderboard line
type GetLeaderboardMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains the error to explain
type GetErrorMessageInput struct {
	Err error
}

// GetErrorMessageOutput contains the user-facing explanation
type GetErrorMessageOutput struct {
	Title   string
	Message string
}
