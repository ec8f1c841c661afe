package game

import (
	"time"

	"github.com/KirkDiggler/dejavu/internal/common/clock"
	"github.com/KirkDiggler/dejavu/internal/common/random"
	"github.com/KirkDiggler/dejavu/internal/common/uuid"
	"github.com/KirkDiggler/dejavu/internal/models"
	"github.com/KirkDiggler/dejavu/internal/repositories/history"
	"github.com/KirkDiggler/dejavu/internal/repositories/leaderboard"
	"github.com/KirkDiggler/dejavu/internal/services/moderation"
	"github.com/KirkDiggler/dejavu/internal/services/wordfreq"
)

const (
	// DefaultRoundTimeout is how long a round waits for a correct guess
	DefaultRoundTimeout = 60 * time.Second

	// DefaultRoundDelay is the pause between a correct guess and the next prompt
	DefaultRoundDelay = 2 * time.Second

	// DefaultSampleAttempts is how many random instants who said tries per round
	DefaultSampleAttempts = 3

	// DefaultSampleLimit is how many messages are fetched around each instant
	DefaultSampleLimit = 1
)

// GuessResult is the outcome of a submitted guess
type GuessResult string

const (
	// GuessIgnored means the message was not a guess for a running round
	GuessIgnored GuessResult = "ignored"

	// GuessWrong means the mentioned user is not the target
	GuessWrong GuessResult = "wrong"

	// GuessCorrect means the guesser scored a point
	GuessCorrect GuessResult = "correct"
)

// Config holds configuration for the game service
type Config struct {
	// Repository dependencies
	Leaderboard leaderboard.Repository
	History     history.Source

	// Service dependencies
	WordIndex     wordfreq.Index
	Moderation    moderation.Filter
	Notifier      Notifier
	Random        random.Source
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// MercyUserID is never a target when a game starts in mercy mode
	MercyUserID string

	// Timing, zero means the default; a negative RoundDelay disables it
	RoundTimeout time.Duration
	RoundDelay   time.Duration

	// Who said sampling, zero means the default
	SampleAttempts int
	SampleLimit    int
}

// StartGameInput contains parameters for starting a game
type StartGameInput struct {
	// ChannelID is the Discord channel the game is played in
	ChannelID string

	// Rounds must be between models.MinRounds and models.MaxRounds
	Rounds int

	// MercyMode keeps the mercy user out of the targets
	MercyMode bool

	// StartedBy is the Discord user ID of the player starting the game
	StartedBy string
}

// StartGameOutput contains the result of starting a game
type StartGameOutput struct {
	GameID string
	Kind   models.GameKind
	Rounds int
}

// SubmitGuessInput contains a chat message that may be a guess
type SubmitGuessInput struct {
	ChannelID   string
	GuesserID   string
	GuesserName string

	// MentionedID is the first user mentioned in the message
	MentionedID string
}

// SubmitGuessOutput contains the result of a guess
type SubmitGuessOutput struct {
	Result GuessResult

	// Round is the round the guess was evaluated against
	Round int

	// GameOver is set when the guess ended the game
	GameOver bool
}

// AbortInput contains parameters for stopping a game
type AbortInput struct {
	// ChannelID must match the running game; empty matches any channel
	ChannelID string
}

// AbortOutput contains the committed partial scores
type AbortOutput struct {
	GameID string
	Scores []ScoreLine
}

// StatusInput contains parameters for reading the running game
type StatusInput struct {
	// ChannelID must match the running game; empty matches any channel
	ChannelID string
}

// StatusOutput contains a copy of the running game state
type StatusOutput struct {
	State *models.GameState
}

// SampleMessageInput contains parameters for sampling a historical message
type SampleMessageInput struct {
	ChannelID string
	MercyMode bool
}

// SampleMessageOutput contains the sampled message
type SampleMessageOutput struct {
	Message *models.Message
}
