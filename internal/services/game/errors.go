package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrAlreadyPlaying    GameError = "a game is already running"
	ErrInvalidRoundCount GameError = "rounds must be between 1 and 10"
	ErrInsufficientData  GameError = "not enough chat history to play"
	ErrRoundTimeout      GameError = "no one answered in time"
	ErrHistoryForbidden  GameError = "cannot read this channel's history"
	ErrNoMessages        GameError = "no usable messages found"
	ErrNoActiveGame      GameError = "no game is running in this channel"
	ErrMissingChannel    GameError = "channel ID is required"
	ErrNilConfig         GameError = "config cannot be nil"
	ErrNilLeaderboard    GameError = "leaderboard repository cannot be nil"
	ErrNilHistory        GameError = "history source cannot be nil"
	ErrNilWordIndex      GameError = "word index cannot be nil"
	ErrNilModeration     GameError = "moderation filter cannot be nil"
	ErrNilNotifier       GameError = "notifier cannot be nil"
	ErrNilRandom         GameError = "random source cannot be nil"
	ErrNilClock          GameError = "clock cannot be nil"
	ErrNilUUIDGenerator  GameError = "UUID generator cannot be nil"
)
