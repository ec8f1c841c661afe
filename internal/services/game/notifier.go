package game

//go:generate mockgen -package=mocks -destination=mocks/mock_notifier.go github.com/KirkDiggler/dejavu/internal/services/game Notifier

import (
	"context"

	"github.com/KirkDiggler/dejavu/internal/models"
)

// EventType identifies a game notice
type EventType string

const (
	EventRoundStarted     EventType = "round_started"
	EventGuessCorrect     EventType = "guess_correct"
	EventGameOver         EventType = "game_over"
	EventRoundTimeout     EventType = "round_timeout"
	EventInsufficientData EventType = "insufficient_data"
	EventAborted          EventType = "aborted"
)

// Notifier delivers game notices to the chat
type Notifier interface {
	Notify(ctx context.Context, event *Event) error
}

// ScoreLine is one player's session score
type ScoreLine struct {
	PlayerID string
	Name     string
	Points   int
}

// Event is a game notice. Which fields are set depends on Type.
type Event struct {
	Type      EventType
	GameID    string
	Kind      models.GameKind
	ChannelID string
	Round     int
	MaxRounds int

	// Topic is the quoted message or the chosen word
	Topic string

	// Count is how often the target said the word (word yapper)
	Count int

	// Target is revealed on guess_correct, round_timeout and aborted
	Target     string
	TargetName string

	GuesserID   string
	GuesserName string

	// Scores is sorted by points, highest first
	Scores     []ScoreLine
	WinnerID   string
	WinnerName string

	Err error
}
