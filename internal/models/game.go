package models

import (
	"time"
)

// GameKind identifies which guessing game a session is running
type GameKind string

const (
	// GameKindWhoSaid asks players who wrote a random historical message
	GameKindWhoSaid GameKind = "who_said"

	// GameKindWordYapper asks players who said a word the most
	GameKindWordYapper GameKind = "word_yapper"
)

// GameStatus represents the current state of a game session
type GameStatus string

const (
	// GameStatusIdle indicates no round is running
	GameStatusIdle GameStatus = "idle"

	// GameStatusRoundActive indicates a round is waiting for a correct guess
	GameStatusRoundActive GameStatus = "round_active"

	// GameStatusScoring indicates the session is being finalized
	GameStatusScoring GameStatus = "scoring"

	// GameStatusAborted indicates the session ended early
	GameStatusAborted GameStatus = "aborted"
)

// Round count bounds for a session
const (
	MinRounds = 1
	MaxRounds = 10
)

// GameState is the state of one guessing game session
type GameState struct {
	// ID is the unique identifier for the session
	ID string

	// Kind is the game being played
	Kind GameKind

	// Status is the state machine position
	Status GameStatus

	// ChannelID scopes the session; guesses elsewhere are ignored
	ChannelID string

	// StartedBy is the user who started the session
	StartedBy string

	// CurrentRound is 1-based
	CurrentRound int

	// MaxRounds is between MinRounds and MaxRounds
	MaxRounds int

	// Target is the speaker id that answers the current round
	Target string

	// TargetName is the display name of Target
	TargetName string

	// Topic is the message text (who said) or the chosen word (word yapper)
	Topic string

	// TopicCount is how often Target said the word (word yapper)
	TopicCount int

	// UsedTopics holds topics already asked this session
	UsedTopics map[string]struct{}

	// Scores maps guesser id to points this session
	Scores map[string]int

	// Names maps guesser id to display name
	Names map[string]string

	// MercyMode excludes the configured mercy user from being a target
	MercyMode bool

	// StartedAt is when the session was created
	StartedAt time.Time

	// RoundStartedAt is when the current round prompt went out
	RoundStartedAt time.Time
}

// IsActive reports whether the session is still running
func (g *GameState) IsActive() bool {
	return g != nil && (g.Status == GameStatusRoundActive || g.Status == GameStatusScoring)
}

// HasUsed reports whether a topic was already asked this session
func (g *GameState) HasUsed(topic string) bool {
	_, ok := g.UsedTopics[topic]
	return ok
}

// Clone returns a deep copy safe to hand out of the session loop
func (g *GameState) Clone() *GameState {
	if g == nil {
		return nil
	}
	c := *g
	c.UsedTopics = make(map[string]struct{}, len(g.UsedTopics))
	for k := range g.UsedTopics {
		c.UsedTopics[k] = struct{}{}
	}
	c.Scores = make(map[string]int, len(g.Scores))
	for k, v := range g.Scores {
		c.Scores[k] = v
	}
	c.Names = make(map[string]string, len(g.Names))
	for k, v := range g.Names {
		c.Names[k] = v
	}
	return &c
}
