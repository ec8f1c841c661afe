package leaderboard

import "github.com/KirkDiggler/dejavu/internal/models"

// RecordGameInput contains the scores of one finished game
type RecordGameInput struct {
	// Kind is the game the points were scored in
	Kind models.GameKind

	// Scores maps player id to points earned
	Scores map[string]int

	// Names maps player id to display name (optional)
	Names map[string]string
}

// GetTopInput contains parameters for reading the top of the ledger
type GetTopInput struct {
	// Limit caps the number of entries; zero or less returns everyone
	Limit int
}

// GetTopOutput contains the sorted entries
type GetTopOutput struct {
	Entries []*models.LeaderboardEntry
}

// GetEntryInput contains parameters for reading one player's entry
type GetEntryInput struct {
	PlayerID string
}
