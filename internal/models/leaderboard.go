package models

// LeaderboardEntry is a player's all-time score across games
type LeaderboardEntry struct {
	// PlayerID is not persisted; the ledger is keyed by it
	PlayerID string `json:"-"`

	// Name is the last known display name of the player
	Name string `json:"name,omitempty"`

	// Total is always WhoSaid + WordYapper
	Total int `json:"total"`

	// WhoSaid is points scored in who said games
	WhoSaid int `json:"whosaid"`

	// WordYapper is points scored in word yapper games
	WordYapper int `json:"wordyapper"`
}

// Add credits points for a game kind and keeps Total in step
func (e *LeaderboardEntry) Add(kind GameKind, points int) {
	switch kind {
	case GameKindWhoSaid:
		e.WhoSaid += points
	case GameKindWordYapper:
		e.WordYapper += points
	default:
		return
	}
	e.Total += points
}
