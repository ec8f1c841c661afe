package models

import (
	"time"
)

// PinType records how a hall of fame entry was created
type PinType string

const (
	// PinTypeImage is a bot-rendered message pinned with the Pin button
	PinTypeImage PinType = "image"

	// PinTypeMessage is a raw channel message pinned with a reaction
	PinTypeMessage PinType = "message"
)

// MaxHallOfFameContent is the stored content length limit
const MaxHallOfFameContent = 1000

// HallOfFameEntry is a curated highlight keyed by its source message id
type HallOfFameEntry struct {
	MessageID  string    `json:"-"`
	ChannelID  string    `json:"channel_id"`
	GuildID    string    `json:"guild_id,omitempty"`
	ImageURLs  []string  `json:"image_urls"`
	Content    string    `json:"content"`
	AuthorName string    `json:"author_name"`
	Timestamp  string    `json:"timestamp"`
	Background string    `json:"background,omitempty"`
	PinnedBy   string    `json:"pinned_by"`
	PinnedAt   time.Time `json:"pinned_at"`
	PinType    PinType   `json:"pin_type"`
}

// TruncateContent cuts s to MaxHallOfFameContent runes
func TruncateContent(s string) string {
	r := []rune(s)
	if len(r) <= MaxHallOfFameContent {
		return s
	}
	return string(r[:MaxHallOfFameContent])
}
