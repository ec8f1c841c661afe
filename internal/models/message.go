package models

import (
	"time"
)

// Message is a channel history record
type Message struct {
	ID         string
	ChannelID  string
	AuthorID   string
	AuthorName string
	Content    string
	CreatedAt  time.Time
	IsBot      bool

	// Attachments are image/file URLs in message order
	Attachments []string
}
