package discord

import (
	"context"

	"github.com/KirkDiggler/dejavu/internal/models"
	"github.com/KirkDiggler/dejavu/internal/repositories/history"
	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
)

// reactorPageSize is the Discord maximum for one reactions request
const reactorPageSize = 100

// MessageGetter loads a single channel message and its reactors
type MessageGetter interface {
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageReactions(channelID, messageID, emojiID string, limit int, beforeID, afterID string, options ...discordgo.RequestOption) ([]*discordgo.User, error)
}

// MessageFetcher resolves live messages for pins and shares
type MessageFetcher struct {
	getter MessageGetter
}

// NewMessageFetcher creates a fetcher backed by the Discord API
func NewMessageFetcher(getter MessageGetter) (*MessageFetcher, error) {
	if getter == nil {
		return nil, errors.New("message getter cannot be nil")
	}

	return &MessageFetcher{
		getter: getter,
	}, nil
}

// FetchMessage returns the current copy of a message
func (f *MessageFetcher) FetchMessage(ctx context.Context, channelID, messageID string) (*models.Message, error) {
	msg, err := f.getter.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch message %s", messageID)
	}

	return history.FromDiscord(msg), nil
}

// HasHumanReactor reports whether any non-bot user still has emoji on the message
func (f *MessageFetcher) HasHumanReactor(ctx context.Context, channelID, messageID, emoji string) (bool, error) {
	after := ""
	for {
		users, err := f.getter.MessageReactions(channelID, messageID, emoji, reactorPageSize, "", after, discordgo.WithContext(ctx))
		if err != nil {
			return false, errors.Wrapf(err, "failed to list reactors on %s", messageID)
		}

		for _, u := range users {
			if u != nil && !u.Bot {
				return true, nil
			}
		}

		if len(users) < reactorPageSize || users[len(users)-1] == nil {
			return false, nil
		}
		after = users[len(users)-1].ID
	}
}
