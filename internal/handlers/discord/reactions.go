package discord

import (
	"context"

	"github.com/KirkDiggler/dejavu/internal/repositories/hall_of_fame"
	hofService "github.com/KirkDiggler/dejavu/internal/services/hall_of_fame"
	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultPinEmoji pins a message to the hall of fame when reacted
const DefaultPinEmoji = "📌"

// ReactionEvent is a reaction added to or removed from a message
type ReactionEvent struct {
	MessageID string
	ChannelID string
	GuildID   string
	UserID    string
	Emoji     string

	// IsBot is set when the reacting user is a bot
	IsBot bool
}

// ReactorChecker reports whether a message still carries a human reaction
type ReactorChecker interface {
	HasHumanReactor(ctx context.Context, channelID, messageID, emoji string) (bool, error)
}

// ReactionConfig holds the reaction handler dependencies
type ReactionConfig struct {
	HallOfFame hall_of_fame.Repository
	Fetcher    hofService.MessageFetcher
	Reactors   ReactorChecker

	// PinEmoji defaults to DefaultPinEmoji
	PinEmoji string
}

// ReactionHandler pins and unpins messages from reactions
type ReactionHandler struct {
	hallOfFame hall_of_fame.Repository
	fetcher    hofService.MessageFetcher
	reactors   ReactorChecker
	pinEmoji   string
}

// NewReactionHandler creates a reaction handler
func NewReactionHandler(cfg *ReactionConfig) (*ReactionHandler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.HallOfFame == nil {
		return nil, errors.New("hall of fame repository cannot be nil")
	}

	if cfg.Fetcher == nil {
		return nil, errors.New("message fetcher cannot be nil")
	}

	if cfg.Reactors == nil {
		return nil, errors.New("reactor checker cannot be nil")
	}

	pinEmoji := cfg.PinEmoji
	if pinEmoji == "" {
		pinEmoji = DefaultPinEmoji
	}

	return &ReactionHandler{
		hallOfFame: cfg.HallOfFame,
		fetcher:    cfg.Fetcher,
		reactors:   cfg.Reactors,
		pinEmoji:   pinEmoji,
	}, nil
}

func (h *ReactionHandler) relevant(ev *ReactionEvent) bool {
	return ev != nil && ev.MessageID != "" && ev.Emoji == h.pinEmoji && !ev.IsBot
}

// OnReactionAdd pins the reacted message. Bot reactions are ignored.
func (h *ReactionHandler) OnReactionAdd(ctx context.Context, ev *ReactionEvent) error {
	if !h.relevant(ev) {
		return nil
	}

	msg, err := h.fetcher.FetchMessage(ctx, ev.ChannelID, ev.MessageID)
	if err != nil {
		return err
	}

	out, err := h.hallOfFame.Pin(ctx, &hall_of_fame.PinInput{
		Entry: entryFromMessage(msg, ev.GuildID, ev.UserID),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to pin message %s", ev.MessageID)
	}

	log().WithFields(logrus.Fields{
		"message_id": ev.MessageID,
		"pinned":     out.Pinned,
	}).Debug("pin reaction")
	return nil
}

// OnReactionRemove unpins the message once no human reactor is left
func (h *ReactionHandler) OnReactionRemove(ctx context.Context, ev *ReactionEvent) error {
	if !h.relevant(ev) {
		return nil
	}

	remaining, err := h.reactors.HasHumanReactor(ctx, ev.ChannelID, ev.MessageID, h.pinEmoji)
	if err != nil {
		return err
	}
	if remaining {
		log().WithField("message_id", ev.MessageID).Debug("pin reaction removed, others remain")
		return nil
	}

	out, err := h.hallOfFame.Unpin(ctx, &hall_of_fame.UnpinInput{MessageID: ev.MessageID})
	if err != nil {
		return errors.Wrapf(err, "failed to unpin message %s", ev.MessageID)
	}

	log().WithFields(logrus.Fields{
		"message_id": ev.MessageID,
		"removed":    out.Removed,
	}).Debug("unpin reaction")
	return nil
}

// reactionEvent converts a gateway reaction
func reactionEvent(r *discordgo.MessageReaction) *ReactionEvent {
	if r == nil {
		return nil
	}
	return &ReactionEvent{
		MessageID: r.MessageID,
		ChannelID: r.ChannelID,
		GuildID:   r.GuildID,
		UserID:    r.UserID,
		Emoji:     r.Emoji.Name,
	}
}
