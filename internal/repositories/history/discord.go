package history

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/KirkDiggler/dejavu/internal/models"
	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// discordEpoch is the first millisecond of 2015 in unix milliseconds
	discordEpoch = 1420070400000

	// maxPageSize is the most messages a single history request returns
	maxPageSize = 100
)

// Session is the part of the discordgo session the history source uses
type Session interface {
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
}

// DiscordConfig holds configuration for the discord history source
type DiscordConfig struct {
	Session Session
}

type discordSource struct {
	session Session
}

// NewDiscord creates a history source backed by the discord REST API
func NewDiscord(cfg *DiscordConfig) (*discordSource, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
	}

	return &discordSource{
		session: cfg.Session,
	}, nil
}

// ChannelCreatedAt decodes the creation time from the channel snowflake
func (d *discordSource) ChannelCreatedAt(ctx context.Context, channelID string) (time.Time, error) {
	created, err := discordgo.SnowflakeTimestamp(channelID)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid channel id %q", channelID)
	}
	return created, nil
}

// MessagesAround fetches messages around a synthetic snowflake for at
func (d *discordSource) MessagesAround(ctx context.Context, channelID string, at time.Time, limit int) ([]*models.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if limit < 1 {
		limit = 1
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	msgs, err := d.session.ChannelMessages(channelID, limit, "", "", SnowflakeAt(at), discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapError(err, channelID)
	}

	out := make([]*models.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, FromDiscord(m))
	}
	return out, nil
}

// Walk pages backwards from the newest message until limit messages were
// visited or the channel start is reached
func (d *discordSource) Walk(ctx context.Context, channelID string, limit int, fn WalkFunc) error {
	before := ""
	visited := 0

	for visited < limit {
		if err := ctx.Err(); err != nil {
			return err
		}

		pageSize := limit - visited
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}

		msgs, err := d.session.ChannelMessages(channelID, pageSize, before, "", "", discordgo.WithContext(ctx))
		if err != nil {
			return mapError(err, channelID)
		}
		if len(msgs) == 0 {
			return nil
		}

		for _, m := range msgs {
			if err := fn(FromDiscord(m)); err != nil {
				if errors.Is(err, ErrStopWalk) {
					return nil
				}
				return err
			}
			visited++
			if visited >= limit {
				break
			}
		}

		before = msgs[len(msgs)-1].ID
		if len(msgs) < pageSize {
			return nil
		}
	}

	log().WithFields(logrus.Fields{
		"channel_id": channelID,
		"limit":      limit,
	}).Debug("history walk reached limit")
	return nil
}

// SnowflakeAt returns the smallest snowflake that could be issued at t
func SnowflakeAt(t time.Time) string {
	ms := t.UnixMilli() - discordEpoch
	if ms < 0 {
		ms = 0
	}
	return strconv.FormatInt(ms<<22, 10)
}

// FromDiscord converts a discord message into the domain message
func FromDiscord(m *discordgo.Message) *models.Message {
	msg := &models.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
		CreatedAt: m.Timestamp,
	}

	if m.Author != nil {
		msg.AuthorID = m.Author.ID
		msg.AuthorName = m.Author.Username
		if m.Author.GlobalName != "" {
			msg.AuthorName = m.Author.GlobalName
		}
		msg.IsBot = m.Author.Bot
	}

	for _, a := range m.Attachments {
		if a != nil && a.URL != "" {
			msg.Attachments = append(msg.Attachments, a.URL)
		}
	}

	return msg
}

func mapError(err error, channelID string) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Response != nil && restErr.Response.StatusCode == http.StatusForbidden {
			return errors.Wrapf(ErrForbidden, "channel %s", channelID)
		}
		if restErr.Message != nil {
			switch restErr.Message.Code {
			case discordgo.ErrCodeMissingAccess, discordgo.ErrCodeMissingPermissions:
				return errors.Wrapf(ErrForbidden, "channel %s", channelID)
			}
		}
	}
	return errors.Wrapf(err, "failed to fetch history for channel %s", channelID)
}

func log() *logrus.Entry {
	return logrus.WithField("module", "history")
}
