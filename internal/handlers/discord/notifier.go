package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/dejavu/internal/models"
	"github.com/KirkDiggler/dejavu/internal/services/game"
	"github.com/KirkDiggler/dejavu/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// ChannelSender posts messages to a channel
type ChannelSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// NotifierConfig holds the notifier dependencies
type NotifierConfig struct {
	Sender    ChannelSender
	Messaging messaging.Service
}

// Notifier posts game notices to the game's channel
type Notifier struct {
	sender    ChannelSender
	messaging messaging.Service
}

// NewNotifier creates a game notifier
func NewNotifier(cfg *NotifierConfig) (*Notifier, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Sender == nil {
		return nil, errors.New("sender cannot be nil")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	return &Notifier{
		sender:    cfg.Sender,
		messaging: cfg.Messaging,
	}, nil
}

// Notify renders a game event and sends it
func (n *Notifier) Notify(ctx context.Context, event *game.Event) error {
	embed, err := n.render(ctx, event)
	if err != nil {
		return errors.Wrapf(err, "failed to render %s notice", event.Type)
	}

	_, err = n.sender.ChannelMessageSendComplex(event.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return errors.Wrapf(err, "failed to send %s notice", event.Type)
	}

	return nil
}

func (n *Notifier) render(ctx context.Context, event *game.Event) (*discordgo.MessageEmbed, error) {
	switch event.Type {
	case game.EventRoundStarted:
		prompt, err := n.messaging.GetRoundPromptMessage(ctx, &messaging.GetRoundPromptMessageInput{
			Kind:      event.Kind,
			Round:     event.Round,
			MaxRounds: event.MaxRounds,
		})
		if err != nil {
			return nil, err
		}
		return &discordgo.MessageEmbed{
			Title:       prompt.Title,
			Description: fmt.Sprintf("%s\n\n%s", prompt.Message, renderTopic(event.Kind, event.Topic)),
			Color:       ColorInfo,
		}, nil

	case game.EventGuessCorrect:
		result, err := n.messaging.GetGuessResultMessage(ctx, &messaging.GetGuessResultMessageInput{
			Kind:       event.Kind,
			PlayerName: displayName(event.GuesserName, event.GuesserID),
			TargetName: displayName(event.TargetName, event.Target),
			Word:       event.Topic,
			Count:      event.Count,
		})
		if err != nil {
			return nil, err
		}
		return &discordgo.MessageEmbed{
			Description: result.Message,
			Color:       ColorSuccess,
		}, nil

	default:
		end, err := n.messaging.GetGameEndMessage(ctx, &messaging.GetGameEndMessageInput{
			Reason:     endReason(event.Type),
			WinnerName: winnerName(event),
			Points:     winnerPoints(event),
			TargetName: displayName(event.TargetName, event.Target),
		})
		if err != nil {
			return nil, err
		}
		embed := &discordgo.MessageEmbed{
			Title:       end.Title,
			Description: end.Message,
			Color:       ColorGold,
		}
		if len(event.Scores) > 0 {
			embed.Fields = []*discordgo.MessageEmbedField{{
				Name:  "Scores",
				Value: renderScores(event.Scores),
			}}
		}
		return embed, nil
	}
}

func endReason(t game.EventType) messaging.EndReason {
	switch t {
	case game.EventRoundTimeout:
		return messaging.EndReasonTimeout
	case game.EventInsufficientData:
		return messaging.EndReasonInsufficient
	case game.EventAborted:
		return messaging.EndReasonAborted
	default:
		return messaging.EndReasonCompleted
	}
}

func renderTopic(kind models.GameKind, topic string) string {
	if kind == models.GameKindWordYapper {
		return fmt.Sprintf("**%s**", topic)
	}
	lines := strings.Split(topic, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

func renderScores(scores []game.ScoreLine) string {
	var b strings.Builder
	for n, line := range scores {
		fmt.Fprintf(&b, "%s %s: %s\n", rankMedal(n), displayName(line.Name, line.PlayerID), humanize.Comma(int64(line.Points)))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func winnerName(event *game.Event) string {
	if event.WinnerID == "" {
		return ""
	}
	return displayName(event.WinnerName, event.WinnerID)
}

func winnerPoints(event *game.Event) int {
	for _, line := range event.Scores {
		if line.PlayerID == event.WinnerID {
			return line.Points
		}
	}
	return 0
}

// displayName falls back to a mention when the name is unknown
func displayName(name, id string) string {
	if name != "" {
		return name
	}
	if id == "" {
		return "someone"
	}
	return fmt.Sprintf("<@%s>", id)
}
