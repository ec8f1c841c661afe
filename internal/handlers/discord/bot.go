package discord

import (
	"context"
	"time"

	"github.com/KirkDiggler/dejavu/internal/services/game"
	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const eventTimeout = 30 * time.Second

// Bot represents the Discord bot instance
type Bot struct {
	session     *discordgo.Session
	commands    map[string]CommandHandler
	commandIDs  map[string]string // Maps command name to command ID
	gameService game.Service
	dejavu      *DejavuCommand
	reactions   *ReactionHandler
	config      *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Session is an unopened Discord session
	Session *discordgo.Session

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Game service receives chat guesses
	GameService game.Service

	// Dejavu is the /dejavu command
	Dejavu *DejavuCommand

	// Reactions pins and unpins from reactions
	Reactions *ReactionHandler
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.Dejavu == nil {
		return nil, errors.New("dejavu command cannot be nil")
	}

	if cfg.Reactions == nil {
		return nil, errors.New("reaction handler cannot be nil")
	}

	bot := &Bot{
		session:     cfg.Session,
		commands:    make(map[string]CommandHandler),
		commandIDs:  make(map[string]string),
		gameService: cfg.GameService,
		dejavu:      cfg.Dejavu,
		reactions:   cfg.Reactions,
		config:      cfg,
	}

	cfg.Session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsMessageContent

	cfg.Session.AddHandler(bot.handleInteraction)
	cfg.Session.AddHandler(bot.handleMessageCreate)
	cfg.Session.AddHandler(bot.handleReactionAdd)
	cfg.Session.AddHandler(bot.handleReactionRemove)

	return bot, nil
}

func log() *logrus.Entry {
	return logrus.WithField("module", "discord")
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return errors.Wrap(err, "failed to open Discord connection")
	}

	if err := b.RegisterCommand(b.dejavu); err != nil {
		return errors.Wrap(err, "failed to register dejavu command")
	}

	log().Info("bot is now running")
	return nil
}

// Stop removes the registered commands and closes the connection
func (b *Bot) Stop() error {
	appID := b.appID()
	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log().WithError(err).WithField("command", cmdName).Warn("failed to delete command")
		}
	}

	return b.session.Close()
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

func (b *Bot) botUserID() string {
	if b.session.State == nil || b.session.State.User == nil {
		return ""
	}
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord, for the configured
// guild if one is set and globally otherwise
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return errors.Wrapf(err, "failed to create command %s", cmd.GetName())
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log().WithFields(logrus.Fields{
		"command":  cmd.GetName(),
		"id":       createdCmd.ID,
		"guild_id": b.config.GuildID,
	}).Info("registered command")

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				log().WithError(err).WithField("command", name).Error("error handling command")
			}
		}
	case discordgo.InteractionMessageComponent:
		handled, err := b.dejavu.HandleComponent(s, i)
		if err != nil {
			log().WithError(err).WithField("custom_id", i.MessageComponentData().CustomID).Error("error handling component")
			return
		}
		if !handled {
			if err := RespondWithEphemeralMessage(s, i, "That button doesn't do anything anymore."); err != nil {
				log().WithError(err).Warn("failed to respond to unknown component")
			}
		}
	}
}

// handleMessageCreate submits chat messages that mention someone as guesses
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	input := guessFromMessage(m.Message, b.botUserID())
	if input == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	out, err := b.gameService.SubmitGuess(ctx, input)
	if err != nil {
		log().WithError(err).WithField("channel_id", input.ChannelID).Warn("failed to submit guess")
		return
	}

	emoji := guessReaction(out.Result)
	if emoji == "" {
		return
	}
	if err := s.MessageReactionAdd(m.ChannelID, m.ID, emoji, discordgo.WithContext(ctx)); err != nil {
		log().WithError(err).WithField("message_id", m.ID).Debug("failed to react to guess")
	}
}

func (b *Bot) handleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	ev := reactionEvent(r.MessageReaction)
	if ev != nil && r.Member != nil && r.Member.User != nil && r.Member.User.Bot {
		ev.IsBot = true
	}
	if ev != nil && ev.UserID == b.botUserID() {
		ev.IsBot = true
	}
	if err := b.reactions.OnReactionAdd(ctx, ev); err != nil {
		log().WithError(err).WithField("message_id", r.MessageID).Warn("failed to pin from reaction")
	}
}

func (b *Bot) handleReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	if err := b.reactions.OnReactionRemove(ctx, reactionEvent(r.MessageReaction)); err != nil {
		log().WithError(err).WithField("message_id", r.MessageID).Warn("failed to unpin from reaction")
	}
}
