package discord

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/KirkDiggler/dejavu/internal/common/clock"
	"github.com/KirkDiggler/dejavu/internal/common/random"
	"github.com/KirkDiggler/dejavu/internal/models"
	"github.com/KirkDiggler/dejavu/internal/repositories/hall_of_fame"
	"github.com/KirkDiggler/dejavu/internal/repositories/leaderboard"
	"github.com/KirkDiggler/dejavu/internal/services/game"
	hofService "github.com/KirkDiggler/dejavu/internal/services/hall_of_fame"
	"github.com/KirkDiggler/dejavu/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultRounds is used when /dejavu whosaid or wordyapper omits rounds
	DefaultRounds = 3

	// DefaultLeaderboardSize is how many players /dejavu leaderboard shows
	DefaultLeaderboardSize = 10

	commandTimeout = 2 * time.Minute
)

// DejavuCommandConfig holds the /dejavu command dependencies
type DejavuCommandConfig struct {
	GameService     game.Service
	Leaderboard     leaderboard.Repository
	HallOfFame      hall_of_fame.Repository
	Share           hofService.Service
	Messaging       messaging.Service
	Random          random.Source
	Clock           clock.Clock
	PageSize        int
	LeaderboardSize int
}

// DejavuCommand handles the /dejavu command and its components
type DejavuCommand struct {
	BaseCommand
	gameService     game.Service
	leaderboard     leaderboard.Repository
	hallOfFame      hall_of_fame.Repository
	share           hofService.Service
	messaging       messaging.Service
	random          random.Source
	clock           clock.Clock
	pageSize        int
	leaderboardSize int
}

// NewDejavuCommand creates a new dejavu command handler
func NewDejavuCommand(cfg *DejavuCommandConfig) (*DejavuCommand, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.Leaderboard == nil {
		return nil, errors.New("leaderboard repository cannot be nil")
	}

	if cfg.HallOfFame == nil {
		return nil, errors.New("hall of fame repository cannot be nil")
	}

	if cfg.Share == nil {
		return nil, errors.New("share service cannot be nil")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	rnd := cfg.Random
	if rnd == nil {
		rnd = random.New(nil)
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	pageSize := cfg.PageSize
	if pageSize < 1 {
		pageSize = hall_of_fame.DefaultPageSize
	}

	leaderboardSize := cfg.LeaderboardSize
	if leaderboardSize < 1 {
		leaderboardSize = DefaultLeaderboardSize
	}

	roundsOption := func() *discordgo.ApplicationCommandOption {
		minRounds := float64(models.MinRounds)
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "rounds",
			Description: fmt.Sprintf("Number of rounds (default %d)", DefaultRounds),
			MinValue:    &minRounds,
			MaxValue:    float64(models.MaxRounds),
		}
	}
	mercyOption := func() *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "mercy",
			Description: "Leave the mercy user out of the answers",
		}
	}

	return &DejavuCommand{
		BaseCommand: BaseCommand{
			Name:        "dejavu",
			Description: "Relive this channel's history",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "text",
					Description: "Post a random message from this channel's past",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "background",
							Description: "Background stored with the pin",
							Choices:     backgroundChoices(),
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "whosaid",
					Description: "Guess who wrote a random message",
					Options:     []*discordgo.ApplicationCommandOption{roundsOption(), mercyOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "wordyapper",
					Description: "Guess who says a word the most",
					Options:     []*discordgo.ApplicationCommandOption{roundsOption(), mercyOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leaderboard",
					Description: "Show the all-time leaderboard",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "halloffame",
					Description: "Browse the hall of fame",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stop",
					Description: "Stop the running game",
				},
			},
		},
		gameService:     cfg.GameService,
		leaderboard:     cfg.Leaderboard,
		hallOfFame:      cfg.HallOfFame,
		share:           cfg.Share,
		messaging:       cfg.Messaging,
		random:          rnd,
		clock:           clk,
		pageSize:        pageSize,
		leaderboardSize: leaderboardSize,
	}, nil
}

// Handle processes a Discord interaction for the dejavu command
func (c *DejavuCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "text":
		return c.handleText(ctx, s, i, opts)
	case "whosaid":
		return c.handleStart(ctx, s, i, models.GameKindWhoSaid, opts)
	case "wordyapper":
		return c.handleStart(ctx, s, i, models.GameKindWordYapper, opts)
	case "leaderboard":
		return c.handleLeaderboard(ctx, s, i)
	case "halloffame":
		return c.handleHallOfFame(ctx, s, i)
	case "stop":
		return c.handleStop(ctx, s, i)
	default:
		return errors.Errorf("unknown subcommand %s", sub.Name)
	}
}

// HandleComponent processes the buttons the command posts. It reports
// whether the custom ID belonged to this command.
func (c *DejavuCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	prefix, arg := parseCustomID(i.MessageComponentData().CustomID)
	switch prefix {
	case ButtonPin:
		return true, c.handlePin(ctx, s, i, arg)
	case ButtonHallOfFamePage:
		page, err := strconv.Atoi(arg)
		if err != nil {
			page = 0
		}
		return true, c.handleHallOfFamePage(ctx, s, i, page)
	case ButtonHallOfFameShare:
		return true, c.handleShare(ctx, s, i, arg)
	default:
		return false, nil
	}
}

func (c *DejavuCommand) handleText(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	if err := DeferResponse(s, i); err != nil {
		return err
	}

	background := ""
	if opt, ok := opts["background"]; ok {
		background = ResolveBackground(opt.StringValue(), c.random)
	}

	out, err := c.gameService.SampleMessage(ctx, &game.SampleMessageInput{ChannelID: i.ChannelID})
	if err != nil {
		return c.followUpError(ctx, s, i, err)
	}

	embed, components := renderTextMessage(out.Message, background)
	return FollowUp(s, i, &discordgo.WebhookParams{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	})
}

func (c *DejavuCommand) handleStart(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, kind models.GameKind, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	// word yapper may rebuild the word cache first
	if err := DeferResponse(s, i); err != nil {
		return err
	}

	userID, _ := interactionUser(i)
	input := &game.StartGameInput{
		ChannelID: i.ChannelID,
		Rounds:    DefaultRounds,
		StartedBy: userID,
	}
	if opt, ok := opts["rounds"]; ok {
		input.Rounds = int(opt.IntValue())
	}
	if opt, ok := opts["mercy"]; ok {
		input.MercyMode = opt.BoolValue()
	}

	var (
		out *game.StartGameOutput
		err error
	)
	if kind == models.GameKindWordYapper {
		out, err = c.gameService.StartWordYapper(ctx, input)
	} else {
		out, err = c.gameService.StartWhoSaid(ctx, input)
	}
	if err != nil {
		return c.followUpError(ctx, s, i, err)
	}

	title := "Who Said?"
	if kind == models.GameKindWordYapper {
		title = "Word Yapper"
	}

	return FollowUp(s, i, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       title,
			Description: fmt.Sprintf("%d %s. Guess by mentioning someone in chat!", out.Rounds, pluralize(out.Rounds, "round", "rounds")),
			Color:       ColorInfo,
		}},
	})
}

func (c *DejavuCommand) handleLeaderboard(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	top, err := c.leaderboard.GetTop(ctx, &leaderboard.GetTopInput{Limit: c.leaderboardSize})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	lines := make([]string, 0, len(top.Entries))
	for rank, entry := range top.Entries {
		line, err := c.messaging.GetLeaderboardMessage(ctx, &messaging.GetLeaderboardMessageInput{
			PlayerName:   displayName(entry.Name, entry.PlayerID),
			Points:       entry.Total,
			Rank:         rank,
			TotalPlayers: len(top.Entries),
		})
		if err != nil {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, line.Message)
	}

	return RespondWithEmbed(s, i, renderLeaderboard(top, lines))
}

func (c *DejavuCommand) handleHallOfFame(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	page, err := c.hallOfFame.ListPage(ctx, &hall_of_fame.ListPageInput{Page: 0, Size: c.pageSize})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	embed, components := renderHallOfFamePage(page, c.clock.Now())
	return RespondWithEmbed(s, i, embed, components...)
}

func (c *DejavuCommand) handleHallOfFamePage(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, page int) error {
	out, err := c.hallOfFame.ListPage(ctx, &hall_of_fame.ListPageInput{Page: page, Size: c.pageSize})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	embed, components := renderHallOfFamePage(out, c.clock.Now())
	return RespondWithMessageUpdate(s, i, embed, components...)
}

func (c *DejavuCommand) handleStop(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.gameService.Abort(ctx, &game.AbortInput{ChannelID: i.ChannelID})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	log().WithFields(logrus.Fields{
		"channel_id": i.ChannelID,
		"game_id":    out.GameID,
	}).Info("game stopped from command")

	return RespondWithEphemeralMessage(s, i, "Stopping the game.")
}

func (c *DejavuCommand) handlePin(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, background string) error {
	if i.Message == nil {
		return RespondWithEphemeralMessage(s, i, "There's nothing to pin.")
	}

	userID, _ := interactionUser(i)
	out, err := c.hallOfFame.Pin(ctx, &hall_of_fame.PinInput{
		Entry: entryFromRendered(i.Message, i.GuildID, userID, background),
	})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	if !out.Pinned {
		return RespondWithEphemeralMessage(s, i, "That's already in the hall of fame.")
	}
	return RespondWithEphemeralMessage(s, i, "Pinned to the hall of fame! 🏆")
}

func (c *DejavuCommand) handleShare(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, messageID string) error {
	if err := DeferResponse(s, i); err != nil {
		return err
	}

	out, err := c.share.Share(ctx, &hofService.ShareInput{MessageID: messageID})
	if err != nil {
		return c.followUpError(ctx, s, i, err)
	}

	files := make([]*discordgo.File, 0, len(out.Images))
	for _, img := range out.Images {
		files = append(files, &discordgo.File{
			Name:        img.Name,
			ContentType: img.ContentType,
			Reader:      bytes.NewReader(img.Data),
		})
	}

	content := fmt.Sprintf("**%s** said:\n%s", displayName(out.Entry.AuthorName, ""), out.Content)
	if out.Entry.Timestamp != "" {
		content += "\nat " + out.Entry.Timestamp
	}

	return FollowUp(s, i, &discordgo.WebhookParams{
		Content: truncate(content, 2000),
		Files:   files,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	})
}

func (c *DejavuCommand) errorMessage(ctx context.Context, err error) (string, string) {
	out, msgErr := c.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
	if msgErr != nil {
		return "Error", err.Error()
	}
	return out.Title, out.Message
}

func (c *DejavuCommand) respondError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	log().WithError(err).Warn("command failed")
	title, message := c.errorMessage(ctx, err)
	return RespondWithError(s, i, title, message)
}

func (c *DejavuCommand) followUpError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	log().WithError(err).Warn("command failed")
	title, message := c.errorMessage(ctx, err)
	return FollowUp(s, i, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       title,
			Description: message,
			Color:       ColorError,
		}},
		Flags: discordgo.MessageFlagsEphemeral,
	})
}

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}
