package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/dejavu/internal/models"
	hofRepo "github.com/KirkDiggler/dejavu/internal/repositories/hall_of_fame"
	"github.com/KirkDiggler/dejavu/internal/repositories/leaderboard"
	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
)

// Component custom IDs. Parameterised IDs carry their argument after a colon.
const (
	ButtonPin             = "hof_pin"
	ButtonHallOfFamePage  = "hof_page"
	ButtonHallOfFameShare = "hof_share"
)

// TimestampLayout is how message times are shown
const TimestampLayout = "2006-01-02 03:04 PM"

const maxFieldValue = 1024

// customID joins a component prefix and its argument
func customID(prefix, arg string) string {
	if arg == "" {
		return prefix
	}
	return prefix + ":" + arg
}

// parseCustomID splits a custom ID into its prefix and argument
func parseCustomID(id string) (string, string) {
	prefix, arg, _ := strings.Cut(id, ":")
	return prefix, arg
}

// FormatTimestamp renders a message time
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// MessageLink is the jump URL of a message
func MessageLink(guildID, channelID, messageID string) string {
	if guildID == "" {
		guildID = "@me"
	}
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, channelID, messageID)
}

// renderTextMessage renders a historical message for /dejavu text
func renderTextMessage(msg *models.Message, background string) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name: msg.AuthorName,
		},
		Description: fmt.Sprintf("%s said:\n%s\nat %s", msg.AuthorName, msg.Content, FormatTimestamp(msg.CreatedAt)),
		Color:       ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: FormatTimestamp(msg.CreatedAt),
		},
	}
	if len(msg.Attachments) > 0 {
		embed.Image = &discordgo.MessageEmbedImage{URL: msg.Attachments[0]}
	}

	buttons := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Pin",
				Style:    discordgo.SecondaryButton,
				CustomID: customID(ButtonPin, background),
				Emoji: &discordgo.ComponentEmoji{
					Name: "📌",
				},
			},
		},
	}

	return embed, []discordgo.MessageComponent{buttons}
}

// entryFromRendered builds the hall of fame entry for a bot-rendered message
func entryFromRendered(msg *discordgo.Message, guildID, pinnedBy, background string) *models.HallOfFameEntry {
	entry := &models.HallOfFameEntry{
		MessageID:  msg.ID,
		ChannelID:  msg.ChannelID,
		GuildID:    guildID,
		Content:    msg.Content,
		Timestamp:  FormatTimestamp(msg.Timestamp),
		Background: background,
		PinnedBy:   pinnedBy,
		PinType:    models.PinTypeImage,
	}

	if len(msg.Embeds) > 0 {
		embed := msg.Embeds[0]
		if embed.Description != "" {
			entry.Content = embed.Description
		}
		if embed.Author != nil {
			entry.AuthorName = embed.Author.Name
		}
		if embed.Footer != nil && embed.Footer.Text != "" {
			entry.Timestamp = embed.Footer.Text
		}
		if embed.Image != nil && embed.Image.URL != "" {
			entry.ImageURLs = append(entry.ImageURLs, embed.Image.URL)
		}
	}

	for _, a := range msg.Attachments {
		if a != nil && a.URL != "" {
			entry.ImageURLs = append(entry.ImageURLs, a.URL)
		}
	}

	return entry
}

// entryFromMessage builds the hall of fame entry for a reacted channel message
func entryFromMessage(msg *models.Message, guildID, pinnedBy string) *models.HallOfFameEntry {
	return &models.HallOfFameEntry{
		MessageID:  msg.ID,
		ChannelID:  msg.ChannelID,
		GuildID:    guildID,
		Content:    msg.Content,
		AuthorName: msg.AuthorName,
		ImageURLs:  append([]string(nil), msg.Attachments...),
		Timestamp:  FormatTimestamp(msg.CreatedAt),
		PinnedBy:   pinnedBy,
		PinType:    models.PinTypeMessage,
	}
}

// renderHallOfFamePage renders one page of the hall of fame with paging and share buttons
func renderHallOfFamePage(page *hofRepo.ListPageOutput, now time.Time) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title: "🏆 Hall of Fame",
		Color: ColorGold,
	}

	if page.Total == 0 {
		embed.Description = "Nothing pinned yet. React with 📌 to a message to immortalise it."
		return embed, nil
	}

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Page %d of %d • %s %s", page.Page+1, page.TotalPages, humanize.Comma(int64(page.Total)), pluralize(page.Total, "entry", "entries")),
	}

	shares := make([]discordgo.MessageComponent, 0, len(page.Entries))
	for n, entry := range page.Entries {
		name := entry.AuthorName
		if name == "" {
			name = "Unknown"
		}
		value := entry.Content
		if value == "" && len(entry.ImageURLs) > 0 {
			value = fmt.Sprintf("%d %s", len(entry.ImageURLs), pluralize(len(entry.ImageURLs), "image", "images"))
		}
		link := fmt.Sprintf("\n[Jump](%s)", MessageLink(entry.GuildID, entry.ChannelID, entry.MessageID))
		value = truncate(value, maxFieldValue-len(link)) + link

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%d. %s, pinned %s", n+1, name, humanize.RelTime(entry.PinnedAt, now, "ago", "from now")),
			Value: value,
		})

		// an action row holds five components
		if len(shares) < 5 {
			shares = append(shares, discordgo.Button{
				Label:    fmt.Sprintf("Share %d", n+1),
				Style:    discordgo.SecondaryButton,
				CustomID: customID(ButtonHallOfFameShare, entry.MessageID),
			})
		}
	}

	paging := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Prev",
				Style:    discordgo.PrimaryButton,
				CustomID: customID(ButtonHallOfFamePage, strconv.Itoa(page.Page-1)),
				Disabled: page.Page == 0,
			},
			discordgo.Button{
				Label:    "Next",
				Style:    discordgo.PrimaryButton,
				CustomID: customID(ButtonHallOfFamePage, strconv.Itoa(page.Page+1)),
				Disabled: page.Page >= page.TotalPages-1,
			},
		},
	}

	return embed, []discordgo.MessageComponent{paging, discordgo.ActionsRow{Components: shares}}
}

// renderLeaderboard renders the ledger top entries with a flavor line each
func renderLeaderboard(top *leaderboard.GetTopOutput, lines []string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🧠 Déjà Vu Leaderboard",
		Color: ColorGold,
	}

	if len(top.Entries) == 0 {
		embed.Description = "No points yet. Start a game with /dejavu whosaid or /dejavu wordyapper."
		return embed
	}

	for n, entry := range top.Entries {
		name := entry.Name
		if name == "" {
			name = fmt.Sprintf("<@%s>", entry.PlayerID)
		}
		value := fmt.Sprintf("Who said: %s • Word yapper: %s", humanize.Comma(int64(entry.WhoSaid)), humanize.Comma(int64(entry.WordYapper)))
		if n < len(lines) && lines[n] != "" {
			value = lines[n] + "\n" + value
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s %s: %s", rankMedal(n), name, humanize.Comma(int64(entry.Total))),
			Value: value,
		})
	}

	return embed
}

func rankMedal(rank int) string {
	switch rank {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return humanize.Ordinal(rank + 1)
	}
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 {
		return ""
	}
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
