package discord

import (
	"github.com/KirkDiggler/dejavu/internal/services/game"
	"github.com/bwmarrin/discordgo"
)

// Guess reactions
const (
	ReactionCorrect = "✅"
	ReactionWrong   = "❌"
)

// guessFromMessage turns a chat message into a guess, or nil when it
// cannot be one
func guessFromMessage(m *discordgo.Message, botUserID string) *game.SubmitGuessInput {
	if m == nil || m.Author == nil || m.Author.Bot || m.Author.ID == botUserID {
		return nil
	}

	var mentioned string
	for _, u := range m.Mentions {
		if u != nil && u.ID != "" {
			mentioned = u.ID
			break
		}
	}
	if mentioned == "" {
		return nil
	}

	name := m.Author.Username
	if m.Author.GlobalName != "" {
		name = m.Author.GlobalName
	}
	if m.Member != nil && m.Member.Nick != "" {
		name = m.Member.Nick
	}

	return &game.SubmitGuessInput{
		ChannelID:   m.ChannelID,
		GuesserID:   m.Author.ID,
		GuesserName: name,
		MentionedID: mentioned,
	}
}

// guessReaction is the reaction for a guess result, "" for none
func guessReaction(result game.GuessResult) string {
	switch result {
	case game.GuessCorrect:
		return ReactionCorrect
	case game.GuessWrong:
		return ReactionWrong
	default:
		return ""
	}
}
