package messaging

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/dejavu/internal/common/random"
	"github.com/KirkDiggler/dejavu/internal/models"
	"github.com/KirkDiggler/dejavu/internal/services/game"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// service implements the Service interface
type service struct {
	random random.Source
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	src := random.Source(random.New(nil))
	if config != nil && config.Random != nil {
		src = config.Random
	}

	return &service{
		random: src,
	}, nil
}

func (s *service) pick(messages []string) string {
	return messages[s.random.Intn(len(messages))]
}

// GetRoundPromptMessage returns the flavor line above a round prompt
func (s *service) GetRoundPromptMessage(ctx context.Context, input *GetRoundPromptMessageInput) (*GetRoundPromptMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	title := fmt.Sprintf("Round %d of %d", input.Round, input.MaxRounds)

	var messages []string
	switch input.Kind {
	case models.GameKindWordYapper:
		messages = []string{
			"Who says this word the most? Mention them!",
			"Somebody can't stop saying this. Who is it?",
			"Name the yapper. Mention your guess!",
			"One of you is obsessed with this word. Who?",
		}
	default:
		messages = []string{
			"Who said this? Mention your guess!",
			"Déjà vu... who wrote this?",
			"Somebody typed this with their own fingers. Who?",
			"Name the author. Mention your guess!",
		}
	}

	if input.Round == input.MaxRounds && input.MaxRounds > 1 {
		title = "Final round"
	}

	return &GetRoundPromptMessageOutput{
		Title:   title,
		Message: s.pick(messages),
	}, nil
}

// GetGuessResultMessage returns a message for a correct guess
func (s *service) GetGuessResultMessage(ctx context.Context, input *GetGuessResultMessageInput) (*GetGuessResultMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	switch input.Kind {
	case models.GameKindWordYapper:
		messages = []string{
			fmt.Sprintf("%s got it! %s said \"%s\" %s times.", input.PlayerName, input.TargetName, input.Word, humanize.Comma(int64(input.Count))),
			fmt.Sprintf("Correct, %s! %s has yapped \"%s\" %s times.", input.PlayerName, input.TargetName, input.Word, humanize.Comma(int64(input.Count))),
			fmt.Sprintf("%s knows their yappers. %s, \"%s\", %s times.", input.PlayerName, input.TargetName, input.Word, humanize.Comma(int64(input.Count))),
		}
	default:
		messages = []string{
			fmt.Sprintf("%s got it! That was %s.", input.PlayerName, input.TargetName),
			fmt.Sprintf("Correct, %s! %s said that.", input.PlayerName, input.TargetName),
			fmt.Sprintf("%s has a long memory. It was %s.", input.PlayerName, input.TargetName),
			fmt.Sprintf("Nailed it, %s. %s, you can't hide from your past.", input.PlayerName, input.TargetName),
		}
	}

	return &GetGuessResultMessageOutput{
		Message: s.pick(messages),
		Tone:    ToneCelebration,
	}, nil
}

// GetGameEndMessage returns the title and message that close a game
func (s *service) GetGameEndMessage(ctx context.Context, input *GetGameEndMessageInput) (*GetGameEndMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	out := &GetGameEndMessageOutput{Tone: ToneNeutral}

	switch input.Reason {
	case EndReasonTimeout:
		out.Title = "Time's up!"
		out.Tone = ToneSarcastic
		out.Message = s.pick([]string{
			fmt.Sprintf("No one answered. It was %s. Game over.", input.TargetName),
			fmt.Sprintf("Crickets. The answer was %s.", input.TargetName),
			fmt.Sprintf("Nobody? Really? It was %s.", input.TargetName),
		})
	case EndReasonInsufficient:
		out.Title = "Out of material"
		out.Message = "There isn't enough chat history left to keep playing. Points so far still count."
	case EndReasonAborted:
		out.Title = "Game stopped"
		out.Message = "The game was stopped. Points so far still count."
	default:
		out.Title = "Game over!"
		out.Tone = ToneCelebration
		if input.WinnerName == "" {
			out.Message = "Nobody scored. Impressive, in a way."
			break
		}
		out.Message = s.pick([]string{
			fmt.Sprintf("%s wins with %d %s!", input.WinnerName, input.Points, pluralPoints(input.Points)),
			fmt.Sprintf("All hail %s, %d %s and a perfect memory.", input.WinnerName, input.Points, pluralPoints(input.Points)),
			fmt.Sprintf("%s takes it with %d %s. Touch grass, maybe?", input.WinnerName, input.Points, pluralPoints(input.Points)),
		})
	}

	return out, nil
}

// GetLeaderboardMessage returns a line for a player on the leaderboard
func (s *service) GetLeaderboardMessage(ctx context.Context, input *GetLeaderboardMessageInput) (*GetLeaderboardMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	points := fmt.Sprintf("%s %s", humanize.Comma(int64(input.Points)), pluralPoints(input.Points))

	var messages []string
	switch {
	case input.Rank == 0:
		messages = []string{
			fmt.Sprintf("%s leads with %s. Nobody remembers this chat better.", input.PlayerName, points),
			fmt.Sprintf("First place: %s with %s. Terminally online, and proud.", input.PlayerName, points),
		}
	case input.Rank == 1:
		messages = []string{
			fmt.Sprintf("%s sits in second with %s. So close.", input.PlayerName, points),
			fmt.Sprintf("Silver goes to %s with %s.", input.PlayerName, points),
		}
	case input.Rank == 2:
		messages = []string{
			fmt.Sprintf("%s rounds out the podium with %s.", input.PlayerName, points),
			fmt.Sprintf("Bronze: %s with %s.", input.PlayerName, points),
		}
	case input.Rank == input.TotalPlayers-1:
		messages = []string{
			fmt.Sprintf("%s brings up the rear with %s. Scroll up more.", input.PlayerName, points),
			fmt.Sprintf("Last but not least, %s with %s.", input.PlayerName, points),
		}
	default:
		messages = []string{
			fmt.Sprintf("%s: %s.", input.PlayerName, points),
			fmt.Sprintf("%s has %s. Solidly in the middle.", input.PlayerName, points),
		}
	}

	return &GetLeaderboardMessageOutput{
		Message: s.pick(messages),
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	out := &GetErrorMessageOutput{Title: "Oops!"}

	var gameErr game.GameError
	switch {
	case errors.Is(input.Err, game.ErrAlreadyPlaying):
		out.Title = "Game in progress"
		out.Message = "A game is already running. Finish it or use /dejavu stop."
	case errors.Is(input.Err, game.ErrInvalidRoundCount):
		out.Message = fmt.Sprintf("Pick between %d and %d rounds.", models.MinRounds, models.MaxRounds)
	case errors.Is(input.Err, game.ErrInsufficientData), errors.Is(input.Err, game.ErrNoMessages):
		out.Title = "Not enough history"
		out.Message = "I couldn't find enough messages in this channel to play."
	case errors.Is(input.Err, game.ErrHistoryForbidden):
		out.Title = "No access"
		out.Message = "I'm not allowed to read this channel's history."
	case errors.Is(input.Err, game.ErrNoActiveGame):
		out.Message = "There's no game running here."
	case errors.As(input.Err, &gameErr):
		out.Message = gameErr.Error()
	default:
		out.Message = s.pick([]string{
			"Something went wrong. Try again in a bit.",
			"My memory failed me. Try again?",
		})
	}

	return out, nil
}

func pluralPoints(n int) string {
	if n == 1 {
		return "point"
	}
	return "points"
}
