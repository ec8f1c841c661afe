package game

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/dejavu/internal/common/metrics"
	"github.com/KirkDiggler/dejavu/internal/models"
	"github.com/KirkDiggler/dejavu/internal/repositories/leaderboard"
	"github.com/sirupsen/logrus"
)

// Game outcomes used in logs and metrics
const (
	outcomeCompleted    = "completed"
	outcomeTimeout      = "timeout"
	outcomeInsufficient = "insufficient_data"
	outcomeAborted      = "aborted"
)

type guessRequest struct {
	input *SubmitGuessInput
	reply chan *SubmitGuessOutput
}

type abortRequest struct {
	reply chan *AbortOutput
}

// session is one running game. Only the round loop mutates state; mu
// lets Status and SubmitGuess read a consistent copy.
type session struct {
	id        string
	kind      models.GameKind
	channelID string

	mu    sync.Mutex
	state *models.GameState

	guesses chan *guessRequest
	aborts  chan *abortRequest
	done    chan struct{}
}

func newSession(state *models.GameState) *session {
	return &session{
		id:        state.ID,
		kind:      state.Kind,
		channelID: state.ChannelID,
		state:     state,
		guesses:   make(chan *guessRequest),
		aborts:    make(chan *abortRequest),
		done:      make(chan struct{}),
	}
}

func (sess *session) snapshot() *models.GameState {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state.Clone()
}

func (sess *session) logger() *logrus.Entry {
	return log().WithFields(logrus.Fields{
		"game_id":    sess.id,
		"kind":       sess.kind,
		"channel_id": sess.channelID,
	})
}

// run is the round loop. It waits on guesses, the round timer, the
// between-round delay and aborts until the game ends.
func (s *service) run(ctx context.Context, sess *session) {
	defer close(sess.done)

	s.announceRound(ctx, sess)

	timeout := time.NewTimer(s.roundTimeout)
	defer timeout.Stop()

	// delay is non-nil only between a correct guess and the next prompt
	var delay <-chan time.Time

	for {
		var timeoutC <-chan time.Time
		if delay == nil {
			timeoutC = timeout.C
		}

		select {
		case req := <-sess.aborts:
			req.reply <- &AbortOutput{
				GameID: sess.id,
				Scores: s.end(ctx, sess, outcomeAborted),
			}
			return

		case req := <-sess.guesses:
			if delay != nil {
				req.reply <- &SubmitGuessOutput{Result: GuessIgnored, Round: sess.snapshot().CurrentRound}
				continue
			}

			out, advanced := s.evaluateGuess(ctx, sess, req.input)
			req.reply <- out
			if out.GameOver {
				return
			}
			if advanced {
				timeout.Stop()
				delay = time.After(s.roundDelay)
			}

		case <-delay:
			delay = nil
			sess.mu.Lock()
			sess.state.RoundStartedAt = s.clock.Now()
			sess.mu.Unlock()
			s.announceRound(ctx, sess)
			timeout.Reset(s.roundTimeout)

		case <-timeoutC:
			s.end(ctx, sess, outcomeTimeout)
			return
		}
	}
}

// evaluateGuess scores a guess. A correct guess on the last round, or one
// after which no next topic can be found, ends the game before returning.
func (s *service) evaluateGuess(ctx context.Context, sess *session, input *SubmitGuessInput) (*SubmitGuessOutput, bool) {
	sess.mu.Lock()
	state := sess.state
	round := state.CurrentRound

	if input.MentionedID != state.Target {
		sess.mu.Unlock()
		metrics.Guess(string(GuessWrong))
		return &SubmitGuessOutput{Result: GuessWrong, Round: round}, false
	}

	state.Scores[input.GuesserID]++
	if input.GuesserName != "" {
		state.Names[input.GuesserID] = input.GuesserName
	}
	event := &Event{
		Type:        EventGuessCorrect,
		GameID:      state.ID,
		Kind:        state.Kind,
		ChannelID:   state.ChannelID,
		Round:       round,
		MaxRounds:   state.MaxRounds,
		Topic:       state.Topic,
		Count:       state.TopicCount,
		Target:      state.Target,
		TargetName:  state.TargetName,
		GuesserID:   input.GuesserID,
		GuesserName: input.GuesserName,
		Scores:      scoreLines(state),
	}
	lastRound := round >= state.MaxRounds
	sess.mu.Unlock()

	metrics.Guess(string(GuessCorrect))
	s.notify(ctx, sess, event)

	correct := &SubmitGuessOutput{Result: GuessCorrect, Round: round}

	if lastRound {
		s.end(ctx, sess, outcomeCompleted)
		correct.GameOver = true
		return correct, false
	}

	topic, err := s.selectTopic(ctx, sess.snapshot())
	if err != nil {
		sess.logger().WithError(err).WithField("round", round+1).Info("ran out of topics")
		s.end(ctx, sess, outcomeInsufficient)
		correct.GameOver = true
		return correct, false
	}

	sess.mu.Lock()
	sess.state.CurrentRound++
	applyTopic(sess.state, topic)
	sess.mu.Unlock()

	return correct, true
}

func (s *service) announceRound(ctx context.Context, sess *session) {
	sess.mu.Lock()
	state := sess.state
	event := &Event{
		Type:      EventRoundStarted,
		GameID:    state.ID,
		Kind:      state.Kind,
		ChannelID: state.ChannelID,
		Round:     state.CurrentRound,
		MaxRounds: state.MaxRounds,
		Topic:     state.Topic,
	}
	sess.mu.Unlock()

	sess.logger().WithField("round", event.Round).Debug("round started")
	s.notify(ctx, sess, event)
}

// end finishes the session: it reports the result, commits whatever was
// scored to the leaderboard and frees the game slot.
func (s *service) end(ctx context.Context, sess *session, outcome string) []ScoreLine {
	sess.mu.Lock()
	state := sess.state
	if outcome == outcomeCompleted {
		state.Status = models.GameStatusScoring
	} else {
		state.Status = models.GameStatusAborted
	}
	scores := scoreLines(state)
	event := &Event{
		GameID:     state.ID,
		Kind:       state.Kind,
		ChannelID:  state.ChannelID,
		Round:      state.CurrentRound,
		MaxRounds:  state.MaxRounds,
		Topic:      state.Topic,
		Count:      state.TopicCount,
		Target:     state.Target,
		TargetName: state.TargetName,
		Scores:     scores,
	}
	committed := make(map[string]int, len(state.Scores))
	for id, points := range state.Scores {
		committed[id] = points
	}
	names := make(map[string]string, len(state.Names))
	for id, name := range state.Names {
		names[id] = name
	}
	sess.mu.Unlock()

	if len(scores) > 0 {
		event.WinnerID = scores[0].PlayerID
		event.WinnerName = scores[0].Name
	}

	switch outcome {
	case outcomeCompleted:
		event.Type = EventGameOver
	case outcomeTimeout:
		event.Type = EventRoundTimeout
		event.Err = ErrRoundTimeout
	case outcomeInsufficient:
		event.Type = EventInsufficientData
		event.Err = ErrInsufficientData
	default:
		event.Type = EventAborted
	}

	s.notify(ctx, sess, event)

	if len(committed) > 0 {
		err := s.leaderboard.RecordGame(ctx, &leaderboard.RecordGameInput{
			Kind:   sess.kind,
			Scores: committed,
			Names:  names,
		})
		if err != nil {
			sess.logger().WithError(err).Error("failed to record game on leaderboard")
		}
	}

	sess.mu.Lock()
	sess.state.Status = models.GameStatusIdle
	sess.mu.Unlock()

	s.mu.Lock()
	if s.active == sess {
		s.active = nil
	}
	s.mu.Unlock()

	metrics.GameFinished(string(sess.kind), outcome)
	sess.logger().WithFields(logrus.Fields{
		"outcome": outcome,
		"round":   event.Round,
		"winner":  event.WinnerID,
	}).Info("game finished")

	return scores
}

func (s *service) notify(ctx context.Context, sess *session, event *Event) {
	if err := s.notifier.Notify(ctx, event); err != nil {
		sess.logger().WithError(err).WithField("event", event.Type).Warn("failed to deliver game notice")
	}
}

// scoreLines sorts scores by points, highest first, ties by player id
func scoreLines(state *models.GameState) []ScoreLine {
	lines := make([]ScoreLine, 0, len(state.Scores))
	for id, points := range state.Scores {
		lines = append(lines, ScoreLine{
			PlayerID: id,
			Name:     state.Names[id],
			Points:   points,
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Points != lines[j].Points {
			return lines[i].Points > lines[j].Points
		}
		return lines[i].PlayerID < lines[j].PlayerID
	})
	return lines
}
