package game

import (
	"context"
	"strings"
	"time"

	"github.com/KirkDiggler/dejavu/internal/models"
	"github.com/KirkDiggler/dejavu/internal/repositories/history"
	"github.com/KirkDiggler/dejavu/internal/services/wordfreq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// topic is what one round asks about
type topic struct {
	// key marks the topic as used: the message id or the word
	key        string
	text       string
	target     string
	targetName string
	count      int
}

func applyTopic(state *models.GameState, t *topic) {
	state.Topic = t.text
	state.Target = t.target
	state.TargetName = t.targetName
	state.TopicCount = t.count
	state.UsedTopics[t.key] = struct{}{}
}

func (s *service) excludedSpeaker(state *models.GameState) string {
	if state.MercyMode {
		return s.mercyUserID
	}
	return ""
}

func (s *service) selectTopic(ctx context.Context, state *models.GameState) (*topic, error) {
	switch state.Kind {
	case models.GameKindWordYapper:
		return s.selectWord(ctx, state)
	default:
		return s.selectMessage(ctx, state)
	}
}

func (s *service) selectWord(ctx context.Context, state *models.GameState) (*topic, error) {
	picked, err := s.wordIndex.SelectTopic(ctx, &wordfreq.SelectTopicInput{
		Exclude:        state.UsedTopics,
		ExcludeSpeaker: s.excludedSpeaker(state),
		Relax:          true,
	})
	if err != nil {
		if errors.Is(err, wordfreq.ErrNoCandidates) {
			return nil, ErrInsufficientData
		}
		return nil, err
	}

	return &topic{
		key:        picked.Word,
		text:       picked.Word,
		target:     picked.Speaker,
		targetName: picked.SpeakerName,
		count:      picked.Count,
	}, nil
}

// selectMessage picks an unused message from the channel history
func (s *service) selectMessage(ctx context.Context, state *models.GameState) (*topic, error) {
	msg, err := s.sampleMessage(ctx, state)
	if err != nil {
		return nil, err
	}

	return &topic{
		key:        msg.ID,
		text:       msg.Content,
		target:     msg.AuthorID,
		targetName: msg.AuthorName,
	}, nil
}

// sampleMessage samples random instants between the channel's creation
// and now until it finds a usable message
func (s *service) sampleMessage(ctx context.Context, state *models.GameState) (*models.Message, error) {
	created, err := s.history.ChannelCreatedAt(ctx, state.ChannelID)
	if err != nil {
		return nil, mapHistoryError(err)
	}

	span := s.clock.Now().Sub(created)
	if span <= 0 {
		return nil, ErrNoMessages
	}

	excluded := s.excludedSpeaker(state)
	for attempt := 1; attempt <= s.sampleAttempts; attempt++ {
		at := created.Add(time.Duration(s.random.Int63n(int64(span))))

		msgs, err := s.history.MessagesAround(ctx, state.ChannelID, at, s.sampleLimit)
		if err != nil {
			if errors.Is(err, history.ErrForbidden) {
				return nil, ErrHistoryForbidden
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log().WithError(err).WithFields(logrus.Fields{
				"channel_id": state.ChannelID,
				"attempt":    attempt,
			}).Warn("failed to sample history")
			continue
		}

		for _, msg := range msgs {
			if s.usable(msg, state, excluded) {
				return msg, nil
			}
		}
	}

	return nil, ErrNoMessages
}

func (s *service) usable(msg *models.Message, state *models.GameState, excluded string) bool {
	switch {
	case msg == nil, msg.IsBot, msg.AuthorID == "":
		return false
	case strings.TrimSpace(msg.Content) == "":
		return false
	case excluded != "" && msg.AuthorID == excluded:
		return false
	case state.HasUsed(msg.ID):
		return false
	case s.moderation.IsDisallowed(msg.Content):
		return false
	}
	return true
}
