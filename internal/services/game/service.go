package game

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/dejavu/internal/common/clock"
	"github.com/KirkDiggler/dejavu/internal/common/metrics"
	"github.com/KirkDiggler/dejavu/internal/common/random"
	"github.com/KirkDiggler/dejavu/internal/common/uuid"
	"github.com/KirkDiggler/dejavu/internal/models"
	"github.com/KirkDiggler/dejavu/internal/repositories/history"
	"github.com/KirkDiggler/dejavu/internal/repositories/leaderboard"
	"github.com/KirkDiggler/dejavu/internal/services/moderation"
	"github.com/KirkDiggler/dejavu/internal/services/wordfreq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// service implements the Service interface
type service struct {
	leaderboard   leaderboard.Repository
	history       history.Source
	wordIndex     wordfreq.Index
	moderation    moderation.Filter
	notifier      Notifier
	random        random.Source
	clock         clock.Clock
	uuidGenerator uuid.UUID

	mercyUserID    string
	roundTimeout   time.Duration
	roundDelay     time.Duration
	sampleAttempts int
	sampleLimit    int

	// mu guards active; a non-nil active session is the single game slot
	mu     sync.Mutex
	active *session
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Leaderboard == nil {
		return nil, ErrNilLeaderboard
	}

	if cfg.History == nil {
		return nil, ErrNilHistory
	}

	if cfg.WordIndex == nil {
		return nil, ErrNilWordIndex
	}

	if cfg.Moderation == nil {
		return nil, ErrNilModeration
	}

	if cfg.Notifier == nil {
		return nil, ErrNilNotifier
	}

	if cfg.Random == nil {
		return nil, ErrNilRandom
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	s := &service{
		leaderboard:    cfg.Leaderboard,
		history:        cfg.History,
		wordIndex:      cfg.WordIndex,
		moderation:     cfg.Moderation,
		notifier:       cfg.Notifier,
		random:         cfg.Random,
		clock:          cfg.Clock,
		uuidGenerator:  cfg.UUIDGenerator,
		mercyUserID:    cfg.MercyUserID,
		roundTimeout:   cfg.RoundTimeout,
		roundDelay:     cfg.RoundDelay,
		sampleAttempts: cfg.SampleAttempts,
		sampleLimit:    cfg.SampleLimit,
	}
	if s.roundTimeout <= 0 {
		s.roundTimeout = DefaultRoundTimeout
	}
	if s.roundDelay == 0 {
		s.roundDelay = DefaultRoundDelay
	}
	if s.roundDelay < 0 {
		s.roundDelay = 0
	}
	if s.sampleAttempts <= 0 {
		s.sampleAttempts = DefaultSampleAttempts
	}
	if s.sampleLimit <= 0 {
		s.sampleLimit = DefaultSampleLimit
	}

	return s, nil
}

// StartWhoSaid starts a who said game
func (s *service) StartWhoSaid(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	return s.start(ctx, models.GameKindWhoSaid, input)
}

// StartWordYapper starts a word yapper game, rebuilding the word cache
// first when it is stale
func (s *service) StartWordYapper(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	return s.start(ctx, models.GameKindWordYapper, input)
}

func (s *service) start(ctx context.Context, kind models.GameKind, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.ChannelID == "" {
		return nil, ErrMissingChannel
	}

	if input.Rounds < models.MinRounds || input.Rounds > models.MaxRounds {
		return nil, ErrInvalidRoundCount
	}

	sess := newSession(&models.GameState{
		ID:         s.uuidGenerator.NewUUID(),
		Kind:       kind,
		Status:     models.GameStatusIdle,
		ChannelID:  input.ChannelID,
		StartedBy:  input.StartedBy,
		MaxRounds:  input.Rounds,
		UsedTopics: make(map[string]struct{}),
		Scores:     make(map[string]int),
		Names:      make(map[string]string),
		MercyMode:  input.MercyMode,
		StartedAt:  s.clock.Now(),
	})

	// Check and reserve the slot in one critical section
	s.mu.Lock()
	if s.active != nil {
		s.mu.Unlock()
		return nil, ErrAlreadyPlaying
	}
	s.active = sess
	s.mu.Unlock()

	logger := log().WithFields(logrus.Fields{
		"game_id":    sess.id,
		"kind":       kind,
		"channel_id": input.ChannelID,
	})

	if kind == models.GameKindWordYapper {
		_, err := s.wordIndex.EnsureFresh(ctx, &wordfreq.EnsureFreshInput{ChannelID: input.ChannelID})
		if err != nil {
			s.release(sess)
			logger.WithError(err).Warn("failed to refresh word cache")
			return nil, mapHistoryError(err)
		}
	}

	topic, err := s.selectTopic(ctx, sess.snapshot())
	if err != nil {
		s.release(sess)
		logger.WithError(err).Info("could not select a first topic")
		return nil, err
	}

	sess.mu.Lock()
	sess.state.CurrentRound = 1
	sess.state.Status = models.GameStatusRoundActive
	sess.state.RoundStartedAt = s.clock.Now()
	applyTopic(sess.state, topic)
	sess.mu.Unlock()

	metrics.GameStarted(string(kind))
	logger.WithField("rounds", input.Rounds).Info("game started")

	// The loop outlives the request that started it
	go s.run(context.WithoutCancel(ctx), sess)

	return &StartGameOutput{
		GameID: sess.id,
		Kind:   kind,
		Rounds: input.Rounds,
	}, nil
}

// release frees a reservation that never started a round loop
func (s *service) release(sess *session) {
	s.mu.Lock()
	if s.active == sess {
		s.active = nil
	}
	s.mu.Unlock()
	close(sess.done)
}

// current returns the running session for channelID, or nil. An empty
// channelID matches any channel.
func (s *service) current(channelID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil
	}
	if channelID != "" && s.active.channelID != channelID {
		return nil
	}
	return s.active
}

// SubmitGuess hands a guess to the round loop and waits for its verdict.
// Guesses with no running game, from another channel or without a
// mention are ignored.
func (s *service) SubmitGuess(ctx context.Context, input *SubmitGuessInput) (*SubmitGuessOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	ignored := &SubmitGuessOutput{Result: GuessIgnored}

	if input.ChannelID == "" || input.MentionedID == "" || input.GuesserID == "" {
		return ignored, nil
	}

	sess := s.current(input.ChannelID)
	if sess == nil || !sess.snapshot().IsActive() {
		return ignored, nil
	}

	req := &guessRequest{
		input: input,
		reply: make(chan *SubmitGuessOutput, 1),
	}

	select {
	case sess.guesses <- req:
	case <-sess.done:
		return ignored, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case out := <-req.reply:
		return out, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Abort ends the running game and commits the partial scores
func (s *service) Abort(ctx context.Context, input *AbortInput) (*AbortOutput, error) {
	if input == nil {
		input = &AbortInput{}
	}

	sess := s.current(input.ChannelID)
	if sess == nil {
		return nil, ErrNoActiveGame
	}

	req := &abortRequest{
		reply: make(chan *AbortOutput, 1),
	}

	select {
	case sess.aborts <- req:
	case <-sess.done:
		return nil, ErrNoActiveGame
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case out := <-req.reply:
		return out, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Status returns a copy of the running game state
func (s *service) Status(ctx context.Context, input *StatusInput) (*StatusOutput, error) {
	if input == nil {
		input = &StatusInput{}
	}

	sess := s.current(input.ChannelID)
	if sess == nil {
		return nil, ErrNoActiveGame
	}

	return &StatusOutput{
		State: sess.snapshot(),
	}, nil
}

// SampleMessage picks a random usable message from the channel history.
// It does not touch the active game slot.
func (s *service) SampleMessage(ctx context.Context, input *SampleMessageInput) (*SampleMessageOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, ErrMissingChannel
	}

	msg, err := s.sampleMessage(ctx, &models.GameState{
		ChannelID:  input.ChannelID,
		MercyMode:  input.MercyMode,
		UsedTopics: map[string]struct{}{},
	})
	if err != nil {
		return nil, err
	}

	return &SampleMessageOutput{
		Message: msg,
	}, nil
}

// Shutdown aborts the running game, if any, and waits for its loop to exit
func (s *service) Shutdown(ctx context.Context) error {
	sess := s.current("")
	if sess == nil {
		return nil
	}

	if _, err := s.Abort(ctx, &AbortInput{}); err != nil && !errors.Is(err, ErrNoActiveGame) {
		return err
	}

	select {
	case <-sess.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func mapHistoryError(err error) error {
	switch {
	case errors.Is(err, history.ErrForbidden):
		return ErrHistoryForbidden
	case errors.Is(err, wordfreq.ErrNoCandidates):
		return ErrInsufficientData
	default:
		return err
	}
}

func log() *logrus.Entry {
	return logrus.WithField("module", "game")
}
