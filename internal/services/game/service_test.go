package game

import (
	"context"
	"sync"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/dejavu/internal/common/clock/mocks"
	randomMocks "github.com/KirkDiggler/dejavu/internal/common/random/mocks"
	uuidMocks "github.com/KirkDiggler/dejavu/internal/common/uuid/mocks"
	"github.com/KirkDiggler/dejavu/internal/models"
	"github.com/KirkDiggler/dejavu/internal/repositories/history"
	historyMocks "github.com/KirkDiggler/dejavu/internal/repositories/history/mocks"
	"github.com/KirkDiggler/dejavu/internal/repositories/leaderboard"
	leaderboardMocks "github.com/KirkDiggler/dejavu/internal/repositories/leaderboard/mocks"
	"github.com/KirkDiggler/dejavu/internal/services/moderation"
	"github.com/KirkDiggler/dejavu/internal/services/wordfreq"
	wordfreqMocks "github.com/KirkDiggler/dejavu/internal/services/wordfreq/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const waitTimeout = 2 * time.Second

// recordingNotifier collects game notices for the test to wait on
type recordingNotifier struct {
	events chan *Event
}

func (n *recordingNotifier) Notify(ctx context.Context, event *Event) error {
	n.events <- event
	return nil
}

type GameServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockLeaderboard *leaderboardMocks.MockRepository
	mockHistory     *historyMocks.MockSource
	mockWordIndex   *wordfreqMocks.MockIndex
	mockRandom      *randomMocks.MockSource
	mockClock       *clockMocks.MockClock
	mockUUID        *uuidMocks.MockUUID
	notifier        *recordingNotifier
	recorded        chan *leaderboard.RecordGameInput
	gameService     *service
	ctx             context.Context

	// Test data
	testTime      time.Time
	testChannelID string
	testGameID    string
}

func (s *GameServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockLeaderboard = leaderboardMocks.NewMockRepository(s.mockCtrl)
	s.mockHistory = historyMocks.NewMockSource(s.mockCtrl)
	s.mockWordIndex = wordfreqMocks.NewMockIndex(s.mockCtrl)
	s.mockRandom = randomMocks.NewMockSource(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.notifier = &recordingNotifier{events: make(chan *Event, 64)}
	s.recorded = make(chan *leaderboard.RecordGameInput, 8)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testChannelID = "test-channel-id"
	s.testGameID = "test-game-id"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return(s.testGameID).AnyTimes()
	s.mockLeaderboard.EXPECT().
		RecordGame(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *leaderboard.RecordGameInput) error {
			s.recorded <- input
			return nil
		}).
		AnyTimes()

	filter, err := moderation.New(nil)
	s.Require().NoError(err)

	svc, err := New(&Config{
		Leaderboard:   s.mockLeaderboard,
		History:       s.mockHistory,
		WordIndex:     s.mockWordIndex,
		Moderation:    filter,
		Notifier:      s.notifier,
		Random:        s.mockRandom,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		MercyUserID:   "mercy",
		RoundDelay:    -1,
	})
	s.Require().NoError(err)
	s.gameService = svc
}

func (s *GameServiceTestSuite) TearDownTest() {
	s.Require().NoError(s.gameService.Shutdown(s.ctx))
	s.mockCtrl.Finish()
}

// waitEvent returns the next notice of type t, skipping others
func (s *GameServiceTestSuite) waitEvent(t EventType) *Event {
	deadline := time.After(waitTimeout)
	for {
		select {
		case event := <-s.notifier.events:
			if event.Type == t {
				return event
			}
		case <-deadline:
			s.FailNow("timed out waiting for event", string(t))
			return nil
		}
	}
}

func (s *GameServiceTestSuite) waitRecorded() *leaderboard.RecordGameInput {
	select {
	case input := <-s.recorded:
		return input
	case <-time.After(waitTimeout):
		s.FailNow("timed out waiting for leaderboard")
		return nil
	}
}

func (s *GameServiceTestSuite) expectWords(topics ...*wordfreq.Topic) {
	s.mockWordIndex.EXPECT().
		EnsureFresh(gomock.Any(), &wordfreq.EnsureFreshInput{ChannelID: s.testChannelID}).
		Return(&wordfreq.EnsureFreshOutput{}, nil)

	var prev *gomock.Call
	for _, t := range topics {
		call := s.mockWordIndex.EXPECT().
			SelectTopic(gomock.Any(), gomock.Any()).
			Return(t, nil)
		if prev != nil {
			call.After(prev)
		}
		prev = call
	}
}

func (s *GameServiceTestSuite) startWordYapper(rounds int) {
	out, err := s.gameService.StartWordYapper(s.ctx, &StartGameInput{
		ChannelID: s.testChannelID,
		Rounds:    rounds,
		StartedBy: "starter",
	})
	s.Require().NoError(err)
	s.Equal(s.testGameID, out.GameID)
	s.Equal(models.GameKindWordYapper, out.Kind)
}

func (s *GameServiceTestSuite) guess(guesser, mentioned string) *SubmitGuessOutput {
	out, err := s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{
		ChannelID:   s.testChannelID,
		GuesserID:   guesser,
		GuesserName: "Name " + guesser,
		MentionedID: mentioned,
	})
	s.Require().NoError(err)
	return out
}

func (s *GameServiceTestSuite) TestInvalidRoundCount() {
	for _, rounds := range []int{0, 11, -1} {
		_, err := s.gameService.StartWhoSaid(s.ctx, &StartGameInput{ChannelID: s.testChannelID, Rounds: rounds})
		s.Equal(ErrInvalidRoundCount, err)
		_, err = s.gameService.StartWordYapper(s.ctx, &StartGameInput{ChannelID: s.testChannelID, Rounds: rounds})
		s.Equal(ErrInvalidRoundCount, err)
	}
}

func (s *GameServiceTestSuite) TestOnlyOneGameAcrossKinds() {
	s.expectWords(&wordfreq.Topic{Word: "pizza", Speaker: "alice"})
	s.startWordYapper(3)

	_, err := s.gameService.StartWhoSaid(s.ctx, &StartGameInput{ChannelID: s.testChannelID, Rounds: 3})
	s.Equal(ErrAlreadyPlaying, err)

	_, err = s.gameService.StartWordYapper(s.ctx, &StartGameInput{ChannelID: "another-channel", Rounds: 3})
	s.Equal(ErrAlreadyPlaying, err)
}

func (s *GameServiceTestSuite) TestConcurrentStartsOnlyOneWins() {
	s.mockWordIndex.EXPECT().
		EnsureFresh(gomock.Any(), gomock.Any()).
		Return(&wordfreq.EnsureFreshOutput{}, nil).
		AnyTimes()
	s.mockWordIndex.EXPECT().
		SelectTopic(gomock.Any(), gomock.Any()).
		Return(&wordfreq.Topic{Word: "pizza", Speaker: "alice"}, nil).
		AnyTimes()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		started int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.gameService.StartWordYapper(s.ctx, &StartGameInput{ChannelID: s.testChannelID, Rounds: 1})
			if err == nil {
				mu.Lock()
				started++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(1, started)
}

func (s *GameServiceTestSuite) TestThreeRoundGameRecordsPoints() {
	s.expectWords(
		&wordfreq.Topic{Word: "pizza", Speaker: "alice", SpeakerName: "Alice", Count: 3},
		&wordfreq.Topic{Word: "tacos", Speaker: "bob", SpeakerName: "Bob", Count: 2},
		&wordfreq.Topic{Word: "sushi", Speaker: "carol", SpeakerName: "Carol", Count: 1},
	)
	s.startWordYapper(3)

	for round, target := range []string{"alice", "bob", "carol"} {
		started := s.waitEvent(EventRoundStarted)
		s.Equal(round+1, started.Round)

		out := s.guess("g1", target)
		s.Equal(GuessCorrect, out.Result)
		s.Equal(round+1, out.Round)
		s.Equal(round == 2, out.GameOver)

		correct := s.waitEvent(EventGuessCorrect)
		s.Equal(target, correct.Target)
		s.Equal(3-round, correct.Count)
	}

	// The game is over by the time the final guess returns
	_, err := s.gameService.Status(s.ctx, &StatusInput{ChannelID: s.testChannelID})
	s.Equal(ErrNoActiveGame, err)

	over := s.waitEvent(EventGameOver)
	s.Equal("g1", over.WinnerID)
	s.Equal([]ScoreLine{{PlayerID: "g1", Name: "Name g1", Points: 3}}, over.Scores)

	recorded := s.waitRecorded()
	s.Equal(models.GameKindWordYapper, recorded.Kind)
	s.Equal(map[string]int{"g1": 3}, recorded.Scores)
}

func (s *GameServiceTestSuite) TestUsedWordsAreExcluded() {
	s.mockWordIndex.EXPECT().
		EnsureFresh(gomock.Any(), gomock.Any()).
		Return(&wordfreq.EnsureFreshOutput{}, nil)
	first := s.mockWordIndex.EXPECT().
		SelectTopic(gomock.Any(), gomock.Any()).
		Return(&wordfreq.Topic{Word: "pizza", Speaker: "alice"}, nil)
	s.mockWordIndex.EXPECT().
		SelectTopic(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *wordfreq.SelectTopicInput) (*wordfreq.Topic, error) {
			s.Contains(input.Exclude, "pizza")
			return &wordfreq.Topic{Word: "tacos", Speaker: "bob"}, nil
		}).
		After(first)

	s.startWordYapper(2)
	s.waitEvent(EventRoundStarted)
	s.Equal(GuessCorrect, s.guess("g1", "alice").Result)

	status, err := s.gameService.Status(s.ctx, &StatusInput{ChannelID: s.testChannelID})
	s.Require().NoError(err)
	s.Equal(2, status.State.CurrentRound)
	s.Equal("tacos", status.State.Topic)
	s.True(status.State.HasUsed("pizza"))
	s.True(status.State.HasUsed("tacos"))
}

func (s *GameServiceTestSuite) TestWrongGuessChangesNothing() {
	s.expectWords(&wordfreq.Topic{Word: "pizza", Speaker: "alice"})
	s.startWordYapper(2)
	s.waitEvent(EventRoundStarted)

	out := s.guess("g1", "bob")
	s.Equal(GuessWrong, out.Result)
	s.False(out.GameOver)

	status, err := s.gameService.Status(s.ctx, &StatusInput{ChannelID: s.testChannelID})
	s.Require().NoError(err)
	s.Equal(1, status.State.CurrentRound)
	s.Equal(models.GameStatusRoundActive, status.State.Status)
	s.Empty(status.State.Scores)
}

func (s *GameServiceTestSuite) TestIgnoredGuesses() {
	out := s.guess("g1", "alice")
	s.Equal(GuessIgnored, out.Result)

	s.expectWords(&wordfreq.Topic{Word: "pizza", Speaker: "alice"})
	s.startWordYapper(1)
	s.waitEvent(EventRoundStarted)

	other, err := s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{
		ChannelID:   "another-channel",
		GuesserID:   "g1",
		MentionedID: "alice",
	})
	s.Require().NoError(err)
	s.Equal(GuessIgnored, other.Result)

	noMention := s.guess("g1", "")
	s.Equal(GuessIgnored, noMention.Result)

	status, err := s.gameService.Status(s.ctx, &StatusInput{ChannelID: s.testChannelID})
	s.Require().NoError(err)
	s.Equal(1, status.State.CurrentRound)
}

func (s *GameServiceTestSuite) TestRoundTimeoutCommitsPartialScores() {
	s.gameService.roundTimeout = 300 * time.Millisecond
	s.expectWords(
		&wordfreq.Topic{Word: "pizza", Speaker: "alice"},
		&wordfreq.Topic{Word: "tacos", Speaker: "bob", SpeakerName: "Bob"},
	)
	s.startWordYapper(3)
	s.waitEvent(EventRoundStarted)
	s.Equal(GuessCorrect, s.guess("g1", "alice").Result)

	timeout := s.waitEvent(EventRoundTimeout)
	s.Equal(2, timeout.Round)
	s.Equal("bob", timeout.Target)
	s.Equal(ErrRoundTimeout, timeout.Err)

	recorded := s.waitRecorded()
	s.Equal(map[string]int{"g1": 1}, recorded.Scores)

	_, err := s.gameService.Status(s.ctx, &StatusInput{})
	s.Equal(ErrNoActiveGame, err)
}

func (s *GameServiceTestSuite) TestTimeoutWithoutScoresSkipsLeaderboard() {
	s.gameService.roundTimeout = 20 * time.Millisecond
	s.expectWords(&wordfreq.Topic{Word: "pizza", Speaker: "alice"})
	s.startWordYapper(1)

	s.waitEvent(EventRoundTimeout)
	select {
	case <-s.recorded:
		s.Fail("leaderboard should not be written without scores")
	case <-time.After(50 * time.Millisecond):
	}
}

func (s *GameServiceTestSuite) TestInsufficientDataAtStart() {
	s.mockWordIndex.EXPECT().
		EnsureFresh(gomock.Any(), gomock.Any()).
		Return(&wordfreq.EnsureFreshOutput{Rebuilt: true}, nil)
	s.mockWordIndex.EXPECT().
		SelectTopic(gomock.Any(), gomock.Any()).
		Return(nil, wordfreq.ErrNoCandidates)

	_, err := s.gameService.StartWordYapper(s.ctx, &StartGameInput{ChannelID: s.testChannelID, Rounds: 3})
	s.Equal(ErrInsufficientData, err)

	// The reservation is released
	s.expectWords(&wordfreq.Topic{Word: "pizza", Speaker: "alice"})
	s.startWordYapper(1)
}

func (s *GameServiceTestSuite) TestForbiddenCacheRefresh() {
	s.mockWordIndex.EXPECT().
		EnsureFresh(gomock.Any(), gomock.Any()).
		Return(nil, errors.Wrap(history.ErrForbidden, "scan"))

	_, err := s.gameService.StartWordYapper(s.ctx, &StartGameInput{ChannelID: s.testChannelID, Rounds: 3})
	s.Equal(ErrHistoryForbidden, err)
}

func (s *GameServiceTestSuite) TestExhaustionMidGame() {
	s.mockWordIndex.EXPECT().
		EnsureFresh(gomock.Any(), gomock.Any()).
		Return(&wordfreq.EnsureFreshOutput{}, nil)
	gomock.InOrder(
		s.mockWordIndex.EXPECT().
			SelectTopic(gomock.Any(), gomock.Any()).
			Return(&wordfreq.Topic{Word: "pizza", Speaker: "alice"}, nil),
		s.mockWordIndex.EXPECT().
			SelectTopic(gomock.Any(), gomock.Any()).
			Return(nil, wordfreq.ErrNoCandidates),
	)

	s.startWordYapper(5)
	s.waitEvent(EventRoundStarted)

	out := s.guess("g1", "alice")
	s.Equal(GuessCorrect, out.Result)
	s.True(out.GameOver)

	notice := s.waitEvent(EventInsufficientData)
	s.Equal(ErrInsufficientData, notice.Err)
	s.Equal(map[string]int{"g1": 1}, s.waitRecorded().Scores)
}

func (s *GameServiceTestSuite) TestWinnerTieGoesToLowestID() {
	s.expectWords(
		&wordfreq.Topic{Word: "pizza", Speaker: "alice"},
		&wordfreq.Topic{Word: "tacos", Speaker: "bob"},
	)
	s.startWordYapper(2)

	s.waitEvent(EventRoundStarted)
	s.Equal(GuessCorrect, s.guess("zed", "alice").Result)
	s.waitEvent(EventRoundStarted)
	s.Equal(GuessCorrect, s.guess("amy", "bob").Result)

	over := s.waitEvent(EventGameOver)
	s.Equal("amy", over.WinnerID)
}

func (s *GameServiceTestSuite) TestAbortCommitsPartialScores() {
	s.expectWords(
		&wordfreq.Topic{Word: "pizza", Speaker: "alice"},
		&wordfreq.Topic{Word: "tacos", Speaker: "bob"},
	)
	s.startWordYapper(3)
	s.waitEvent(EventRoundStarted)
	s.Equal(GuessCorrect, s.guess("g1", "alice").Result)

	_, err := s.gameService.Abort(s.ctx, &AbortInput{ChannelID: "another-channel"})
	s.Equal(ErrNoActiveGame, err)

	out, err := s.gameService.Abort(s.ctx, &AbortInput{ChannelID: s.testChannelID})
	s.Require().NoError(err)
	s.Equal([]ScoreLine{{PlayerID: "g1", Name: "Name g1", Points: 1}}, out.Scores)

	s.waitEvent(EventAborted)
	s.Equal(map[string]int{"g1": 1}, s.waitRecorded().Scores)

	_, err = s.gameService.Abort(s.ctx, &AbortInput{ChannelID: s.testChannelID})
	s.Equal(ErrNoActiveGame, err)
}

func (s *GameServiceTestSuite) TestGuessesDuringDelayAreIgnored() {
	s.gameService.roundDelay = time.Hour
	s.expectWords(
		&wordfreq.Topic{Word: "pizza", Speaker: "alice"},
		&wordfreq.Topic{Word: "tacos", Speaker: "bob"},
	)
	s.startWordYapper(2)
	s.waitEvent(EventRoundStarted)
	s.Equal(GuessCorrect, s.guess("g1", "alice").Result)

	out := s.guess("g1", "bob")
	s.Equal(GuessIgnored, out.Result)
}

func (s *GameServiceTestSuite) TestWhoSaidSkipsUnusableMessages() {
	created := s.testTime.Add(-24 * time.Hour)
	s.mockHistory.EXPECT().
		ChannelCreatedAt(gomock.Any(), s.testChannelID).
		Return(created, nil)
	s.mockRandom.EXPECT().Int63n(gomock.Any()).Return(int64(0)).Times(3)
	gomock.InOrder(
		s.mockHistory.EXPECT().
			MessagesAround(gomock.Any(), s.testChannelID, created, DefaultSampleLimit).
			Return([]*models.Message{{ID: "m1", AuthorID: "bot", Content: "beep", IsBot: true}}, nil),
		s.mockHistory.EXPECT().
			MessagesAround(gomock.Any(), s.testChannelID, created, DefaultSampleLimit).
			Return([]*models.Message{{ID: "m2", AuthorID: "mercy", Content: "spare me"}}, nil),
		s.mockHistory.EXPECT().
			MessagesAround(gomock.Any(), s.testChannelID, created, DefaultSampleLimit).
			Return([]*models.Message{
				{ID: "m3", AuthorID: "carol", Content: "lol"},
				{ID: "m4", AuthorID: "dave", AuthorName: "Dave", Content: "pineapple belongs on pizza"},
			}, nil),
	)

	_, err := s.gameService.StartWhoSaid(s.ctx, &StartGameInput{
		ChannelID: s.testChannelID,
		Rounds:    1,
		MercyMode: true,
	})
	s.Require().NoError(err)

	started := s.waitEvent(EventRoundStarted)
	s.Equal("pineapple belongs on pizza", started.Topic)
	s.Equal(models.GameKindWhoSaid, started.Kind)

	out := s.guess("g1", "dave")
	s.Equal(GuessCorrect, out.Result)
	s.True(out.GameOver)
}

func (s *GameServiceTestSuite) TestWhoSaidGivesUpAfterThreeSamples() {
	created := s.testTime.Add(-time.Hour)
	s.mockHistory.EXPECT().ChannelCreatedAt(gomock.Any(), gomock.Any()).Return(created, nil)
	s.mockRandom.EXPECT().Int63n(int64(time.Hour)).Return(int64(time.Minute)).Times(3)
	s.mockHistory.EXPECT().
		MessagesAround(gomock.Any(), s.testChannelID, created.Add(time.Minute), DefaultSampleLimit).
		Return([]*models.Message{}, nil).
		Times(3)

	_, err := s.gameService.StartWhoSaid(s.ctx, &StartGameInput{ChannelID: s.testChannelID, Rounds: 1})
	s.Equal(ErrNoMessages, err)
}

func (s *GameServiceTestSuite) TestWhoSaidForbidden() {
	s.mockHistory.EXPECT().ChannelCreatedAt(gomock.Any(), gomock.Any()).Return(s.testTime.Add(-time.Hour), nil)
	s.mockRandom.EXPECT().Int63n(gomock.Any()).Return(int64(0))
	s.mockHistory.EXPECT().
		MessagesAround(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, history.ErrForbidden)

	_, err := s.gameService.StartWhoSaid(s.ctx, &StartGameInput{ChannelID: s.testChannelID, Rounds: 1})
	s.Equal(ErrHistoryForbidden, err)
}

func (s *GameServiceTestSuite) TestSampleMessageLeavesSlotFree() {
	created := s.testTime.Add(-time.Hour)
	s.mockHistory.EXPECT().ChannelCreatedAt(gomock.Any(), s.testChannelID).Return(created, nil)
	s.mockRandom.EXPECT().Int63n(int64(time.Hour)).Return(int64(0))
	s.mockHistory.EXPECT().
		MessagesAround(gomock.Any(), s.testChannelID, created, DefaultSampleLimit).
		Return([]*models.Message{{ID: "m9", AuthorID: "erin", AuthorName: "Erin", Content: "remember this"}}, nil)

	out, err := s.gameService.SampleMessage(s.ctx, &SampleMessageInput{ChannelID: s.testChannelID})
	s.Require().NoError(err)
	s.Equal("m9", out.Message.ID)

	_, err = s.gameService.Status(s.ctx, &StatusInput{})
	s.Equal(ErrNoActiveGame, err)

	_, err = s.gameService.SampleMessage(s.ctx, &SampleMessageInput{})
	s.Equal(ErrMissingChannel, err)
}

func TestGameServiceSuite(t *testing.T) {
	suite.Run(t, new(GameServiceTestSuite))
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil)
	if err != ErrNilConfig {
		t.Fatalf("expected ErrNilConfig, got %v", err)
	}

	_, err = New(&Config{})
	if err != ErrNilLeaderboard {
		t.Fatalf("expected ErrNilLeaderboard, got %v", err)
	}
}
