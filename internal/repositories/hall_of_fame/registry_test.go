package hall_of_fame

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	clockmocks "github.com/KirkDiggler/dejavu/internal/common/clock/mocks"
	"github.com/KirkDiggler/dejavu/internal/models"
	"github.com/KirkDiggler/dejavu/internal/repositories/store"
	storemocks "github.com/KirkDiggler/dejavu/internal/repositories/store/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RegistryTestSuite struct {
	suite.Suite
	ctx       context.Context
	ctrl      *gomock.Controller
	mockClock *clockmocks.MockClock
	store     store.Store
	repo      *registry
	now       time.Time
}

func (s *RegistryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockClock = clockmocks.NewMockClock(s.ctrl)
	s.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.now).AnyTimes()

	fs, err := store.NewFile(&store.FileConfig{Dir: s.T().TempDir()})
	s.Require().NoError(err)
	s.store = fs

	repo, err := New(s.ctx, &Config{Store: s.store, Clock: s.mockClock})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RegistryTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RegistryTestSuite) entry(id string, pinnedAt time.Time) *models.HallOfFameEntry {
	return &models.HallOfFameEntry{
		MessageID:  id,
		ChannelID:  "chan",
		Content:    "content " + id,
		AuthorName: "alice",
		PinnedBy:   "bob",
		PinnedAt:   pinnedAt,
		PinType:    models.PinTypeMessage,
	}
}

func (s *RegistryTestSuite) TestPinIsIdempotent() {
	first, err := s.repo.Pin(s.ctx, &PinInput{Entry: s.entry("m1", s.now)})
	s.Require().NoError(err)
	s.True(first.Pinned)

	again := s.entry("m1", s.now.Add(time.Hour))
	again.Content = "different"
	second, err := s.repo.Pin(s.ctx, &PinInput{Entry: again})
	s.Require().NoError(err)
	s.False(second.Pinned)
	s.Equal("content m1", second.Entry.Content)

	list, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Len(list.Entries, 1)
}

func (s *RegistryTestSuite) TestPinTruncatesAndStamps() {
	e := s.entry("m1", time.Time{})
	e.Content = strings.Repeat("é", models.MaxHallOfFameContent+50)

	out, err := s.repo.Pin(s.ctx, &PinInput{Entry: e})
	s.Require().NoError(err)
	s.Equal(models.MaxHallOfFameContent, len([]rune(out.Entry.Content)))
	s.Equal(s.now, out.Entry.PinnedAt)
}

func (s *RegistryTestSuite) TestPinRequiresMessageID() {
	_, err := s.repo.Pin(s.ctx, &PinInput{Entry: s.entry("", s.now)})
	s.True(errors.Is(err, ErrMissingMessageID))
}

func (s *RegistryTestSuite) TestUnpinAfterPin() {
	_, err := s.repo.Pin(s.ctx, &PinInput{Entry: s.entry("m1", s.now)})
	s.Require().NoError(err)

	out, err := s.repo.Unpin(s.ctx, &UnpinInput{MessageID: "m1"})
	s.Require().NoError(err)
	s.True(out.Removed)

	_, err = s.repo.Get(s.ctx, &GetInput{MessageID: "m1"})
	s.True(errors.Is(err, ErrEntryNotFound))
}

func (s *RegistryTestSuite) TestEntriesSurviveReload() {
	e := s.entry("m1", s.now)
	e.ImageURLs = []string{"https://cdn.example/a.png", "https://cdn.example/b.png"}
	_, err := s.repo.Pin(s.ctx, &PinInput{Entry: e})
	s.Require().NoError(err)

	reloaded, err := New(s.ctx, &Config{Store: s.store, Clock: s.mockClock})
	s.Require().NoError(err)

	got, err := reloaded.Get(s.ctx, &GetInput{MessageID: "m1"})
	s.Require().NoError(err)
	s.Equal("m1", got.MessageID)
	s.Equal(e.ImageURLs, got.ImageURLs)
	s.True(s.now.Equal(got.PinnedAt))
}

func (s *RegistryTestSuite) TestListOrdering() {
	_, _ = s.repo.Pin(s.ctx, &PinInput{Entry: s.entry("old", s.now.Add(-time.Hour))})
	_, _ = s.repo.Pin(s.ctx, &PinInput{Entry: s.entry("b", s.now)})
	_, _ = s.repo.Pin(s.ctx, &PinInput{Entry: s.entry("a", s.now)})
	_, _ = s.repo.Pin(s.ctx, &PinInput{Entry: s.entry("new", s.now.Add(time.Hour))})

	list, err := s.repo.List(s.ctx)
	s.Require().NoError(err)

	ids := make([]string, 0, len(list.Entries))
	for _, e := range list.Entries {
		ids = append(ids, e.MessageID)
	}
	s.Equal([]string{"new", "a", "b", "old"}, ids)
}

func (s *RegistryTestSuite) TestListPage() {
	for i := 0; i < 7; i++ {
		_, err := s.repo.Pin(s.ctx, &PinInput{Entry: s.entry(fmt.Sprintf("m%d", i), s.now.Add(time.Duration(i)*time.Minute))})
		s.Require().NoError(err)
	}

	page, err := s.repo.ListPage(s.ctx, &ListPageInput{Page: 1, Size: 5})
	s.Require().NoError(err)
	s.Equal(1, page.Page)
	s.Equal(2, page.TotalPages)
	s.Equal(7, page.Total)
	s.Require().Len(page.Entries, 2)
	s.Equal("m1", page.Entries[0].MessageID)
	s.Equal("m0", page.Entries[1].MessageID)

	clamped, err := s.repo.ListPage(s.ctx, &ListPageInput{Page: 9, Size: 5})
	s.Require().NoError(err)
	s.Equal(1, clamped.Page)
}

func (s *RegistryTestSuite) TestListPageEmpty() {
	page, err := s.repo.ListPage(s.ctx, &ListPageInput{})
	s.Require().NoError(err)
	s.Empty(page.Entries)
	s.Equal(0, page.TotalPages)
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

type RegistryMockStoreTestSuite struct {
	suite.Suite
	ctx       context.Context
	ctrl      *gomock.Controller
	mockStore *storemocks.MockStore
	repo      *registry
}

func (s *RegistryMockStoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = storemocks.NewMockStore(s.ctrl)

	s.mockStore.EXPECT().
		Load(gomock.Any(), store.KeyHallOfFame, gomock.Any()).
		Return(store.ErrNotFound)

	repo, err := New(s.ctx, &Config{Store: s.mockStore})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RegistryMockStoreTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RegistryMockStoreTestSuite) TestUnpinAbsentDoesNotSave() {
	out, err := s.repo.Unpin(s.ctx, &UnpinInput{MessageID: "missing"})
	s.Require().NoError(err)
	s.False(out.Removed)
}

func (s *RegistryMockStoreTestSuite) TestRepinDoesNotSave() {
	s.mockStore.EXPECT().
		Save(gomock.Any(), store.KeyHallOfFame, gomock.Any()).
		Return(nil).
		Times(1)

	entry := &models.HallOfFameEntry{MessageID: "m1", PinnedAt: time.Now()}
	_, err := s.repo.Pin(s.ctx, &PinInput{Entry: entry})
	s.Require().NoError(err)
	_, err = s.repo.Pin(s.ctx, &PinInput{Entry: entry})
	s.Require().NoError(err)
}

func (s *RegistryMockStoreTestSuite) TestSaveFailureKeepsEntry() {
	s.mockStore.EXPECT().
		Save(gomock.Any(), store.KeyHallOfFame, gomock.Any()).
		Return(errors.New("disk full"))

	_, err := s.repo.Pin(s.ctx, &PinInput{Entry: &models.HallOfFameEntry{MessageID: "m1", PinnedAt: time.Now()}})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, &GetInput{MessageID: "m1"})
	s.Require().NoError(err)
	s.Equal("m1", got.MessageID)
}

func TestRegistryMockStoreSuite(t *testing.T) {
	suite.Run(t, new(RegistryMockStoreTestSuite))
}
