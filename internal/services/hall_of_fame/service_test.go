package hall_of_fame_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KirkDiggler/dejavu/internal/models"
	hofRepo "github.com/KirkDiggler/dejavu/internal/repositories/hall_of_fame"
	repoMocks "github.com/KirkDiggler/dejavu/internal/repositories/hall_of_fame/mocks"
	"github.com/KirkDiggler/dejavu/internal/services/hall_of_fame"
	"github.com/KirkDiggler/dejavu/internal/services/hall_of_fame/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ShareTestSuite struct {
	suite.Suite
	ctx            context.Context
	mockCtrl       *gomock.Controller
	mockRepo       *repoMocks.MockRepository
	mockFetcher    *mocks.MockMessageFetcher
	mockDownloader *mocks.MockDownloader
	service        hall_of_fame.Service
	entry          *models.HallOfFameEntry
}

func (s *ShareTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = repoMocks.NewMockRepository(s.mockCtrl)
	s.mockFetcher = mocks.NewMockMessageFetcher(s.mockCtrl)
	s.mockDownloader = mocks.NewMockDownloader(s.mockCtrl)

	svc, err := hall_of_fame.New(&hall_of_fame.Config{
		Repository: s.mockRepo,
		Fetcher:    s.mockFetcher,
		Downloader: s.mockDownloader,
	})
	s.Require().NoError(err)
	s.service = svc

	s.entry = &models.HallOfFameEntry{
		MessageID:  "m1",
		ChannelID:  "c1",
		Content:    "stored text",
		AuthorName: "alice",
		ImageURLs:  []string{"https://cdn.example.com/stored.png"},
	}
	s.mockRepo.EXPECT().Get(s.ctx, &hofRepo.GetInput{MessageID: "m1"}).Return(s.entry, nil).AnyTimes()
}

func (s *ShareTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *ShareTestSuite) TestPrefersLiveMessage() {
	s.mockFetcher.EXPECT().FetchMessage(s.ctx, "c1", "m1").Return(&models.Message{
		ID:          "m1",
		Content:     "edited text",
		Attachments: []string{"https://cdn.example.com/live.png"},
	}, nil)
	s.mockDownloader.EXPECT().Download(s.ctx, "https://cdn.example.com/live.png").
		Return(&hall_of_fame.Image{Name: "live.png"}, nil)

	out, err := s.service.Share(s.ctx, &hall_of_fame.ShareInput{MessageID: "m1"})
	s.Require().NoError(err)
	s.True(out.Live)
	s.Equal("edited text", out.Content)
	s.Require().Len(out.Images, 1)
	s.Equal("live.png", out.Images[0].Name)
}

func (s *ShareTestSuite) TestFallsBackToStoredCopy() {
	s.mockFetcher.EXPECT().FetchMessage(s.ctx, "c1", "m1").Return(nil, errors.New("unknown message"))
	s.mockDownloader.EXPECT().Download(s.ctx, "https://cdn.example.com/stored.png").
		Return(&hall_of_fame.Image{Name: "stored.png"}, nil)

	out, err := s.service.Share(s.ctx, &hall_of_fame.ShareInput{MessageID: "m1"})
	s.Require().NoError(err)
	s.False(out.Live)
	s.Equal("stored text", out.Content)
	s.Len(out.Images, 1)
}

func (s *ShareTestSuite) TestRenderedPinUsesStoredCopy() {
	s.entry.PinType = models.PinTypeImage
	s.mockFetcher.EXPECT().FetchMessage(s.ctx, "c1", "m1").Return(&models.Message{ID: "m1", Content: ""}, nil)
	s.mockDownloader.EXPECT().Download(s.ctx, "https://cdn.example.com/stored.png").
		Return(&hall_of_fame.Image{Name: "stored.png"}, nil)

	out, err := s.service.Share(s.ctx, &hall_of_fame.ShareInput{MessageID: "m1"})
	s.Require().NoError(err)
	s.False(out.Live)
	s.Equal("stored text", out.Content)
	s.Require().Len(out.Images, 1)
	s.Equal("stored.png", out.Images[0].Name)
}

func (s *ShareTestSuite) TestSkipsFailedImagesAndCaps() {
	urls := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		urls = append(urls, fmt.Sprintf("https://cdn.example.com/%d.png", i))
	}
	s.mockFetcher.EXPECT().FetchMessage(s.ctx, "c1", "m1").Return(&models.Message{Attachments: urls}, nil)

	s.mockDownloader.EXPECT().Download(s.ctx, urls[0]).Return(nil, errors.New("404"))
	for _, u := range urls[1:11] {
		s.mockDownloader.EXPECT().Download(s.ctx, u).Return(&hall_of_fame.Image{Name: u}, nil)
	}

	out, err := s.service.Share(s.ctx, &hall_of_fame.ShareInput{MessageID: "m1"})
	s.Require().NoError(err)
	s.Len(out.Images, hall_of_fame.MaxShareImages)
	s.Equal(1, out.Skipped)
}

func (s *ShareTestSuite) TestImageLinksInContentAreAttached() {
	s.mockFetcher.EXPECT().FetchMessage(s.ctx, "c1", "m1").Return(&models.Message{
		Content: "look https://i.example.com/cat.gif and https://example.com/page",
	}, nil)
	s.mockDownloader.EXPECT().Download(s.ctx, "https://i.example.com/cat.gif").
		Return(&hall_of_fame.Image{Name: "cat.gif"}, nil)

	out, err := s.service.Share(s.ctx, &hall_of_fame.ShareInput{MessageID: "m1"})
	s.Require().NoError(err)
	s.Equal("look  and https://example.com/page", out.Content)
	s.Len(out.Images, 1)
}

func (s *ShareTestSuite) TestMissingEntry() {
	s.mockRepo.EXPECT().Get(s.ctx, &hofRepo.GetInput{MessageID: "nope"}).Return(nil, hofRepo.ErrEntryNotFound)

	_, err := s.service.Share(s.ctx, &hall_of_fame.ShareInput{MessageID: "nope"})
	s.ErrorIs(err, hofRepo.ErrEntryNotFound)
}

func TestShareSuite(t *testing.T) {
	suite.Run(t, new(ShareTestSuite))
}

func TestNewValidation(t *testing.T) {
	_, err := hall_of_fame.New(nil)
	assert.Error(t, err)

	_, err = hall_of_fame.New(&hall_of_fame.Config{})
	assert.Error(t, err)
}

func TestHTTPDownloader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("png-bytes"))
		case "/big.png":
			_, _ = w.Write(make([]byte, 64))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	d := hall_of_fame.NewHTTPDownloader(&hall_of_fame.DownloaderConfig{MaxRetries: 1, MaxBytes: 32})

	img, err := d.Download(context.Background(), srv.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, "ok.png", img.Name)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, []byte("png-bytes"), img.Data)

	_, err = d.Download(context.Background(), srv.URL+"/missing.png")
	assert.Error(t, err)

	_, err = d.Download(context.Background(), srv.URL+"/big.png")
	assert.Error(t, err)
}
