package history

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/KirkDiggler/dejavu/internal/models"
	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type channelCall struct {
	limit    int
	beforeID string
	aroundID string
}

// fakeSession serves a fixed channel history, newest first
type fakeSession struct {
	messages []*discordgo.Message
	calls    []channelCall
	err      error
}

func (f *fakeSession) ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	f.calls = append(f.calls, channelCall{limit: limit, beforeID: beforeID, aroundID: aroundID})
	if f.err != nil {
		return nil, f.err
	}

	start := 0
	if beforeID != "" {
		for i, m := range f.messages {
			if m.ID == beforeID {
				start = i + 1
				break
			}
		}
	}
	end := start + limit
	if end > len(f.messages) {
		end = len(f.messages)
	}
	return f.messages[start:end], nil
}

type DiscordSourceTestSuite struct {
	suite.Suite
	ctx     context.Context
	session *fakeSession
	source  *discordSource
}

func (s *DiscordSourceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.session = &fakeSession{}
	for i := 250; i > 0; i-- {
		s.session.messages = append(s.session.messages, &discordgo.Message{
			ID:        strconv.Itoa(i),
			ChannelID: "chan",
			Content:   fmt.Sprintf("message %d", i),
			Author:    &discordgo.User{ID: "alice", Username: "alice"},
		})
	}

	source, err := NewDiscord(&DiscordConfig{Session: s.session})
	s.Require().NoError(err)
	s.source = source
}

func (s *DiscordSourceTestSuite) TestWalkStopsAtLimit() {
	visited := 0
	err := s.source.Walk(s.ctx, "chan", 150, func(msg *models.Message) error {
		visited++
		return nil
	})
	s.Require().NoError(err)
	s.Equal(150, visited)
	s.Require().Len(s.session.calls, 2)
	s.Equal(100, s.session.calls[0].limit)
	s.Equal(50, s.session.calls[1].limit)
	s.Equal("151", s.session.calls[1].beforeID)
}

func (s *DiscordSourceTestSuite) TestWalkEndsAtChannelStart() {
	visited := 0
	err := s.source.Walk(s.ctx, "chan", 10000, func(msg *models.Message) error {
		visited++
		return nil
	})
	s.Require().NoError(err)
	s.Equal(250, visited)
}

func (s *DiscordSourceTestSuite) TestWalkStopEarly() {
	visited := 0
	err := s.source.Walk(s.ctx, "chan", 10000, func(msg *models.Message) error {
		visited++
		if visited == 3 {
			return ErrStopWalk
		}
		return nil
	})
	s.Require().NoError(err)
	s.Equal(3, visited)
}

func (s *DiscordSourceTestSuite) TestWalkCancelled() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	err := s.source.Walk(ctx, "chan", 100, func(msg *models.Message) error { return nil })
	s.True(errors.Is(err, context.Canceled))
}

func (s *DiscordSourceTestSuite) TestForbiddenIsMapped() {
	s.session.err = &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusForbidden},
	}

	_, err := s.source.MessagesAround(s.ctx, "chan", time.Now(), 1)
	s.True(errors.Is(err, ErrForbidden))

	s.session.err = &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusBadRequest},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingAccess},
	}
	err = s.source.Walk(s.ctx, "chan", 10, func(msg *models.Message) error { return nil })
	s.True(errors.Is(err, ErrForbidden))
}

func (s *DiscordSourceTestSuite) TestMessagesAroundUsesSnowflake() {
	at := time.UnixMilli(discordEpoch + 1000)
	_, err := s.source.MessagesAround(s.ctx, "chan", at, 1)
	s.Require().NoError(err)
	s.Require().Len(s.session.calls, 1)
	s.Equal(strconv.FormatInt(1000<<22, 10), s.session.calls[0].aroundID)
}

func TestDiscordSourceSuite(t *testing.T) {
	suite.Run(t, new(DiscordSourceTestSuite))
}

func TestSnowflakeRoundTrip(t *testing.T) {
	at := time.Date(2023, 3, 4, 5, 6, 7, 0, time.UTC)
	got, err := discordgo.SnowflakeTimestamp(SnowflakeAt(at))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(at) {
		t.Fatalf("expected %v, got %v", at, got)
	}
}

func TestFromDiscordPrefersGlobalName(t *testing.T) {
	msg := FromDiscord(&discordgo.Message{
		ID:      "1",
		Content: "hi",
		Author:  &discordgo.User{ID: "u1", Username: "user", GlobalName: "Display", Bot: true},
		Attachments: []*discordgo.MessageAttachment{
			{URL: "https://cdn.example/a.png"},
		},
	})
	if msg.AuthorName != "Display" || !msg.IsBot || len(msg.Attachments) != 1 {
		t.Fatalf("unexpected conversion: %+v", msg)
	}
}
