package hall_of_fame

import (
	"context"
	"path"
	"strings"

	hofRepo "github.com/KirkDiggler/dejavu/internal/repositories/hall_of_fame"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"mvdan.cc/xurls"
)

// Config holds the share service dependencies
type Config struct {
	Repository hofRepo.Repository
	Fetcher    MessageFetcher
	Downloader Downloader
}

type service struct {
	repo       hofRepo.Repository
	fetcher    MessageFetcher
	downloader Downloader
}

// New creates a share service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Repository == nil {
		return nil, errors.New("hall of fame repository cannot be nil")
	}

	if cfg.Fetcher == nil {
		return nil, errors.New("message fetcher cannot be nil")
	}

	if cfg.Downloader == nil {
		return nil, errors.New("downloader cannot be nil")
	}

	return &service{
		repo:       cfg.Repository,
		fetcher:    cfg.Fetcher,
		downloader: cfg.Downloader,
	}, nil
}

func log() *logrus.Entry {
	return logrus.WithField("module", "hall_of_fame_share")
}

// Share prefers the live message and falls back to what was stored at pin time.
// A live copy with no text or attachments, such as a rendered embed, counts as unavailable.
func (s *service) Share(ctx context.Context, input *ShareInput) (*ShareOutput, error) {
	if input == nil || input.MessageID == "" {
		return nil, hofRepo.ErrMissingMessageID
	}

	entry, err := s.repo.Get(ctx, &hofRepo.GetInput{MessageID: input.MessageID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get hall of fame entry %s", input.MessageID)
	}

	out := &ShareOutput{
		Entry:   entry,
		Content: entry.Content,
	}
	urls := entry.ImageURLs

	live, err := s.fetcher.FetchMessage(ctx, entry.ChannelID, entry.MessageID)
	if err != nil {
		log().WithError(err).WithField("message_id", entry.MessageID).Info("live message unavailable, sharing stored copy")
	} else if live != nil && (live.Content != "" || len(live.Attachments) > 0) {
		out.Live = true
		out.Content = live.Content
		urls = live.Attachments
	}

	var linked []string
	out.Content, linked = extractImageLinks(out.Content)
	urls = dedupe(append(append([]string{}, urls...), linked...))

	for _, u := range urls {
		if len(out.Images) == MaxShareImages {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := s.downloader.Download(ctx, u)
		if err != nil {
			out.Skipped++
			log().WithError(err).WithField("url", u).Warn("skipping image")
			continue
		}
		out.Images = append(out.Images, img)
	}

	return out, nil
}

var imageExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".webp": {},
}

// extractImageLinks removes image links from text and returns them
func extractImageLinks(text string) (string, []string) {
	var links []string
	stripped := xurls.Strict.ReplaceAllStringFunc(text, func(u string) string {
		if !isImageURL(u) {
			return u
		}
		links = append(links, u)
		return ""
	})
	return strings.TrimSpace(stripped), links
}

func isImageURL(u string) bool {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	_, ok := imageExtensions[strings.ToLower(path.Ext(u))]
	return ok
}

func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok || u == "" {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
