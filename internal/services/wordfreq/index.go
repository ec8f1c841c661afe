package wordfreq

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/dejavu/internal/common/clock"
	"github.com/KirkDiggler/dejavu/internal/common/metrics"
	"github.com/KirkDiggler/dejavu/internal/common/random"
	"github.com/KirkDiggler/dejavu/internal/models"
	"github.com/KirkDiggler/dejavu/internal/repositories/history"
	"github.com/KirkDiggler/dejavu/internal/repositories/store"
	"github.com/KirkDiggler/dejavu/internal/services/lexicon"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultHistoryLimit caps how many messages a rebuild scans
const DefaultHistoryLimit = 10000

var (
	// ErrNoCandidates is returned when no word passes the filters
	ErrNoCandidates = errors.New("no candidate words")

	// ErrMissingChannel is returned when a rebuild has no channel
	ErrMissingChannel = errors.New("channel ID is required")
)

// Config holds configuration for the index
type Config struct {
	Store   store.Store
	History history.Source
	Random  random.Source

	// Lexicon defaults to accepting every token
	Lexicon lexicon.Lexicon

	// Clock defaults to the system clock
	Clock clock.Clock

	// TTL defaults to models.DefaultWordCacheTTL
	TTL time.Duration

	// HistoryLimit defaults to DefaultHistoryLimit
	HistoryLimit int
}

// service implements the Index interface
type service struct {
	store        store.Store
	history      history.Source
	lexicon      lexicon.Lexicon
	random       random.Source
	clock        clock.Clock
	ttl          time.Duration
	historyLimit int

	// rebuildMu serializes rebuilds; mu guards cache
	rebuildMu sync.Mutex
	mu        sync.RWMutex
	cache     *models.WordCache
}

// New creates the index and loads the persisted cache
func New(ctx context.Context, cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Store == nil {
		return nil, errors.New("store cannot be nil")
	}

	if cfg.History == nil {
		return nil, errors.New("history source cannot be nil")
	}

	if cfg.Random == nil {
		return nil, errors.New("random source cannot be nil")
	}

	s := &service{
		store:        cfg.Store,
		history:      cfg.History,
		lexicon:      cfg.Lexicon,
		random:       cfg.Random,
		clock:        cfg.Clock,
		ttl:          cfg.TTL,
		historyLimit: cfg.HistoryLimit,
	}
	if s.lexicon == nil {
		s.lexicon = lexicon.AcceptAll{}
	}
	if s.clock == nil {
		s.clock = &clock.DefaultClock{}
	}
	if s.ttl <= 0 {
		s.ttl = models.DefaultWordCacheTTL
	}
	if s.historyLimit <= 0 {
		s.historyLimit = DefaultHistoryLimit
	}

	s.cache = sanitize(store.LoadOrDefault(ctx, s.store, store.KeyWordCache, models.NewWordCache()))

	return s, nil
}

// IsStale reports whether more than the TTL has passed since the last rebuild
func (s *service) IsStale(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isStaleLocked(now)
}

func (s *service) isStaleLocked(now time.Time) bool {
	return now.Unix()-s.cache.LastUpdate > int64(s.ttl/time.Second)
}

// Rebuild scans the channel history into a new cache and swaps it in.
// A failed or cancelled scan leaves the current cache untouched.
// Game rebuilds leave ExcludedSpeaker empty and exclude the mercy user in SelectTopic,
// so one cache serves games with and without mercy mode.
func (s *service) Rebuild(ctx context.Context, input *RebuildInput) (*RebuildOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, ErrMissingChannel
	}

	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	return s.rebuild(ctx, input)
}

// rebuild must be called with rebuildMu held
func (s *service) rebuild(ctx context.Context, input *RebuildInput) (*RebuildOutput, error) {
	started := time.Now()
	data := make(map[string]map[string]int)
	names := make(map[string]string)
	messages := 0

	err := s.history.Walk(ctx, input.ChannelID, s.historyLimit, func(msg *models.Message) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if msg.IsBot || msg.AuthorID == "" || msg.AuthorID == input.ExcludedSpeaker {
			return nil
		}

		messages++
		if _, ok := names[msg.AuthorID]; !ok && msg.AuthorName != "" {
			names[msg.AuthorID] = msg.AuthorName
		}

		for _, word := range Tokenize(msg.Content) {
			speakers, ok := data[word]
			if !ok {
				speakers = make(map[string]int)
				data[word] = speakers
			}
			speakers[msg.AuthorID]++
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan history for channel %s", input.ChannelID)
	}

	cache := &models.WordCache{
		Data:          data,
		LastUpdate:    s.clock.Now().Unix(),
		CacheDuration: int64(s.ttl / time.Second),
		ChannelID:     input.ChannelID,
		Names:         names,
	}

	s.mu.Lock()
	s.cache = cache
	s.mu.Unlock()

	if err := s.store.Save(ctx, store.KeyWordCache, cache); err != nil {
		log().WithError(err).WithField("channel_id", input.ChannelID).Error("failed to persist word cache")
	}

	metrics.CacheRebuilt(time.Since(started))
	log().WithFields(logrus.Fields{
		"channel_id": input.ChannelID,
		"messages":   messages,
		"words":      len(data),
	}).Info("rebuilt word cache")

	return &RebuildOutput{
		Messages: messages,
		Words:    len(data),
	}, nil
}

// EnsureFresh rebuilds when the cache is stale or was built for a
// different channel
func (s *service) EnsureFresh(ctx context.Context, input *EnsureFreshInput) (*EnsureFreshOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, ErrMissingChannel
	}

	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	if !s.needsRebuild(input.ChannelID) {
		return &EnsureFreshOutput{Rebuilt: false}, nil
	}

	if _, err := s.rebuild(ctx, &RebuildInput{ChannelID: input.ChannelID}); err != nil {
		return nil, err
	}

	return &EnsureFreshOutput{Rebuilt: true}, nil
}

func (s *service) needsRebuild(channelID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isStaleLocked(s.clock.Now()) || s.cache.ChannelID != channelID
}

// SelectTopic picks a word uniformly among the eligible candidates and
// returns it with its top speaker. Candidates are sorted before the pick
// and ties between speakers go to the lowest speaker id.
func (s *service) SelectTopic(ctx context.Context, input *SelectTopicInput) (*Topic, error) {
	if input == nil {
		input = &SelectTopicInput{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := s.candidates(input, 2, true)
	relaxed := false
	if len(candidates) == 0 && input.Relax {
		candidates = s.candidates(input, 1, false)
		relaxed = true
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	sort.Strings(candidates)
	word := candidates[s.random.Intn(len(candidates))]
	speaker, count := topSpeaker(s.cache.Data[word], input.ExcludeSpeaker)

	return &Topic{
		Word:        word,
		Speaker:     speaker,
		SpeakerName: s.cache.Names[speaker],
		Count:       count,
		Relaxed:     relaxed,
	}, nil
}

// candidates must be called with mu held
func (s *service) candidates(input *SelectTopicInput, minLen int, useLexicon bool) []string {
	var out []string
	for word, speakers := range s.cache.Data {
		if len([]rune(word)) <= minLen {
			continue
		}
		if IsStopword(word) || isNumeric(word) {
			continue
		}
		if _, used := input.Exclude[word]; used {
			continue
		}
		if speaker, _ := topSpeaker(speakers, input.ExcludeSpeaker); speaker == "" {
			continue
		}
		if useLexicon && !s.lexicon.IsWord(word) {
			continue
		}
		out = append(out, word)
	}
	return out
}

// topSpeaker returns the speaker with the highest count, lowest id on ties
func topSpeaker(speakers map[string]int, exclude string) (string, int) {
	ids := make([]string, 0, len(speakers))
	for id := range speakers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	best, bestCount := "", 0
	for _, id := range ids {
		if id == exclude {
			continue
		}
		if count := speakers[id]; count > bestCount {
			best, bestCount = id, count
		}
	}
	return best, bestCount
}

// Snapshot returns a deep copy of the current cache
func (s *service) Snapshot() *models.WordCache {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := *s.cache
	c.Data = make(map[string]map[string]int, len(s.cache.Data))
	for word, speakers := range s.cache.Data {
		copied := make(map[string]int, len(speakers))
		for id, n := range speakers {
			copied[id] = n
		}
		c.Data[word] = copied
	}
	c.Names = make(map[string]string, len(s.cache.Names))
	for id, name := range s.cache.Names {
		c.Names[id] = name
	}
	return &c
}

// sanitize drops non-positive counts from a loaded cache
func sanitize(c *models.WordCache) *models.WordCache {
	if c == nil {
		return models.NewWordCache()
	}
	if c.Data == nil {
		c.Data = map[string]map[string]int{}
	}
	if c.Names == nil {
		c.Names = map[string]string{}
	}
	for word, speakers := range c.Data {
		for id, n := range speakers {
			if n < 1 {
				delete(speakers, id)
			}
		}
		if len(speakers) == 0 {
			delete(c.Data, word)
		}
	}
	return c
}

func log() *logrus.Entry {
	return logrus.WithField("module", "wordfreq")
}
