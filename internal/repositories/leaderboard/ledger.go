package leaderboard

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/dejavu/internal/models"
	"github.com/KirkDiggler/dejavu/internal/repositories/store"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	// ErrPlayerNotFound is returned when a player has no entry
	ErrPlayerNotFound = errors.New("player not found")

	// ErrUnknownGameKind is returned when scores are recorded for an unknown game
	ErrUnknownGameKind = errors.New("unknown game kind")
)

// Config holds configuration for the store-backed ledger
type Config struct {
	// Store persists the ledger document
	Store store.Store
}

// ledger implements the Repository interface over a single persisted document
type ledger struct {
	store store.Store

	mu      sync.Mutex
	entries map[string]*models.LeaderboardEntry
}

// New creates the ledger and loads the persisted state. A missing or
// corrupt document starts an empty ledger.
func New(ctx context.Context, cfg *Config) (*ledger, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Store == nil {
		return nil, errors.New("store cannot be nil")
	}

	entries := store.LoadOrDefault(ctx, cfg.Store, store.KeyLeaderboard, map[string]*models.LeaderboardEntry{})
	if entries == nil {
		entries = map[string]*models.LeaderboardEntry{}
	}
	for id, entry := range entries {
		if entry == nil {
			delete(entries, id)
			continue
		}
		entry.PlayerID = id
	}

	return &ledger{
		store:   cfg.Store,
		entries: entries,
	}, nil
}

// RecordGame adds every player's score to their total and kind counter,
// then saves the whole ledger. An empty score map is a no-op. A failed
// save is logged and does not fail the call.
func (l *ledger) RecordGame(ctx context.Context, input *RecordGameInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	if input.Kind != models.GameKindWhoSaid && input.Kind != models.GameKindWordYapper {
		return errors.Wrapf(ErrUnknownGameKind, "kind %q", input.Kind)
	}

	if len(input.Scores) == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for playerID, points := range input.Scores {
		entry, ok := l.entries[playerID]
		if !ok {
			entry = &models.LeaderboardEntry{PlayerID: playerID}
			l.entries[playerID] = entry
		}
		if name := input.Names[playerID]; name != "" {
			entry.Name = name
		}
		entry.Add(input.Kind, points)
	}

	// The in-memory ledger stays authoritative if the save fails
	if err := l.store.Save(ctx, store.KeyLeaderboard, l.entries); err != nil {
		log().WithError(err).WithField("kind", input.Kind).Error("failed to persist leaderboard")
	}

	return nil
}

// GetTop returns entries sorted by total, highest first. Equal totals are
// ordered by player id so the ranking is stable across restarts.
func (l *ledger) GetTop(ctx context.Context, input *GetTopInput) (*GetTopOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	l.mu.Lock()
	entries := make([]*models.LeaderboardEntry, 0, len(l.entries))
	for _, entry := range l.entries {
		copied := *entry
		entries = append(entries, &copied)
	}
	l.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})

	if input.Limit > 0 && len(entries) > input.Limit {
		entries = entries[:input.Limit]
	}

	return &GetTopOutput{
		Entries: entries,
	}, nil
}

// GetEntry returns a copy of one player's entry
func (l *ledger) GetEntry(ctx context.Context, input *GetEntryInput) (*models.LeaderboardEntry, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[input.PlayerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	copied := *entry
	return &copied, nil
}

func log() *logrus.Entry {
	return logrus.WithField("module", "leaderboard")
}
