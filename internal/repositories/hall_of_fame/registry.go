package hall_of_fame

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/dejavu/internal/common/clock"
	"github.com/KirkDiggler/dejavu/internal/common/metrics"
	"github.com/KirkDiggler/dejavu/internal/models"
	"github.com/KirkDiggler/dejavu/internal/repositories/store"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultPageSize is used when ListPage is called without a size
const DefaultPageSize = 5

var (
	// ErrEntryNotFound is returned when no entry exists for a message
	ErrEntryNotFound = errors.New("hall of fame entry not found")

	// ErrMissingMessageID is returned when an entry has no message id
	ErrMissingMessageID = errors.New("message ID is required")
)

// Config holds configuration for the registry
type Config struct {
	// Store persists the hall of fame document
	Store store.Store

	// Clock stamps PinnedAt when the caller leaves it empty
	Clock clock.Clock
}

type registry struct {
	store store.Store
	clock clock.Clock

	mu      sync.Mutex
	entries map[string]*models.HallOfFameEntry
}

// New creates the registry and loads the persisted entries
func New(ctx context.Context, cfg *Config) (*registry, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Store == nil {
		return nil, errors.New("store cannot be nil")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	entries := store.LoadOrDefault(ctx, cfg.Store, store.KeyHallOfFame, map[string]*models.HallOfFameEntry{})
	if entries == nil {
		entries = map[string]*models.HallOfFameEntry{}
	}
	for id, entry := range entries {
		if entry == nil {
			delete(entries, id)
			continue
		}
		entry.MessageID = id
	}

	return &registry{
		store:   cfg.Store,
		clock:   clk,
		entries: entries,
	}, nil
}

// Pin inserts the entry and persists the registry. Pinning a message that
// is already present changes nothing and reports Pinned false.
func (r *registry) Pin(ctx context.Context, input *PinInput) (*PinOutput, error) {
	if input == nil || input.Entry == nil {
		return nil, errors.New("input and entry cannot be nil")
	}

	if input.Entry.MessageID == "" {
		return nil, ErrMissingMessageID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[input.Entry.MessageID]; ok {
		return &PinOutput{
			Pinned: false,
			Entry:  cloneEntry(existing),
		}, nil
	}

	entry := cloneEntry(input.Entry)
	entry.Content = models.TruncateContent(entry.Content)
	if entry.PinnedAt.IsZero() {
		entry.PinnedAt = r.clock.Now()
	}
	if entry.PinType == "" {
		entry.PinType = models.PinTypeMessage
	}
	r.entries[entry.MessageID] = entry
	r.persist(ctx, "pin", entry.MessageID)

	return &PinOutput{
		Pinned: true,
		Entry:  cloneEntry(entry),
	}, nil
}

// Unpin removes the entry for a message. Unpinning an absent message is
// a no-op and does not touch the store.
func (r *registry) Unpin(ctx context.Context, input *UnpinInput) (*UnpinOutput, error) {
	if input == nil || input.MessageID == "" {
		return nil, ErrMissingMessageID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[input.MessageID]; !ok {
		return &UnpinOutput{Removed: false}, nil
	}

	delete(r.entries, input.MessageID)
	r.persist(ctx, "unpin", input.MessageID)

	return &UnpinOutput{Removed: true}, nil
}

// List returns entries by PinnedAt, newest first, ties by message id
func (r *registry) List(ctx context.Context) (*ListOutput, error) {
	r.mu.Lock()
	entries := make([]*models.HallOfFameEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		entries = append(entries, cloneEntry(entry))
	}
	r.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].PinnedAt.Equal(entries[j].PinnedAt) {
			return entries[i].PinnedAt.After(entries[j].PinnedAt)
		}
		return entries[i].MessageID < entries[j].MessageID
	})

	return &ListOutput{
		Entries: entries,
	}, nil
}

// ListPage returns one page of the ordered list. Out of range pages are
// clamped to the nearest valid page.
func (r *registry) ListPage(ctx context.Context, input *ListPageInput) (*ListPageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	size := input.Size
	if size <= 0 {
		size = DefaultPageSize
	}

	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	total := len(all.Entries)
	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		return &ListPageOutput{
			Entries: []*models.HallOfFameEntry{},
		}, nil
	}

	page := input.Page
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	start := page * size
	end := start + size
	if end > total {
		end = total
	}

	return &ListPageOutput{
		Entries:    all.Entries[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

// Get returns a copy of the entry for a message
func (r *registry) Get(ctx context.Context, input *GetInput) (*models.HallOfFameEntry, error) {
	if input == nil || input.MessageID == "" {
		return nil, ErrMissingMessageID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[input.MessageID]
	if !ok {
		return nil, ErrEntryNotFound
	}
	return cloneEntry(entry), nil
}

// persist must be called with the lock held
func (r *registry) persist(ctx context.Context, action, messageID string) {
	metrics.HallOfFame(action)
	if err := r.store.Save(ctx, store.KeyHallOfFame, r.entries); err != nil {
		log().WithError(err).WithFields(logrus.Fields{
			"action":     action,
			"message_id": messageID,
		}).Error("failed to persist hall of fame")
	}
}

func cloneEntry(e *models.HallOfFameEntry) *models.HallOfFameEntry {
	c := *e
	if e.ImageURLs != nil {
		c.ImageURLs = append([]string(nil), e.ImageURLs...)
	}
	return &c
}

func log() *logrus.Entry {
	return logrus.WithField("module", "hall_of_fame")
}
