package hall_of_fame

import "github.com/KirkDiggler/dejavu/internal/models"

// PinInput contains the entry to pin; Entry.MessageID is required
type PinInput struct {
	Entry *models.HallOfFameEntry
}

// PinOutput reports whether a new entry was created
type PinOutput struct {
	Pinned bool
	Entry  *models.HallOfFameEntry
}

// UnpinInput contains parameters for removing an entry
type UnpinInput struct {
	MessageID string
}

// UnpinOutput reports whether an entry was removed
type UnpinOutput struct {
	Removed bool
}

// ListOutput contains all entries in display order
type ListOutput struct {
	Entries []*models.HallOfFameEntry
}

// ListPageInput selects a page. Page is zero-based.
type ListPageInput struct {
	Page int
	Size int
}

// ListPageOutput contains one page and the paging totals
type ListPageOutput struct {
	Entries    []*models.HallOfFameEntry
	Page       int
	TotalPages int
	Total      int
}

// GetInput contains parameters for reading one entry
type GetInput struct {
	MessageID string
}
