package models

import (
	"time"
)

// DefaultWordCacheTTL is the default validity of a word cache
const DefaultWordCacheTTL = 3600 * time.Second

// WordCache maps normalized words to speaker occurrence counts
type WordCache struct {
	// Data maps word -> speaker id -> count; counts are always >= 1
	Data map[string]map[string]int `json:"data"`

	// LastUpdate is the epoch seconds of the last full rebuild
	LastUpdate int64 `json:"last_update"`

	// CacheDuration is the validity in seconds
	CacheDuration int64 `json:"cache_duration"`

	// ChannelID is the channel the cache was built from
	ChannelID string `json:"channel_id,omitempty"`

	// Names maps speaker id -> display name
	Names map[string]string `json:"names,omitempty"`
}

// NewWordCache returns an empty cache that is immediately stale
func NewWordCache() *WordCache {
	return &WordCache{
		Data:          map[string]map[string]int{},
		CacheDuration: int64(DefaultWordCacheTTL / time.Second),
		Names:         map[string]string{},
	}
}
