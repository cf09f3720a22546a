package model

import (
	"time"
)

// FetchRecord is one entry of the local fetch history.
type FetchRecord struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Endpoint   string    `json:"endpoint"`
	Status     string    `json:"status"` // "ok" or the flattened error message
	ItemCount  int       `json:"item_count"`
	DurationMs int64     `json:"duration_ms"`
}

// Ok reports whether the fetch succeeded.
func (r FetchRecord) Ok() bool {
	return r.Status == "ok"
}

// Favorite is a locally pinned character. The name is denormalized so
// favorites stay listable after the catalog cache is replaced.
type Favorite struct {
	CharacterID string    `json:"character_id"`
	Name        string    `json:"name"`
	AddedAt     time.Time `json:"added_at"`
}
