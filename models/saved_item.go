package models

import "time"

// ItemType is the kind of content a [SavedItem] points to.
type ItemType string

const (
	// ItemTypeVideo marks a saved video.
	ItemTypeVideo ItemType = "video"
	// ItemTypeSound marks a saved sound.
	ItemTypeSound ItemType = "sound"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	return t == ItemTypeVideo || t == ItemTypeSound
}

// SavedItem records that an account saved a content item for later.
// At most one SavedItem exists per (UserID, ItemID) pair.
type SavedItem struct {
	ID      string    `json:"id"`
	Type    ItemType  `json:"type"`
	ItemID  string    `json:"itemId"`
	UserID  string    `json:"userId"`
	SavedAt time.Time `json:"savedAt"`
}
