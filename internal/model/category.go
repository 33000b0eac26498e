package model

import "time"

// DefaultCategoryColor is used when a caller supplies a malformed color.
const DefaultCategoryColor = "#007AFF"

// Category groups tasks under a user-facing label and color.
// Its items are resolved by query, never stored as a relation, so a
// deleted category cannot leave dangling references behind.
type Category struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index" json:"name"`
	Color     string    `json:"color"` // normalized "#RRGGBB"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
