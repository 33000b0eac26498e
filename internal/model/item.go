package model

import "time"

// Priority ranks how urgent a task is.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	default:
		return "normal"
	}
}

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// Item represents a single task in the planner.
type Item struct {
	ID          string   `gorm:"primaryKey" json:"id"`
	Title       string   `json:"title"`
	IsCompleted bool     `gorm:"default:false" json:"is_completed"`
	Priority    Priority `json:"priority"`
	// SortOrder is the manual position within the full item list; kept
	// contiguous (0..N-1) across create, delete and reorder.
	SortOrder  int        `gorm:"index" json:"sort_order"`
	Tags       []string   `gorm:"serializer:json" json:"tags"`
	StartTime  *time.Time `gorm:"index" json:"start_time,omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	CategoryID *string    `gorm:"index" json:"category_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// HasTag reports whether tag is already attached (case-sensitive).
func (i *Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
