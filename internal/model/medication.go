package model

import "time"

// TimeOfDay is a named daily reminder slot mapping to a fixed wall-clock time.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Bedtime   TimeOfDay = "bedtime"
)

// Clock returns the hour and minute the slot fires at, local time.
func (t TimeOfDay) Clock() (hour, minute int) {
	switch t {
	case Morning:
		return 8, 0
	case Afternoon:
		return 13, 0
	case Evening:
		return 18, 0
	case Bedtime:
		return 22, 0
	default:
		return 8, 0
	}
}

// Valid reports whether t is one of the four known slots.
func (t TimeOfDay) Valid() bool {
	switch t {
	case Morning, Afternoon, Evening, Bedtime:
		return true
	}
	return false
}

// Medication frequency labels shown to the user; free-text categorical.
const (
	FrequencyDaily    = "Daily"
	FrequencyWeekly   = "Weekly"
	FrequencyMonthly  = "Monthly"
	FrequencyAsNeeded = "As-needed"
)

// Medication tracks a medication schedule with optional daily reminders
// and a low-stock alert threshold.
type Medication struct {
	ID         string      `gorm:"primaryKey" json:"id"`
	Name       string      `json:"name"`
	Dosage     string      `json:"dosage"`
	Frequency  string      `json:"frequency"`
	StartDate  time.Time   `json:"start_date"`
	EndDate    *time.Time  `json:"end_date,omitempty"`
	Notes      string      `json:"notes"`
	Reminder   bool        `json:"reminder"`
	TimeOfDay  []TimeOfDay `gorm:"serializer:json" json:"time_of_day"`
	Stock      *int        `json:"stock,omitempty"`
	StockAlert *int        `json:"stock_alert,omitempty"`
	IsActive   bool        `json:"is_active"`
	// LowStockNotified remembers that the current low-stock episode has
	// already been announced, so repeat saves don't re-alert.
	LowStockNotified bool      `gorm:"default:false" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// LowStock reports whether the stock has fallen to or under the alert
// threshold. Without both values the condition is meaningless and false.
func (m *Medication) LowStock() bool {
	return m.Stock != nil && m.StockAlert != nil && *m.Stock <= *m.StockAlert
}

// RemindersEnabled reports whether recurring reminders should exist for m.
func (m *Medication) RemindersEnabled() bool {
	return m.Reminder && m.IsActive && len(m.TimeOfDay) > 0
}
