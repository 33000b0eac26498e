package model

import "time"

// User stores login credentials. Emails are stored lower-cased and the
// password only as a bcrypt hash.
type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
