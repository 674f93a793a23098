package model

import "time"

// GenerationRecord describes one generation batch requested by a user.
// It never carries the generated passwords.
type GenerationRecord struct {
	ID             int64
	BatchID        string
	UserID         int64
	Length         int
	Count          int
	NoSpecial      bool
	CustomSpecials bool
	CreatedAt      time.Time
}

// GenerationRecordResponse is the API view of a GenerationRecord.
type GenerationRecordResponse struct {
	BatchID        string    `json:"batch_id"`
	Length         int       `json:"length"`
	Count          int       `json:"count"`
	NoSpecial      bool      `json:"nospecial"`
	CustomSpecials bool      `json:"custom_specials"`
	CreatedAt      time.Time `json:"created_at"`
}
