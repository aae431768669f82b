package models

import "time"

// Blob is one entry of the key/value store backing the portfolio, the draft
// slot and the user record.
type Blob struct {
	Key       string `gorm:"column:blob_key;primaryKey;size:128"`
	Value     []byte `gorm:"type:blob"`
	UpdatedAt time.Time
}
