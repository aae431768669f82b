package models

import "time"

// UserLead is the identity captured by the signup form before a save or a
// download is allowed.
type UserLead struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	PropertyAddress string `json:"propertyAddress,omitempty"`
	Timestamp       int64  `json:"timestamp"`
}

// Lead is the persisted lead row. LatestDesignID points at the most recent
// design saved by that lead.
type Lead struct {
	ID              uint   `gorm:"primaryKey"`
	Email           string `gorm:"size:320;not null;uniqueIndex"`
	Name            string `gorm:"size:120;not null"`
	Phone           string `gorm:"size:64"`
	PropertyAddress string `gorm:"size:512"`
	LatestDesignID  string `gorm:"size:64"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
