package models

import "time"

// Break is a recurring salon-wide unavailability window inside a weekday.
type Break struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Weekday   int    `gorm:"index;not null" json:"weekday"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
}

// MasterBreak: if a master has any personal breaks for a weekday, those are
// used instead of the salon breaks (presence check, not a merge).
type MasterBreak struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MasterID  uint   `gorm:"index:idx_master_break;not null" json:"master_id"`
	Weekday   int    `gorm:"index:idx_master_break;not null" json:"weekday"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
}
