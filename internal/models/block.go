package models

import "time"

// Block is an ad-hoc unavailability window for a single date. A nil
// MasterID makes it global: global and master blocks are applied together,
// not one instead of the other.
type Block struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MasterID *uint `gorm:"index" json:"master_id"`

	Date      string `gorm:"size:10;index;not null" json:"date"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	Reason    string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
