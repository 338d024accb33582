package models

import "time"

// WorkRule is the salon-wide operating window for a weekday (0=Mon … 6=Sun).
// No row for a weekday means the salon is closed that day.
type WorkRule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Weekday int `gorm:"uniqueIndex;not null" json:"weekday"`

	StartTime   string `gorm:"size:5;not null" json:"start_time"`
	EndTime     string `gorm:"size:5;not null" json:"end_time"`
	SlotStepMin int    `gorm:"not null" json:"slot_step_min"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MasterWorkRule fully supersedes the salon rule for that weekday when the
// master's personal schedule is enabled. No merging.
type MasterWorkRule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MasterID uint `gorm:"uniqueIndex:idx_master_weekday;not null" json:"master_id"`
	Weekday  int  `gorm:"uniqueIndex:idx_master_weekday;not null" json:"weekday"`

	StartTime   string `gorm:"size:5;not null" json:"start_time"`
	EndTime     string `gorm:"size:5;not null" json:"end_time"`
	SlotStepMin int    `gorm:"not null" json:"slot_step_min"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
