package models

import "time"

type Master struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"user"`

	DisplayName string `gorm:"size:100;not null" json:"display_name"`

	// Deactivation is a soft flag: masters referenced by appointments
	// are never deleted.
	IsActive bool `gorm:"default:true" json:"is_active"`

	// When true the master's own work rules and breaks supersede the
	// salon-wide schedule.
	AllowPersonalSchedule bool `gorm:"default:false" json:"allow_personal_schedule"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
