package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title              string `gorm:"size:100;not null" json:"title"`
	DefaultDurationMin int    `gorm:"not null" json:"default_duration_min"`
	DefaultPriceText   string `gorm:"size:100" json:"default_price_text"`
	IsActive           bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MasterService is a per-master override of a service's defaults.
// Null DurationMin/PriceText fall back to the service values; an
// inactive row removes the pair from offered listings entirely.
type MasterService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MasterID  uint `gorm:"uniqueIndex:idx_master_service;not null" json:"master_id"`
	ServiceID uint `gorm:"uniqueIndex:idx_master_service;not null" json:"service_id"`

	DurationMin *int    `json:"duration_min"`
	PriceText   *string `gorm:"size:100" json:"price_text"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
