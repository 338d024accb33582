package models

import "time"

// Appointment rows keep the date and intra-day times as strings
// ("2006-01-02" / "15:04") so that interval comparisons stay on
// minute-of-day boundaries and compare correctly in SQL as well.
type Appointment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	ClientID uint `gorm:"index;not null" json:"client_id"`
	Client   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	MasterID uint   `gorm:"index:idx_master_date;not null" json:"master_id"`
	Master   Master `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Date      string `gorm:"size:10;index:idx_master_date;not null" json:"date"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	// Snapshots taken at booking time, independent of later profile edits.
	ClientName  string `gorm:"size:100" json:"client_name"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`

	Status string `gorm:"size:30;default:'pending';index" json:"status"`

	// Only meaningful while Status is reschedule_offered.
	ProposedDate           *string `gorm:"size:10" json:"proposed_date,omitempty"`
	ProposedStartTime      *string `gorm:"size:5" json:"proposed_start_time,omitempty"`
	ProposedEndTime        *string `gorm:"size:5" json:"proposed_end_time,omitempty"`
	StatusBeforeReschedule *string `gorm:"size:30" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
