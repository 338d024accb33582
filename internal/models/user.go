package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleMaster = "master"
	RoleClient = "client"
)

// User is the shared identity record: clients arrive through the chat
// front-end (TgID), staff additionally carry login credentials.
type User struct {
	ID   uint  `gorm:"primaryKey" json:"id"`
	TgID int64 `gorm:"uniqueIndex;not null" json:"tg_id"`

	Username string `gorm:"size:64" json:"username"`
	FullName string `gorm:"size:100" json:"full_name"`
	Phone    string `gorm:"size:20" json:"phone"`

	Email        string `gorm:"size:100;index" json:"email,omitempty"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Role         string `gorm:"size:20;default:'client'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
