package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Identity struct {
	ID               uuid.UUID              `gorm:"type:uuid;primaryKey"`
	Email            string                 `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash     string                 `gorm:"type:varchar(255)"`
	EmailConfirmedAt *time.Time             `gorm:"type:timestamp"`
	Metadata         map[string]interface{} `gorm:"type:text;serializer:json"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Identity) TableName() string {
	return "identities"
}

func (m *Identity) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}

// UserRole holds the complete role set of one identity
type UserRole struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Roles     []string  `gorm:"type:text;serializer:json"`
	UpdatedAt time.Time
}

func (UserRole) TableName() string {
	return "user_roles"
}
