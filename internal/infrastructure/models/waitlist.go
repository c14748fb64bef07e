package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WaitlistEntry struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email      string     `gorm:"type:varchar(255);not null;index"`
	Name       string     `gorm:"type:varchar(200)"`
	Status     string     `gorm:"type:varchar(20);not null;index"`
	Source     string     `gorm:"type:varchar(100)"`
	Wishlist   []string   `gorm:"type:text;serializer:json"`
	Notes      string     `gorm:"type:text"`
	CreatedAt  time.Time  `gorm:"index"`
	ApprovedAt *time.Time `gorm:"type:timestamp"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist"
}

func (m *WaitlistEntry) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}
