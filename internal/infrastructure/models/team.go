package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamMember struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(200);not null"`
	Role         string    `gorm:"type:varchar(200)"`
	Category     string    `gorm:"type:varchar(20);not null"`
	ImageURL     string    `gorm:"type:text"`
	LinkedInURL  string    `gorm:"column:linkedin_url;type:text"`
	TwitterURL   string    `gorm:"type:text"`
	InstagramURL string    `gorm:"type:text"`
	DisplayOrder int       `gorm:"not null;default:0;index"`
	IsActive     bool      `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (TeamMember) TableName() string {
	return "team_members"
}

func (m *TeamMember) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}
