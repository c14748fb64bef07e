package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogPost struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title            string     `gorm:"type:varchar(300);not null"`
	Slug             string     `gorm:"type:varchar(300);index"`
	Excerpt          string     `gorm:"type:text"`
	Content          string     `gorm:"type:text"`
	Author           string     `gorm:"type:varchar(200)"`
	FeaturedImageURL string     `gorm:"type:text"`
	Tags             []string   `gorm:"type:text;serializer:json"`
	IsPublished      bool       `gorm:"not null;index"`
	PublishedAt      *time.Time `gorm:"type:timestamp"`
	CreatedAt        time.Time  `gorm:"index"`
	UpdatedAt        time.Time
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

func (m *BlogPost) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}
