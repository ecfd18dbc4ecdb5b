package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a feed entry. Author uid and email are denormalized at creation
// time and never refreshed, even if the author later changes their email.
type Post struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CommunityID string         `gorm:"size:50;not null;index" json:"-"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"uid"`
	Email       string         `gorm:"size:255;not null" json:"email"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	CreatedAt   time.Time      `json:"timestamp"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
