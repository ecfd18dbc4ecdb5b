package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatMessage is a shared-room chat line. Like posts, the author fields are
// frozen at creation.
type ChatMessage struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CommunityID string         `gorm:"size:50;not null;index" json:"-"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"uid"`
	Email       string         `gorm:"size:255;not null" json:"email"`
	Message     string         `gorm:"type:text;not null" json:"msg"`
	CreatedAt   time.Time      `json:"timestamp"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *ChatMessage) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
