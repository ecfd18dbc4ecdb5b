package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a user record can carry. Exactly one role value governs every admin
// capability check; there is no finer-grained permission set.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is both the identity record and the profile record. The primary key
// serializes as `uid`; JSON names follow the wire format the dashboards expect.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"uid"`
	CommunityID string         `gorm:"size:50;not null;uniqueIndex:idx_users_community_email" json:"-"`
	Email       string         `gorm:"not null;size:255;uniqueIndex:idx_users_community_email" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	Name        string         `gorm:"size:120" json:"name"`
	Phone       string         `gorm:"size:40" json:"phone,omitempty"`
	Avatar      string         `gorm:"size:500" json:"avatar,omitempty"`
	Role        string         `gorm:"size:20;default:'user'" json:"role"`
	IsBanned    bool           `gorm:"default:false" json:"isBanned"`
	JoinedAt    time.Time      `json:"joinedAt"`
	CreatedAt   time.Time      `json:"-"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.JoinedAt.IsZero() {
		u.JoinedAt = time.Now().UTC()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicProfile is the shape exposed by the public user listing: no ban
// state, no phone, nothing an anonymous caller has business seeing.
type PublicProfile struct {
	ID     uuid.UUID `json:"uid"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar,omitempty"`
	Role   string    `json:"role"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Avatar: u.Avatar,
		Role:   u.Role,
	}
}
