package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status literals as the admin console writes them. The mixed casing is the
// wire format the dashboards key their badges on.
const (
	RequestStatusPending   = "pending"
	RequestStatusApproved  = "Approved"
	RequestStatusCompleted = "Completed"
)

func ValidRequestStatus(s string) bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusCompleted:
		return true
	}
	return false
}

// ServiceRequest is a user-filed request handled by admins. Creation always
// starts at pending; status changes are admin-only.
type ServiceRequest struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CommunityID string         `gorm:"size:50;not null;index" json:"-"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"uid"`
	Type        string         `gorm:"size:120;not null" json:"type"`
	Description string         `gorm:"type:text;not null" json:"desc"`
	Status      string         `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time      `json:"timestamp"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *ServiceRequest) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = RequestStatusPending
	}
	return nil
}
