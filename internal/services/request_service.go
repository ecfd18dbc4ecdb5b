package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/authz"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/community"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/models"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/realtime"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRequestNotFound = errors.New("service request not found")
	ErrInvalidStatus   = errors.New("invalid status")
)

type RequestService struct {
	db        *gorm.DB
	publisher realtime.Publisher
}

func NewRequestService(db *gorm.DB, publisher realtime.Publisher) *RequestService {
	return &RequestService{db: db, publisher: publisher}
}

// Create files a service request for the viewer. Status always starts at
// pending; client-supplied statuses are ignored. The ban flag is not checked
// here: banned members may still request help.
func (s *RequestService) Create(communityID string, viewer *models.User, reqType, desc string) (*models.ServiceRequest, error) {
	if err := authz.Authorize(viewer, authz.ActionCreateRequest, nil); err != nil {
		return nil, err
	}

	reqType = strings.TrimSpace(reqType)
	desc = strings.TrimSpace(desc)
	if reqType == "" || desc == "" {
		return nil, errors.New("type and desc are required")
	}

	request := models.ServiceRequest{
		CommunityID: communityID,
		UserID:      viewer.ID,
		Type:        reqType,
		Description: desc,
		Status:      models.RequestStatusPending,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, fmt.Errorf("failed to create service request: %w", err)
	}

	if s.publisher != nil {
		s.publisher.Publish(communityID, realtime.Event{Type: realtime.EventRequestCreated, Data: request})
	}
	return &request, nil
}

// ListForUser returns the viewer's own requests, newest first.
func (s *RequestService) ListForUser(communityID string, userID uuid.UUID) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := s.db.Scopes(community.Scoped(communityID)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListAll returns every request, optionally filtered by status. Admin view.
func (s *RequestService) ListAll(communityID string, viewer *models.User, status string) ([]models.ServiceRequest, error) {
	if err := authz.Authorize(viewer, authz.ActionViewAdmin, nil); err != nil {
		return nil, err
	}

	query := s.db.Scopes(community.Scoped(communityID))
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.ServiceRequest
	err := query.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// SetStatus moves a request through the admin workflow. The status set is
// validated but transitions are not ordered; the console only ever moves
// forward.
func (s *RequestService) SetStatus(communityID string, viewer *models.User, requestID uuid.UUID, status string) (*models.ServiceRequest, error) {
	if err := authz.Authorize(viewer, authz.ActionSetRequestStatus, nil); err != nil {
		return nil, err
	}
	if !models.ValidRequestStatus(status) {
		return nil, ErrInvalidStatus
	}

	var request models.ServiceRequest
	if err := s.db.Scopes(community.Scoped(communityID)).First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&request).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}
	request.Status = status

	if s.publisher != nil {
		s.publisher.Publish(communityID, realtime.Event{Type: realtime.EventRequestUpdated, Data: request})
	}
	return &request, nil
}
