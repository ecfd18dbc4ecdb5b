package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/authz"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/community"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/models"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/realtime"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidRole = errors.New("invalid role")

type UserService struct {
	db        *gorm.DB
	publisher realtime.Publisher
}

func NewUserService(db *gorm.DB, publisher realtime.Publisher) *UserService {
	return &UserService{db: db, publisher: publisher}
}

// ListPublic returns profile cards for the member directory.
func (s *UserService) ListPublic(communityID string) ([]models.PublicProfile, error) {
	var users []models.User
	if err := s.db.Scopes(community.Scoped(communityID)).Order("joined_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	profiles := make([]models.PublicProfile, len(users))
	for i := range users {
		profiles[i] = users[i].Public()
	}
	return profiles, nil
}

// ListAll returns full user records for the admin roster.
func (s *UserService) ListAll(communityID string, viewer *models.User) ([]models.User, error) {
	if err := authz.Authorize(viewer, authz.ActionViewAdmin, nil); err != nil {
		return nil, err
	}
	var users []models.User
	err := s.db.Scopes(community.Scoped(communityID)).Order("joined_at ASC").Find(&users).Error
	return users, err
}

// UpdateProfile edits the viewer's own record. Only name, avatar, and phone
// are self-editable; email, role, and ban state are not.
func (s *UserService) UpdateProfile(communityID string, viewer *models.User, req *dto.UpdateProfileRequest) (*models.User, error) {
	if err := authz.Authorize(viewer, authz.ActionUpdateProfile, &authz.Target{OwnerID: viewer.ID}); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if len(updates) == 0 {
		return viewer, nil
	}

	if err := s.db.Model(&models.User{}).
		Scopes(community.Scoped(communityID)).
		Where("id = ?", viewer.ID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	var updated models.User
	if err := s.db.Scopes(community.Scoped(communityID)).First(&updated, "id = ?", viewer.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetRole promotes or demotes a user. Admin only.
func (s *UserService) SetRole(communityID string, viewer *models.User, targetID uuid.UUID, role string) (*models.User, error) {
	if err := authz.Authorize(viewer, authz.ActionManageUsers, nil); err != nil {
		return nil, err
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}
	return s.updateUserField(communityID, targetID, "role", role)
}

// SetBan flips a user's ban flag. Admin only. Takes effect on the target's
// next request, since the viewer record is loaded per request.
func (s *UserService) SetBan(communityID string, viewer *models.User, targetID uuid.UUID, banned bool) (*models.User, error) {
	if err := authz.Authorize(viewer, authz.ActionManageUsers, nil); err != nil {
		return nil, err
	}
	return s.updateUserField(communityID, targetID, "is_banned", banned)
}

func (s *UserService) updateUserField(communityID string, targetID uuid.UUID, field string, value interface{}) (*models.User, error) {
	var target models.User
	if err := s.db.Scopes(community.Scoped(communityID)).First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&target).Update(field, value).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if err := s.db.Scopes(community.Scoped(communityID)).First(&target, "id = ?", targetID).Error; err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.Publish(communityID, realtime.Event{Type: realtime.EventUserUpdated, Data: target})
	}
	return &target, nil
}
