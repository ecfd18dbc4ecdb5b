package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/authz"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/community"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/models"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/realtime"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type ChatService struct {
	db         *gorm.DB
	moderation *ModerationService
	publisher  realtime.Publisher
}

func NewChatService(db *gorm.DB, moderation *ModerationService, publisher realtime.Publisher) *ChatService {
	return &ChatService{db: db, moderation: moderation, publisher: publisher}
}

// ListMessages returns the shared room in timestamp order, oldest first.
func (s *ChatService) ListMessages(communityID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := s.db.Scopes(community.Scoped(communityID)).Find(&messages).Error; err != nil {
		return nil, err
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (s *ChatService) CreateMessage(communityID string, viewer *models.User, text string) (*models.ChatMessage, error) {
	if err := authz.Authorize(viewer, authz.ActionCreateChat, nil); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyContent
	}
	if ok, reason := s.moderation.FilterContent(text); !ok {
		return nil, fmt.Errorf("%w: %s", ErrContentRejected, s.moderation.GetRejectionMessage(reason))
	}

	msg := models.ChatMessage{
		CommunityID: communityID,
		UserID:      viewer.ID,
		Email:       viewer.Email,
		Message:     text,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if s.publisher != nil {
		s.publisher.Publish(communityID, realtime.Event{Type: realtime.EventChatCreated, Data: msg})
	}
	return &msg, nil
}

// DeleteMessage removes a chat line. Admin only; authors cannot retract.
func (s *ChatService) DeleteMessage(communityID string, viewer *models.User, messageID uuid.UUID) error {
	if err := authz.Authorize(viewer, authz.ActionDeleteChat, nil); err != nil {
		return err
	}

	var msg models.ChatMessage
	if err := s.db.Scopes(community.Scoped(communityID)).First(&msg, "id = ?", messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return err
	}

	if err := s.db.Delete(&msg).Error; err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	if s.publisher != nil {
		s.publisher.Publish(communityID, realtime.Event{Type: realtime.EventChatDeleted, Data: msg})
	}
	return nil
}
