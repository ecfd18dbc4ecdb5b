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

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrEmptyContent    = errors.New("content is required")
	ErrContentRejected = errors.New("content rejected")
)

type FeedService struct {
	db         *gorm.DB
	moderation *ModerationService
	publisher  realtime.Publisher
}

func NewFeedService(db *gorm.DB, moderation *ModerationService, publisher realtime.Publisher) *FeedService {
	return &FeedService{db: db, moderation: moderation, publisher: publisher}
}

// ListPosts returns every post newest-first. Ordering is applied here rather
// than delegated to the store, so the feed renders the same regardless of
// scan order.
func (s *FeedService) ListPosts(communityID string) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.Scopes(community.Scoped(communityID)).Find(&posts).Error; err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

// CreatePost appends a post authored by the viewer. The author's uid and
// email are denormalized onto the record and never refreshed afterwards.
func (s *FeedService) CreatePost(communityID string, viewer *models.User, content string) (*models.Post, error) {
	if err := authz.Authorize(viewer, authz.ActionCreatePost, nil); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if ok, reason := s.moderation.FilterContent(content); !ok {
		return nil, fmt.Errorf("%w: %s", ErrContentRejected, s.moderation.GetRejectionMessage(reason))
	}

	post := models.Post{
		CommunityID: communityID,
		UserID:      viewer.ID,
		Email:       viewer.Email,
		Content:     content,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if s.publisher != nil {
		s.publisher.Publish(communityID, realtime.Event{Type: realtime.EventPostCreated, Data: post})
	}
	return &post, nil
}

// DeletePost removes a post. Allowed for the author or an admin.
func (s *FeedService) DeletePost(communityID string, viewer *models.User, postID uuid.UUID) error {
	var post models.Post
	if err := s.db.Scopes(community.Scoped(communityID)).First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if err := authz.Authorize(viewer, authz.ActionDeletePost, &authz.Target{OwnerID: post.UserID}); err != nil {
		return err
	}

	if err := s.db.Delete(&post).Error; err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if s.publisher != nil {
		s.publisher.Publish(communityID, realtime.Event{Type: realtime.EventPostDeleted, Data: post})
	}
	return nil
}
