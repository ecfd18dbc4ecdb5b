// Package authz holds the single rule table governing who may do what.
// Services never re-implement these checks; they call Authorize and map the
// returned sentinel to an HTTP status.
package authz

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrUnauthenticated means no viewer record is available for the session.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrBanned means the viewer exists but is banned from the action.
	ErrBanned = errors.New("account is banned")
	// ErrForbidden means the viewer lacks the role or ownership the action needs.
	ErrForbidden = errors.New("forbidden")
)

type Action string

const (
	ActionCreatePost       Action = "post.create"
	ActionDeletePost       Action = "post.delete"
	ActionCreateChat       Action = "chat.create"
	ActionDeleteChat       Action = "chat.delete"
	ActionCreateRequest    Action = "request.create"
	ActionSetRequestStatus Action = "request.status"
	ActionUpdateProfile    Action = "profile.update"
	ActionManageUsers      Action = "user.manage"
	ActionViewAdmin        Action = "admin.view"
	ActionCreateReport     Action = "report.create"
)

// Target identifies the record an ownership-sensitive action applies to.
// Actions without a target (creations, admin console) pass nil.
type Target struct {
	OwnerID uuid.UUID
}

// Authorize decides allow/deny for the viewer performing action on target.
// A nil viewer always denies: the caller is expected to have failed closed
// long before reaching a gated mutation.
func Authorize(viewer *models.User, action Action, target *Target) error {
	if viewer == nil {
		return ErrUnauthenticated
	}

	switch action {
	case ActionCreatePost, ActionCreateChat:
		if viewer.IsBanned {
			return ErrBanned
		}
		return nil

	// Service requests are deliberately not ban-gated; the ban flag only
	// blocks feed and chat content.
	case ActionCreateRequest, ActionCreateReport:
		return nil

	case ActionDeletePost:
		if viewer.IsAdmin() {
			return nil
		}
		if target != nil && target.OwnerID == viewer.ID {
			return nil
		}
		return ErrForbidden

	case ActionDeleteChat, ActionSetRequestStatus, ActionManageUsers, ActionViewAdmin:
		if viewer.IsAdmin() {
			return nil
		}
		return ErrForbidden

	case ActionUpdateProfile:
		if target != nil && target.OwnerID == viewer.ID {
			return nil
		}
		return ErrForbidden
	}

	return ErrForbidden
}
