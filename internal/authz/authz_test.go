package authz

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func makeUser(role string, banned bool) *models.User {
	return &models.User{
		ID:       uuid.New(),
		Email:    "member@example.com",
		Role:     role,
		IsBanned: banned,
	}
}

func TestAuthorizeNilViewer(t *testing.T) {
	for _, action := range []Action{
		ActionCreatePost, ActionDeletePost, ActionCreateChat, ActionDeleteChat,
		ActionCreateRequest, ActionSetRequestStatus, ActionUpdateProfile,
		ActionManageUsers, ActionViewAdmin, ActionCreateReport,
	} {
		err := Authorize(nil, action, nil)
		assert.ErrorIs(t, err, ErrUnauthenticated, "action %s", action)
	}
}

func TestAuthorizeBanRules(t *testing.T) {
	banned := makeUser(models.RoleUser, true)

	// Banned members cannot write to the feed or the chat room.
	assert.ErrorIs(t, Authorize(banned, ActionCreatePost, nil), ErrBanned)
	assert.ErrorIs(t, Authorize(banned, ActionCreateChat, nil), ErrBanned)

	// But they may still file service requests and reports.
	assert.NoError(t, Authorize(banned, ActionCreateRequest, nil))
	assert.NoError(t, Authorize(banned, ActionCreateReport, nil))
}

func TestAuthorizeDeletePost(t *testing.T) {
	owner := makeUser(models.RoleUser, false)
	other := makeUser(models.RoleUser, false)
	admin := makeUser(models.RoleAdmin, false)

	target := &Target{OwnerID: owner.ID}

	assert.NoError(t, Authorize(owner, ActionDeletePost, target))
	assert.NoError(t, Authorize(admin, ActionDeletePost, target))
	assert.ErrorIs(t, Authorize(other, ActionDeletePost, target), ErrForbidden)
	assert.ErrorIs(t, Authorize(owner, ActionDeletePost, nil), ErrForbidden)
}

func TestAuthorizeAdminOnlyActions(t *testing.T) {
	member := makeUser(models.RoleUser, false)
	admin := makeUser(models.RoleAdmin, false)

	for _, action := range []Action{ActionDeleteChat, ActionSetRequestStatus, ActionManageUsers, ActionViewAdmin} {
		assert.ErrorIs(t, Authorize(member, action, nil), ErrForbidden, "action %s", action)
		assert.NoError(t, Authorize(admin, action, nil), "action %s", action)
	}
}

func TestAuthorizeUpdateProfile(t *testing.T) {
	viewer := makeUser(models.RoleUser, false)
	other := makeUser(models.RoleUser, false)

	assert.NoError(t, Authorize(viewer, ActionUpdateProfile, &Target{OwnerID: viewer.ID}))
	assert.ErrorIs(t, Authorize(viewer, ActionUpdateProfile, &Target{OwnerID: other.ID}), ErrForbidden)

	// Admins get no bypass on profile edits.
	admin := makeUser(models.RoleAdmin, false)
	assert.ErrorIs(t, Authorize(admin, ActionUpdateProfile, &Target{OwnerID: other.ID}), ErrForbidden)
}

func TestAuthorizeUnknownAction(t *testing.T) {
	admin := makeUser(models.RoleAdmin, false)
	assert.ErrorIs(t, Authorize(admin, Action("something.else"), nil), ErrForbidden)
}
