package authz

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

const ownerID = 7

var (
	anonymous = Anonymous
	plainUser = Actor{Authenticated: true, UserID: 42, Role: RoleUser}
	owner     = Actor{Authenticated: true, UserID: ownerID, Role: RoleUser}
	moderator = Actor{Authenticated: true, UserID: 43, Role: RoleModerator}
	admin     = Actor{Authenticated: true, UserID: 44, Role: RoleAdmin}
	staff     = Actor{Authenticated: true, UserID: 45, Role: RoleUser, Staff: true}
	superuser = Actor{Authenticated: true, UserID: 46, Role: RoleUser, Superuser: true}
)

func TestClassOf(t *testing.T) {
	assert.Equal(t, Safe, ClassOf(http.MethodGet))
	assert.Equal(t, Safe, ClassOf(http.MethodHead))
	assert.Equal(t, Safe, ClassOf(http.MethodOptions))
	assert.Equal(t, Write, ClassOf(http.MethodPost))
	assert.Equal(t, Write, ClassOf(http.MethodPut))
	assert.Equal(t, Write, ClassOf(http.MethodPatch))
	assert.Equal(t, Write, ClassOf(http.MethodDelete))
}

func TestAdminTier(t *testing.T) {
	assert.True(t, admin.IsAdmin())
	assert.True(t, staff.IsAdmin())
	assert.True(t, superuser.IsAdmin())
	assert.False(t, moderator.IsAdmin())
	assert.False(t, plainUser.IsAdmin())
	assert.False(t, Actor{Role: RoleAdmin}.IsAdmin())
}

type cell struct {
	policy Policy
	method string
	actor  Actor

	collection bool
	object     bool
}

// The full decision matrix, one row per (policy, method, actor) combination.
// Object decisions are evaluated against an object owned by ownerID.
func matrix() []cell {
	return []cell{
		// OwnerOnly
		{OwnerOnly, http.MethodGet, anonymous, true, true},
		{OwnerOnly, http.MethodGet, plainUser, true, true},
		{OwnerOnly, http.MethodPost, anonymous, false, false},
		{OwnerOnly, http.MethodPost, plainUser, true, false},
		{OwnerOnly, http.MethodPost, owner, true, true},
		{OwnerOnly, http.MethodPatch, anonymous, false, false},
		{OwnerOnly, http.MethodPatch, plainUser, true, false},
		{OwnerOnly, http.MethodPatch, owner, true, true},
		{OwnerOnly, http.MethodPatch, moderator, true, false},
		{OwnerOnly, http.MethodPatch, admin, true, false},
		{OwnerOnly, http.MethodDelete, plainUser, true, false},
		{OwnerOnly, http.MethodDelete, owner, true, true},
		{OwnerOnly, http.MethodDelete, staff, true, false},

		// OwnerOrModerator: moderator gets PATCH and DELETE only.
		{OwnerOrModerator, http.MethodGet, anonymous, true, true},
		{OwnerOrModerator, http.MethodPost, anonymous, false, false},
		{OwnerOrModerator, http.MethodPost, plainUser, true, false},
		{OwnerOrModerator, http.MethodPatch, owner, true, true},
		{OwnerOrModerator, http.MethodPatch, moderator, true, true},
		{OwnerOrModerator, http.MethodDelete, moderator, true, true},
		{OwnerOrModerator, http.MethodPut, moderator, true, false},
		{OwnerOrModerator, http.MethodPatch, plainUser, true, false},
		{OwnerOrModerator, http.MethodPatch, admin, true, false},

		// AdminOrReadOnly
		{AdminOrReadOnly, http.MethodGet, anonymous, true, true},
		{AdminOrReadOnly, http.MethodGet, plainUser, true, true},
		{AdminOrReadOnly, http.MethodPost, anonymous, false, false},
		{AdminOrReadOnly, http.MethodPost, plainUser, false, false},
		{AdminOrReadOnly, http.MethodPost, moderator, false, false},
		{AdminOrReadOnly, http.MethodPost, admin, true, true},
		{AdminOrReadOnly, http.MethodPost, staff, true, true},
		{AdminOrReadOnly, http.MethodPost, superuser, true, true},
		{AdminOrReadOnly, http.MethodPatch, owner, false, false},
		{AdminOrReadOnly, http.MethodDelete, admin, true, true},

		// OwnerOrStaffOrModerator: POST passes the object check for any
		// authenticated actor; PATCH/DELETE require owner, staff, admin or
		// moderator.
		{OwnerOrStaffOrModerator, http.MethodGet, anonymous, true, true},
		{OwnerOrStaffOrModerator, http.MethodPost, anonymous, false, false},
		{OwnerOrStaffOrModerator, http.MethodPost, plainUser, true, true},
		{OwnerOrStaffOrModerator, http.MethodPatch, plainUser, true, false},
		{OwnerOrStaffOrModerator, http.MethodPatch, owner, true, true},
		{OwnerOrStaffOrModerator, http.MethodPatch, moderator, true, true},
		{OwnerOrStaffOrModerator, http.MethodPatch, admin, true, true},
		{OwnerOrStaffOrModerator, http.MethodPatch, staff, true, true},
		{OwnerOrStaffOrModerator, http.MethodDelete, plainUser, true, false},
		{OwnerOrStaffOrModerator, http.MethodDelete, moderator, true, true},
		{OwnerOrStaffOrModerator, http.MethodPut, moderator, true, true},
	}
}

func TestDecisionMatrix(t *testing.T) {
	for _, c := range matrix() {
		name := fmt.Sprintf("policy=%d/%s/role=%s/auth=%t/uid=%d", c.policy, c.method, c.actor.Role, c.actor.Authenticated, c.actor.UserID)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.collection, c.policy.AllowCollection(c.method, c.actor), "collection decision")
			assert.Equal(t, c.object, c.policy.AllowObject(c.method, c.actor, ownerID), "object decision")
		})
	}
}

// The two moderator policies must stay distinct: one restricts moderators to
// PATCH and DELETE, the other does not.
func TestModeratorPoliciesDiffer(t *testing.T) {
	assert.False(t, OwnerOrModerator.AllowObject(http.MethodPut, moderator, ownerID))
	assert.True(t, OwnerOrStaffOrModerator.AllowObject(http.MethodPut, moderator, ownerID))
}
