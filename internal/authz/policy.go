package authz

import "net/http"

// Role is the review-platform role attribute. The blog API only ever produces
// RoleAnonymous and RoleUser.
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Actor is the authenticated (or anonymous) identity a policy is evaluated
// against. Staff and Superuser both satisfy the admin tier.
type Actor struct {
	Authenticated bool
	UserID        int
	Role          Role
	Staff         bool
	Superuser     bool
}

var Anonymous = Actor{Role: RoleAnonymous}

func (a Actor) IsAdmin() bool {
	return a.Authenticated && (a.Role == RoleAdmin || a.Staff || a.Superuser)
}

func (a Actor) IsModerator() bool {
	return a.Authenticated && a.Role == RoleModerator
}

type MethodClass int

const (
	Safe MethodClass = iota
	Write
)

// ClassOf reports whether an HTTP method mutates state.
func ClassOf(method string) MethodClass {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return Safe
	default:
		return Write
	}
}

// Policy names one access-control variant. Each policy is a pair of decision
// tables, one per tier: the collection table gates whether the endpoint is
// reachable at all, the object table gates mutation of a resolved instance.
type Policy int

const (
	// OwnerOnly: everyone may read, any authenticated user may create,
	// only the author may update or delete.
	OwnerOnly Policy = iota

	// OwnerOrModerator: like OwnerOnly, but a moderator may additionally
	// PATCH or DELETE any object. Moderators get no other write methods.
	OwnerOrModerator

	// AdminOrReadOnly: everyone may read, only admins (role admin, staff or
	// superuser) may write.
	AdminOrReadOnly

	// OwnerOrStaffOrModerator: everyone may read, any authenticated user may
	// create (a POST passes the object check unconditionally), and the
	// author, staff, admins and moderators may update or delete.
	OwnerOrStaffOrModerator
)

// verdict is one row of a decision table: the set of actor classes allowed to
// use one method class. Rows are evaluated as a disjunction of the set flags.
type verdict struct {
	anyone        bool
	authenticated bool

	owner     bool
	admin     bool
	moderator bool

	// moderatorMethods restricts the moderator allowance to the listed
	// methods. Empty means any method covered by this row.
	moderatorMethods []string

	// createAlways lets any authenticated actor POST regardless of
	// ownership. Creation has no prior owner to check.
	createAlways bool
}

type table struct {
	collection map[MethodClass]verdict
	object     map[MethodClass]verdict
}

var policies = map[Policy]table{
	OwnerOnly: {
		collection: map[MethodClass]verdict{
			Safe:  {anyone: true},
			Write: {authenticated: true},
		},
		object: map[MethodClass]verdict{
			Safe:  {anyone: true},
			Write: {owner: true},
		},
	},
	OwnerOrModerator: {
		collection: map[MethodClass]verdict{
			Safe:  {anyone: true},
			Write: {authenticated: true},
		},
		object: map[MethodClass]verdict{
			Safe:  {anyone: true},
			Write: {owner: true, moderator: true, moderatorMethods: []string{http.MethodPatch, http.MethodDelete}},
		},
	},
	AdminOrReadOnly: {
		collection: map[MethodClass]verdict{
			Safe:  {anyone: true},
			Write: {admin: true},
		},
		object: map[MethodClass]verdict{
			Safe:  {anyone: true},
			Write: {admin: true},
		},
	},
	OwnerOrStaffOrModerator: {
		collection: map[MethodClass]verdict{
			Safe:  {anyone: true},
			Write: {authenticated: true},
		},
		object: map[MethodClass]verdict{
			Safe:  {anyone: true},
			Write: {owner: true, admin: true, moderator: true, createAlways: true},
		},
	},
}

func (v verdict) allow(method string, a Actor, isOwner bool) bool {
	if v.anyone {
		return true
	}
	if !a.Authenticated {
		return false
	}
	if v.authenticated {
		return true
	}
	if v.createAlways && method == http.MethodPost {
		return true
	}
	if v.owner && isOwner {
		return true
	}
	if v.admin && a.IsAdmin() {
		return true
	}
	if v.moderator && a.IsModerator() {
		if len(v.moderatorMethods) == 0 {
			return true
		}
		for _, m := range v.moderatorMethods {
			if m == method {
				return true
			}
		}
	}
	return false
}

// AllowCollection reports whether the actor may use the endpoint at all for
// this method. Handlers call this before touching the store.
func (p Policy) AllowCollection(method string, a Actor) bool {
	return policies[p].collection[ClassOf(method)].allow(method, a, false)
}

// AllowObject reports whether the actor may apply the method to an already
// resolved object owned by ownerID. The caller resolves the object (and any
// nested parents) first so that a missing resource reads as 404, not 403.
func (p Policy) AllowObject(method string, a Actor, ownerID int) bool {
	isOwner := a.Authenticated && a.UserID == ownerID
	return policies[p].object[ClassOf(method)].allow(method, a, isOwner)
}
