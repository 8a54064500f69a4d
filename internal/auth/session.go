// Package auth classifies callers into actor tiers and carries verified
// sessions through the request context.
package auth

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/Shivanand-hulikatti/association-registrations/internal/model"
)

// Role is an association-wide role.
type Role string

const (
	RoleAdmin             Role = "admin"
	RoleTreasurer         Role = "treasurer"
	RoleSecretary         Role = "secretary"
	RoleChair             Role = "chair"
	RoleViceChair         Role = "vice_chair"
	RoleClimbingCommissar Role = "climbing_commissar"
)

// fullAccessRoles administer every event: the board plus the climbing
// commissar. Other roles carry no event rights.
var fullAccessRoles = []Role{RoleAdmin, RoleTreasurer, RoleSecretary, RoleChair, RoleViceChair, RoleClimbingCommissar}

// CommitteeRole is a user's role inside one committee.
type CommitteeRole string

const (
	CommitteeRoleMember CommitteeRole = "member"
	CommitteeRoleChair  CommitteeRole = "chair"
)

// CommitteeMembership is an active committee membership of the session user.
type CommitteeMembership struct {
	CommitteeID uuid.UUID     `json:"committee_id"`
	Role        CommitteeRole `json:"role"`
}

// Session is a verified, request-scoped view of the logged in user.
type Session struct {
	UserID     uuid.UUID
	Name       string
	Membership model.MembershipStatus
	Roles      []Role
	Committees []CommitteeMembership
}

// ActorID returns the user the session belongs to.
func (s *Session) ActorID() uuid.UUID { return s.UserID }

// MembershipStatus returns the user's membership tag.
func (s *Session) MembershipStatus() model.MembershipStatus { return s.Membership }

// HasFullAccess reports whether the user holds a role that administers all
// events.
func (s *Session) HasFullAccess() bool {
	return slices.ContainsFunc(s.Roles, func(r Role) bool {
		return slices.Contains(fullAccessRoles, r)
	})
}

// ChairOf reports whether the user chairs the committee.
func (s *Session) ChairOf(committeeID uuid.UUID) bool {
	return slices.ContainsFunc(s.Committees, func(c CommitteeMembership) bool {
		return c.CommitteeID == committeeID && c.Role == CommitteeRoleChair
	})
}

// IsPrivilegedFor reports whether the user may administer what owner owns.
func (s *Session) IsPrivilegedFor(owner model.Owner) bool {
	if s.HasFullAccess() {
		return true
	}
	if owner.CreatedBy == s.UserID {
		return true
	}
	return owner.CommitteeID != nil && s.ChairOf(*owner.CommitteeID)
}

type sessionKey struct{}

// WithSession stores a verified session in ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	if s == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session stored in ctx, or nil for anonymous callers.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}
