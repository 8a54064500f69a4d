package auth

import (
	"github.com/google/uuid"

	"github.com/Shivanand-hulikatti/association-registrations/internal/model"
)

// Tier is the access level of a caller with respect to one resource.
type Tier int

const (
	Unauthenticated Tier = iota
	Self
	CommitteePrivileged
	FullAccess
)

func (t Tier) String() string {
	switch t {
	case Self:
		return "self"
	case CommitteePrivileged:
		return "committee_privileged"
	case FullAccess:
		return "full_access"
	default:
		return "unauthenticated"
	}
}

// Actor is the capability value handed to the services. It is derived once
// per request and never looked up again downstream.
type Actor struct {
	Tier       Tier
	UserID     uuid.UUID
	Name       string
	Membership model.MembershipStatus
}

// Anonymous is the actor of a request without a session.
var Anonymous = Actor{Tier: Unauthenticated}

// Privileged reports whether the actor may administer the resource.
func (a Actor) Privileged() bool {
	return a.Tier == CommitteePrivileged || a.Tier == FullAccess
}

// Authenticated reports whether the actor is logged in.
func (a Actor) Authenticated() bool {
	return a.Tier != Unauthenticated
}

// Is reports whether the actor is the given user.
func (a Actor) Is(userID uuid.UUID) bool {
	return a.Authenticated() && a.UserID == userID
}

// Classify derives the actor tier of session for a resource owned by owner.
// It never fails; an absent session yields the most restrictive tier.
func Classify(s *Session, owner model.Owner) Actor {
	if s == nil {
		return Anonymous
	}
	actor := Actor{
		Tier:       Self,
		UserID:     s.UserID,
		Name:       s.Name,
		Membership: s.Membership,
	}
	switch {
	case s.HasFullAccess():
		actor.Tier = FullAccess
	case s.IsPrivilegedFor(owner):
		actor.Tier = CommitteePrivileged
	}
	return actor
}

// ClassifyGlobal derives the tier of session for resources without an owner,
// such as user-scoped listings. Only full access roles are privileged.
func ClassifyGlobal(s *Session) Actor {
	if s == nil {
		return Anonymous
	}
	actor := Actor{Tier: Self, UserID: s.UserID, Name: s.Name, Membership: s.Membership}
	if s.HasFullAccess() {
		actor.Tier = FullAccess
	}
	return actor
}
