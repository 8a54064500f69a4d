// Package model defines the core domain types for the association backend.
package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// MembershipStatus is an eligibility tag of a user or a requirement of an event.
type MembershipStatus string

const (
	MembershipPending       MembershipStatus = "pending"
	MembershipMember        MembershipStatus = "member"
	MembershipExtraordinary MembershipStatus = "extraordinary"
	MembershipNonMember     MembershipStatus = "non_member"
	MembershipDonor         MembershipStatus = "donor"
)

// IsMember reports whether the status counts as a full association member.
func (m MembershipStatus) IsMember() bool {
	return m == MembershipMember || m == MembershipExtraordinary
}

// Valid reports whether m is a known tag.
func (m MembershipStatus) Valid() bool {
	switch m {
	case MembershipPending, MembershipMember, MembershipExtraordinary, MembershipNonMember, MembershipDonor:
		return true
	}
	return false
}

// Period is a closed time interval.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies within the period, bounds included.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// QuestionType is the expected shape of an answer.
type QuestionType string

const (
	QuestionShortText      QuestionType = "short_text"
	QuestionLongText       QuestionType = "long_text"
	QuestionNumber         QuestionType = "number"
	QuestionTime           QuestionType = "time"
	QuestionMultipleChoice QuestionType = "multiple_choice"
)

// Question is asked on signup.
type Question struct {
	ID       uuid.UUID    `json:"id"`
	Prompt   string       `json:"prompt"`
	Type     QuestionType `json:"question_type"`
	Options  []string     `json:"options,omitempty"`
	Required bool         `json:"required"`
}

// Answer is a free-text response to a question.
type Answer struct {
	QuestionID uuid.UUID `json:"question_id"`
	Answer     string    `json:"answer"`
}

// Owner identifies who administers an event.
type Owner struct {
	CommitteeID *uuid.UUID `json:"committee_id,omitempty"`
	CreatedBy   uuid.UUID  `json:"created_by"`
}

// Capacity holds the optional seat and waiting list limits of an event.
type Capacity struct {
	RegistrationMax *int `json:"registration_max,omitempty"`
	WaitingListMax  *int `json:"waiting_list_max,omitempty"`
}

// Event is the capacity-bearing aggregate registrations belong to.
type Event struct {
	ID                       uuid.UUID          `json:"id"`
	Name                     string             `json:"name"`
	Description              string             `json:"description"`
	Owner                    Owner              `json:"owner"`
	RegistrationPeriod       *Period            `json:"registration_period,omitempty"`
	Capacity                 Capacity           `json:"capacity"`
	RequiredMembershipStatus []MembershipStatus `json:"required_membership_status"`
	Questions                []Question         `json:"questions"`
	IsPublished              bool               `json:"is_published"`
	RegistrationCount        int                `json:"registration_count"`
	WaitingListCount         int                `json:"waiting_list_count"`
	Created                  time.Time          `json:"created"`
	Updated                  time.Time          `json:"updated"`
}

// RegistrationOpen reports whether non-privileged actors may sign up at now.
func (e *Event) RegistrationOpen(now time.Time) bool {
	return e.RegistrationPeriod != nil && e.RegistrationPeriod.Contains(now)
}

// ChangesAllowed reports whether non-privileged actors may still change or
// withdraw an existing registration at now. Only a passed deadline forbids it.
func (e *Event) ChangesAllowed(now time.Time) bool {
	return e.RegistrationPeriod == nil || !now.After(e.RegistrationPeriod.End)
}

// Accepts reports whether the event accepts the given membership status.
func (e *Event) Accepts(status MembershipStatus) bool {
	return slices.Contains(e.RequiredMembershipStatus, status)
}

// AcceptsAnonymous reports whether people without membership may sign up.
func (e *Event) AcceptsAnonymous() bool {
	return e.Accepts(MembershipNonMember)
}

// MissingRequiredAnswer returns the first required question without an answer.
func (e *Event) MissingRequiredAnswer(answers []Answer) (Question, bool) {
	for _, q := range e.Questions {
		if !q.Required {
			continue
		}
		answered := slices.ContainsFunc(answers, func(a Answer) bool {
			return a.QuestionID == q.ID
		})
		if !answered {
			return q, true
		}
	}
	return Question{}, false
}

// Registration is a signup for an event. A nil WaitingListPosition means the
// registration holds a confirmed seat.
type Registration struct {
	ID                  uuid.UUID  `json:"id"`
	EventID             uuid.UUID  `json:"event_id"`
	UserID              *uuid.UUID `json:"user_id,omitempty"`
	Name                string     `json:"name"`
	Answers             []Answer   `json:"answers"`
	Attended            *bool      `json:"attended,omitempty"`
	WaitingListPosition *int       `json:"waiting_list_position,omitempty"`
	Created             time.Time  `json:"created"`
	Updated             time.Time  `json:"updated"`
}

// Confirmed reports whether the registration holds a seat.
func (r *Registration) Confirmed() bool {
	return r.WaitingListPosition == nil
}

// BelongsTo reports whether the registration was made for userID.
func (r *Registration) BelongsTo(userID uuid.UUID) bool {
	return r.UserID != nil && *r.UserID == userID
}

// BasicUser is the name-only view of a registrant.
type BasicUser struct {
	UserID *uuid.UUID `json:"user_id,omitempty"`
	Name   string     `json:"name"`
}

// NewRegistration is the write model for creating or updating a registration.
type NewRegistration struct {
	UserID              *uuid.UUID `json:"user_id,omitempty"`
	Name                string     `json:"name"`
	Answers             []Answer   `json:"answers"`
	Attended            *bool      `json:"attended,omitempty"`
	WaitingListPosition *int       `json:"waiting_list_position,omitempty"`
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Name                     string             `json:"name"`
	Description              string             `json:"description"`
	CommitteeID              *uuid.UUID         `json:"committee_id,omitempty"`
	RegistrationPeriod       *Period            `json:"registration_period,omitempty"`
	RegistrationMax          *int               `json:"registration_max,omitempty"`
	WaitingListMax           *int               `json:"waiting_list_max,omitempty"`
	RequiredMembershipStatus []MembershipStatus `json:"required_membership_status"`
	Questions                []Question         `json:"questions"`
	IsPublished              bool               `json:"is_published"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
