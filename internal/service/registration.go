package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/association-registrations/internal/admission"
	"github.com/Shivanand-hulikatti/association-registrations/internal/apperr"
	"github.com/Shivanand-hulikatti/association-registrations/internal/auth"
	"github.com/Shivanand-hulikatti/association-registrations/internal/model"
	"github.com/Shivanand-hulikatti/association-registrations/internal/queue"
	"github.com/Shivanand-hulikatti/association-registrations/internal/repository"
)

// RegistrationService runs the registration lifecycle: eligibility checks,
// admission and waiting list maintenance. Every mutation happens inside one
// event transaction, so a rejected or failed call leaves the queue untouched.
type RegistrationService struct {
	store Store
	options
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(store Store, opts ...Option) *RegistrationService {
	return &RegistrationService{store: store, options: newOptions(opts)}
}

// RegistrationList is the capacity-aware read of an event's registrations.
// Exactly one of the fields is set, depending on the caller's access.
type RegistrationList struct {
	Detailed []model.Registration
	Names    []model.BasicUser
}

// Create signs up for an event and assigns a seat or a waiting list position.
func (s *RegistrationService) Create(ctx context.Context, actor auth.Actor, eventID uuid.UUID, req model.NewRegistration) (*model.Registration, error) {
	ctx, span := tracer.Start(ctx, "registration.create")
	defer span.End()
	span.SetAttributes(attribute.String("event.id", eventID.String()), attribute.String("actor.tier", actor.Tier.String()))

	var created *model.Registration
	err := s.store.RunInEventTx(ctx, eventID, func(tx repository.Tx, event *model.Event) error {
		if !actor.Privileged() && !event.RegistrationOpen(s.now()) {
			return apperr.ErrWindowClosed
		}
		name, err := s.eligibleName(actor, event, req)
		if err != nil {
			return err
		}
		if err := requireAnswers(event, req.Answers); err != nil {
			return err
		}

		decision, err := admission.Decide(admission.Input{
			Capacity:   event.Capacity,
			Confirmed:  event.RegistrationCount,
			QueueLen:   event.WaitingListCount,
			Privileged: actor.Privileged(),
			Requested:  req.WaitingListPosition,
			Attended:   req.Attended,
		})
		if err != nil {
			return err
		}

		now := s.now()
		reg := &model.Registration{
			ID:                  uuid.New(),
			EventID:             event.ID,
			UserID:              req.UserID,
			Name:                name,
			Answers:             answersOrEmpty(req.Answers),
			Attended:            decision.Attended,
			WaitingListPosition: decision.Position,
			Created:             now,
			Updated:             now,
		}
		if err := tx.InsertRegistration(ctx, reg); err != nil {
			return err
		}
		s.log(ctx).Debug("registration admitted",
			zap.Stringer("event_id", event.ID),
			zap.Stringer("registration_id", reg.ID),
			zap.String("outcome", decision.Outcome()),
			zap.Int("confirmed", event.RegistrationCount),
			zap.Int("queued", event.WaitingListCount),
		)
		created = reg
		return nil
	})
	if err != nil {
		return nil, s.finishMutation(ctx, span, "create registration", translate(err, "event not found"))
	}
	s.metrics.ObserveAdmission(admission.Decision{Position: created.WaitingListPosition}.Outcome())
	return created, nil
}

// eligibleName checks that actor may sign up the registrant described by req
// and returns the name to store.
func (s *RegistrationService) eligibleName(actor auth.Actor, event *model.Event, req model.NewRegistration) (string, error) {
	if req.UserID == nil {
		if !event.AcceptsAnonymous() {
			return "", apperr.New(apperr.CodeUnauthorized, "event does not accept sign-ups without membership")
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return "", apperr.New(apperr.CodeBadRequest, "name is required for anonymous sign-ups")
		}
		return name, nil
	}

	if actor.Privileged() {
		if name := strings.TrimSpace(req.Name); name != "" {
			return name, nil
		}
		if actor.Is(*req.UserID) {
			return actor.Name, nil
		}
		return "", apperr.New(apperr.CodeBadRequest, "name is required when registering another user")
	}
	if !actor.Is(*req.UserID) {
		return "", apperr.New(apperr.CodeUnauthorized, "cannot register another user")
	}
	if !event.AcceptsAnonymous() && !event.Accepts(actor.Membership) {
		return "", apperr.New(apperr.CodeUnauthorized, "membership status does not allow sign-up")
	}
	return actor.Name, nil
}

// Update changes the answers of a registration and, for privileged actors,
// its attendance and waiting list position.
func (s *RegistrationService) Update(ctx context.Context, actor auth.Actor, eventID, registrationID uuid.UUID, req model.NewRegistration) (*model.Registration, error) {
	ctx, span := tracer.Start(ctx, "registration.update")
	defer span.End()
	span.SetAttributes(attribute.String("registration.id", registrationID.String()), attribute.String("actor.tier", actor.Tier.String()))

	var updated *model.Registration
	err := s.store.RunInEventTx(ctx, eventID, func(tx repository.Tx, event *model.Event) error {
		reg, err := registrationOf(ctx, tx, event.ID, registrationID)
		if err != nil {
			return err
		}
		if err := authorizeOwner(actor, reg); err != nil {
			return err
		}
		if !actor.Privileged() && !event.ChangesAllowed(s.now()) {
			return apperr.ErrWindowClosed
		}
		if err := requireAnswers(event, req.Answers); err != nil {
			return err
		}

		decision, err := admission.Decide(admission.Input{
			Capacity:   event.Capacity,
			Confirmed:  event.RegistrationCount,
			QueueLen:   event.WaitingListCount,
			Privileged: actor.Privileged(),
			Requested:  req.WaitingListPosition,
			Current:    &admission.Current{Position: reg.WaitingListPosition, Attended: reg.Attended},
			Attended:   req.Attended,
		})
		if err != nil {
			return err
		}

		if err := tx.UpdateRegistration(ctx, reg.ID, answersOrEmpty(req.Answers), decision.Attended); err != nil {
			return err
		}
		if err := queue.New(tx, s.metrics).Reposition(ctx, reg.ID, decision.Position); err != nil {
			return err
		}
		updated, err = tx.GetRegistration(ctx, reg.ID)
		return err
	})
	if err != nil {
		return nil, s.finishMutation(ctx, span, "update registration", translate(err, "event not found"))
	}
	return updated, nil
}

// Delete removes a registration. A freed confirmed seat goes to the head of
// the waiting list.
func (s *RegistrationService) Delete(ctx context.Context, actor auth.Actor, eventID, registrationID uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "registration.delete")
	defer span.End()
	span.SetAttributes(attribute.String("registration.id", registrationID.String()), attribute.String("actor.tier", actor.Tier.String()))

	err := s.store.RunInEventTx(ctx, eventID, func(tx repository.Tx, event *model.Event) error {
		reg, err := registrationOf(ctx, tx, event.ID, registrationID)
		if err != nil {
			return err
		}
		if !actor.Privileged() {
			if err := authorizeOwner(actor, reg); err != nil {
				return err
			}
			if !event.ChangesAllowed(s.now()) {
				return apperr.ErrWindowClosed
			}
		}
		return queue.New(tx, s.metrics).DeleteAndRebalance(ctx, reg.ID)
	})
	if err != nil {
		return s.finishMutation(ctx, span, "delete registration", translate(err, "event not found"))
	}
	return nil
}

// Get returns one registration to its owner or a privileged actor.
func (s *RegistrationService) Get(ctx context.Context, actor auth.Actor, eventID, registrationID uuid.UUID) (*model.Registration, error) {
	ctx, span := tracer.Start(ctx, "registration.get")
	defer span.End()

	reg, err := s.store.GetRegistration(ctx, registrationID)
	if err != nil {
		return nil, s.finish(ctx, span, "get registration", translate(err, "registration not found"))
	}
	if reg.EventID != eventID {
		return nil, s.finish(ctx, span, "get registration", apperr.New(apperr.CodeNotFound, "registration not found"))
	}
	if err := authorizeOwner(actor, reg); err != nil {
		return nil, s.finish(ctx, span, "get registration", err)
	}
	return reg, nil
}

// List returns the registrations of an event. Privileged actors get the
// detailed list; members allowed to sign up get the names only.
func (s *RegistrationService) List(ctx context.Context, actor auth.Actor, eventID uuid.UUID) (*RegistrationList, error) {
	ctx, span := tracer.Start(ctx, "registration.list")
	defer span.End()

	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, s.finish(ctx, span, "list registrations", translate(err, "event not found"))
	}

	switch {
	case actor.Privileged():
		regs, err := s.store.ListRegistrations(ctx, eventID)
		if err != nil {
			return nil, s.finish(ctx, span, "list registrations", translate(err, "event not found"))
		}
		return &RegistrationList{Detailed: nonNil(regs)}, nil
	case event.AcceptsAnonymous() || (actor.Authenticated() && event.Accepts(actor.Membership)):
		names, err := s.store.ListRegisteredUsers(ctx, eventID)
		if err != nil {
			return nil, s.finish(ctx, span, "list registrations", translate(err, "event not found"))
		}
		return &RegistrationList{Names: nonNil(names)}, nil
	default:
		return nil, s.finish(ctx, span, "list registrations", apperr.ErrUnauthorized)
	}
}

// ListForUser returns all registrations of a user, to that user or a board member.
func (s *RegistrationService) ListForUser(ctx context.Context, actor auth.Actor, userID uuid.UUID) ([]model.Registration, error) {
	ctx, span := tracer.Start(ctx, "registration.list_for_user")
	defer span.End()

	if actor.Tier != auth.FullAccess && !actor.Is(userID) {
		return nil, s.finish(ctx, span, "list user registrations", apperr.ErrUnauthorized)
	}
	regs, err := s.store.ListUserRegistrations(ctx, userID)
	if err != nil {
		return nil, s.finish(ctx, span, "list user registrations", translate(err, "user not found"))
	}
	return nonNil(regs), nil
}

func registrationOf(ctx context.Context, tx repository.Tx, eventID, registrationID uuid.UUID) (*model.Registration, error) {
	reg, err := tx.GetRegistration(ctx, registrationID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && reg.EventID != eventID) {
		return nil, apperr.New(apperr.CodeNotFound, "registration not found")
	}
	return reg, err
}

// authorizeOwner allows privileged actors and the user the registration
// belongs to. Anonymous sign-ups are managed by privileged actors only.
func authorizeOwner(actor auth.Actor, reg *model.Registration) error {
	if actor.Privileged() {
		return nil
	}
	if reg.UserID == nil || !actor.Is(*reg.UserID) {
		return apperr.ErrUnauthorized
	}
	return nil
}

func requireAnswers(event *model.Event, answers []model.Answer) error {
	if q, missing := event.MissingRequiredAnswer(answers); missing {
		return apperr.New(apperr.CodeMissingRequiredAnswer, "missing answer for required question: "+q.Prompt)
	}
	return nil
}

func answersOrEmpty(answers []model.Answer) []model.Answer {
	if answers == nil {
		return []model.Answer{}
	}
	return answers
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
