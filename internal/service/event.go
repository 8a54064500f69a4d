package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Shivanand-hulikatti/association-registrations/internal/apperr"
	"github.com/Shivanand-hulikatti/association-registrations/internal/auth"
	"github.com/Shivanand-hulikatti/association-registrations/internal/model"
)

// maxCapacity caps both registration_max and waiting_list_max.
const maxCapacity = 999

// EventService orchestrates event-related business operations.
type EventService struct {
	store Store
	options
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(store Store, opts ...Option) *EventService {
	return &EventService{store: store, options: newOptions(opts)}
}

// CreateEvent validates the request and stores a new event. Board members may
// create any event; committee chairs only events of their committee.
func (s *EventService) CreateEvent(ctx context.Context, session *auth.Session, req model.CreateEventRequest) (*model.Event, error) {
	ctx, span := tracer.Start(ctx, "event.create")
	defer span.End()

	if session == nil {
		return nil, s.finish(ctx, span, "create event", apperr.ErrUnauthorized)
	}
	allowed := session.HasFullAccess() || (req.CommitteeID != nil && session.ChairOf(*req.CommitteeID))
	if !allowed {
		return nil, s.finish(ctx, span, "create event", apperr.ErrUnauthorized)
	}
	if err := validateEvent(&req); err != nil {
		return nil, s.finish(ctx, span, "create event", err)
	}

	now := s.now()
	event := &model.Event{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Owner: model.Owner{
			CommitteeID: req.CommitteeID,
			CreatedBy:   session.UserID,
		},
		RegistrationPeriod: req.RegistrationPeriod,
		Capacity: model.Capacity{
			RegistrationMax: req.RegistrationMax,
			WaitingListMax:  req.WaitingListMax,
		},
		RequiredMembershipStatus: req.RequiredMembershipStatus,
		Questions:                req.Questions,
		IsPublished:              req.IsPublished,
		Created:                  now,
		Updated:                  now,
	}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		return nil, s.finish(ctx, span, "create event", translate(err, "event not found"))
	}
	span.SetAttributes(attribute.String("event.id", event.ID.String()))
	return event, nil
}

// ListEvents returns the events visible to the session.
func (s *EventService) ListEvents(ctx context.Context, session *auth.Session) ([]model.Event, error) {
	ctx, span := tracer.Start(ctx, "event.list")
	defer span.End()

	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, s.finish(ctx, span, "list events", translate(err, "event not found"))
	}
	visible := events[:0]
	for _, e := range events {
		if canSee(session, &e) {
			visible = append(visible, e)
		}
	}
	return visible, nil
}

// GetEvent returns a single event. Hidden events look absent to everyone but
// privileged actors.
func (s *EventService) GetEvent(ctx context.Context, session *auth.Session, id uuid.UUID) (*model.Event, error) {
	ctx, span := tracer.Start(ctx, "event.get")
	defer span.End()

	event, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, s.finish(ctx, span, "get event", translate(err, "event not found"))
	}
	if !canSee(session, event) {
		return nil, s.finish(ctx, span, "get event", apperr.New(apperr.CodeNotFound, "event not found"))
	}
	return event, nil
}

func canSee(session *auth.Session, e *model.Event) bool {
	return e.IsPublished || auth.Classify(session, e.Owner).Privileged()
}

func validateEvent(req *model.CreateEventRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return apperr.New(apperr.CodeBadRequest, "event name is required")
	}
	if !inCapacityRange(req.RegistrationMax) {
		return apperr.New(apperr.CodeBadRequest, "registration_max must be between 0 and 999")
	}
	if !inCapacityRange(req.WaitingListMax) {
		return apperr.New(apperr.CodeBadRequest, "waiting_list_max must be between 0 and 999")
	}
	if p := req.RegistrationPeriod; p != nil && p.Start.After(p.End) {
		return apperr.New(apperr.CodeBadRequest, "registration period cannot start after it ends")
	}
	for _, status := range req.RequiredMembershipStatus {
		if !status.Valid() {
			return apperr.New(apperr.CodeBadRequest, "unknown membership status: "+string(status))
		}
	}
	if req.RequiredMembershipStatus == nil {
		req.RequiredMembershipStatus = []model.MembershipStatus{}
	}
	if req.Questions == nil {
		req.Questions = []model.Question{}
	}
	for i := range req.Questions {
		q := &req.Questions[i]
		if q.ID == uuid.Nil {
			q.ID = uuid.New()
		}
		if strings.TrimSpace(q.Prompt) == "" {
			return apperr.New(apperr.CodeBadRequest, "question prompt is required")
		}
		switch q.Type {
		case model.QuestionShortText, model.QuestionLongText, model.QuestionNumber, model.QuestionTime:
		case model.QuestionMultipleChoice:
			if len(q.Options) == 0 {
				return apperr.New(apperr.CodeBadRequest, "multiple choice question needs options")
			}
		default:
			return apperr.New(apperr.CodeBadRequest, "unknown question type: "+string(q.Type))
		}
	}
	return nil
}

func inCapacityRange(v *int) bool {
	return v == nil || (*v >= 0 && *v <= maxCapacity)
}
