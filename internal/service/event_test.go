package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Shivanand-hulikatti/association-registrations/internal/apperr"
	"github.com/Shivanand-hulikatti/association-registrations/internal/auth"
	"github.com/Shivanand-hulikatti/association-registrations/internal/model"
	"github.com/Shivanand-hulikatti/association-registrations/internal/repository"
	"github.com/Shivanand-hulikatti/association-registrations/internal/service"
	"github.com/Shivanand-hulikatti/association-registrations/internal/service/mocks"
)

func validEventRequest() model.CreateEventRequest {
	return model.CreateEventRequest{
		Name:                     "  Spring climbing trip ",
		RegistrationPeriod:       openPeriod(),
		RegistrationMax:          intPtr(20),
		WaitingListMax:           intPtr(5),
		RequiredMembershipStatus: []model.MembershipStatus{model.MembershipMember},
		Questions: []model.Question{
			{Prompt: "Diet", Type: model.QuestionMultipleChoice, Options: []string{"vegan", "none"}, Required: true},
		},
		IsPublished: true,
	}
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()
	committee := uuid.New()
	chair := &auth.Session{
		UserID:     uuid.New(),
		Name:       "Chair",
		Committees: []auth.CommitteeMembership{{CommitteeID: committee, Role: auth.CommitteeRoleChair}},
	}

	tests := []struct {
		name    string
		session *auth.Session
		mutate  func(*model.CreateEventRequest)
		code    apperr.Code
	}{
		{name: "board member", session: board()},
		{name: "committee chair", session: chair, mutate: func(r *model.CreateEventRequest) { r.CommitteeID = &committee }},
		{name: "chair of another committee", session: chair, mutate: func(r *model.CreateEventRequest) {
			other := uuid.New()
			r.CommitteeID = &other
		}, code: apperr.CodeUnauthorized},
		{name: "plain member", session: member("m"), code: apperr.CodeUnauthorized},
		{name: "anonymous", code: apperr.CodeUnauthorized},
		{name: "blank name", session: board(), mutate: func(r *model.CreateEventRequest) { r.Name = " " }, code: apperr.CodeBadRequest},
		{name: "capacity too large", session: board(), mutate: func(r *model.CreateEventRequest) { r.RegistrationMax = intPtr(1000) }, code: apperr.CodeBadRequest},
		{name: "negative waiting list", session: board(), mutate: func(r *model.CreateEventRequest) { r.WaitingListMax = intPtr(-1) }, code: apperr.CodeBadRequest},
		{name: "inverted period", session: board(), mutate: func(r *model.CreateEventRequest) {
			r.RegistrationPeriod = &model.Period{Start: now, End: now.Add(-time.Minute)}
		}, code: apperr.CodeBadRequest},
		{name: "unknown status", session: board(), mutate: func(r *model.CreateEventRequest) {
			r.RequiredMembershipStatus = []model.MembershipStatus{"honorary"}
		}, code: apperr.CodeBadRequest},
		{name: "choice without options", session: board(), mutate: func(r *model.CreateEventRequest) { r.Questions[0].Options = nil }, code: apperr.CodeBadRequest},
		{name: "unknown question type", session: board(), mutate: func(r *model.CreateEventRequest) { r.Questions[0].Type = "essay" }, code: apperr.CodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewEventService(repository.NewMemory(), service.WithClock(clock))
			req := validEventRequest()
			if tt.mutate != nil {
				tt.mutate(&req)
			}

			event, err := svc.CreateEvent(ctx, tt.session, req)
			if tt.code != "" {
				assert.Equal(t, tt.code, apperr.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Spring climbing trip", event.Name)
			assert.Equal(t, tt.session.UserID, event.Owner.CreatedBy)
			assert.Equal(t, now, event.Created)
			require.Len(t, event.Questions, 1)
			assert.NotEqual(t, uuid.Nil, event.Questions[0].ID)
		})
	}
}

func TestEventVisibility(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemory()
	svc := service.NewEventService(store, service.WithClock(clock))
	admin := board()

	published, err := svc.CreateEvent(ctx, admin, validEventRequest())
	require.NoError(t, err)
	draftReq := validEventRequest()
	draftReq.IsPublished = false
	draft, err := svc.CreateEvent(ctx, admin, draftReq)
	require.NoError(t, err)

	events, err := svc.ListEvents(ctx, nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, published.ID, events[0].ID)

	events, err = svc.ListEvents(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	_, err = svc.GetEvent(ctx, member("m"), draft.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	got, err := svc.GetEvent(ctx, admin, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.RegistrationCount)

	_, err = svc.GetEvent(ctx, admin, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestEventStoreFailure(t *testing.T) {
	store := mocks.NewMockStore(gomock.NewController(t))
	store.EXPECT().ListEvents(gomock.Any()).Return(nil, errors.New("pool closed"))
	store.EXPECT().CreateEvent(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	svc := service.NewEventService(store)
	_, err := svc.ListEvents(context.Background(), nil)
	assert.Equal(t, apperr.CodeInternal, apperr.CodeOf(err))

	_, err = svc.CreateEvent(context.Background(), board(), validEventRequest())
	assert.Equal(t, apperr.CodeInternal, apperr.CodeOf(err))
}
