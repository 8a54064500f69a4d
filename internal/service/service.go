// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . Store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/association-registrations/internal/apperr"
	"github.com/Shivanand-hulikatti/association-registrations/internal/logging"
	"github.com/Shivanand-hulikatti/association-registrations/internal/metrics"
	"github.com/Shivanand-hulikatti/association-registrations/internal/model"
	"github.com/Shivanand-hulikatti/association-registrations/internal/repository"
)

var tracer = otel.Tracer("github.com/Shivanand-hulikatti/association-registrations/internal/service")

// Store is the persistence the services need. repository.Postgres and
// repository.Memory both satisfy it.
type Store interface {
	CreateEvent(ctx context.Context, e *model.Event) error
	GetEvent(ctx context.Context, id uuid.UUID) (*model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
	GetRegistration(ctx context.Context, id uuid.UUID) (*model.Registration, error)
	ListRegistrations(ctx context.Context, eventID uuid.UUID) ([]model.Registration, error)
	ListRegisteredUsers(ctx context.Context, eventID uuid.UUID) ([]model.BasicUser, error)
	ListUserRegistrations(ctx context.Context, userID uuid.UUID) ([]model.Registration, error)
	RunInEventTx(ctx context.Context, eventID uuid.UUID, fn repository.TxFunc) error
}

type options struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a service.
type Option func(*options)

// WithLogger sets the fallback logger used when the request context carries none.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func newOptions(opts []Option) options {
	o := options{
		logger: zap.NewNop(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) log(ctx context.Context) *zap.Logger {
	if _, ok := logging.FromContext(ctx); ok {
		return logging.Extract(ctx)
	}
	return o.logger
}

// translate turns store errors into domain errors. Errors that already carry
// a code pass through; unknown failures become Internal.
func translate(err error, notFound string) error {
	var appErr *apperr.Error
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return apperr.Wrap(err, apperr.CodeNotFound, notFound)
	case errors.Is(err, repository.ErrAlreadyRegistered):
		return apperr.Wrap(err, apperr.CodeConflict, apperr.ErrAlreadyRegistered.Message)
	default:
		return apperr.Internal(err)
	}
}

// finish records err on the span and logs internal failures.
func (o options) finish(ctx context.Context, span trace.Span, op string, err error) error {
	code := apperr.CodeOf(err)
	if code == apperr.CodeInternal {
		span.RecordError(err)
		span.SetStatus(codes.Error, "internal error")
		o.log(ctx).Error(op+" failed", zap.Error(err))
	} else {
		o.log(ctx).Info(op+" rejected", zap.String("code", string(code)), zap.Error(err))
	}
	return err
}

// finishMutation is finish for create, update and delete of registrations,
// which also count towards the rejection metric.
func (o options) finishMutation(ctx context.Context, span trace.Span, op string, err error) error {
	o.metrics.ObserveRejection(string(apperr.CodeOf(err)))
	return o.finish(ctx, span, op, err)
}
