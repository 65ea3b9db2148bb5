// Package service orchestrates the person registry: registration, lookups,
// renames, formatted renderings and deletion. It owns the translation from
// store sentinels to coded domain errors and emits audit events on mutations.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks PersonStore,RenderCache,AuditPublisher

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kamduis/name-combo/internal/audit"
	"github.com/Kamduis/name-combo/internal/person/metrics"
	"github.com/Kamduis/name-combo/internal/person/models"
	"github.com/Kamduis/name-combo/internal/render"
	"github.com/Kamduis/name-combo/pkg/domain"
)

// PersonStore is the persistence contract the service depends on. Satisfied
// by internal/person/store implementations.
type PersonStore interface {
	Create(ctx context.Context, p *models.Person) error
	FindByID(ctx context.Context, id domain.PersonID) (*models.Person, error)
	FindByFamilyName(ctx context.Context, familyName string) ([]*models.Person, error)
	Execute(ctx context.Context, id domain.PersonID, validate func(*models.Person) error, apply func(*models.Person)) (*models.Person, error)
	Delete(ctx context.Context, id domain.PersonID) error
	Count(ctx context.Context) (int, error)
}

// RenderCache caches formatted renderings. Satisfied by internal/render
// implementations.
type RenderCache interface {
	Get(ctx context.Context, key render.Key) (string, error)
	Set(ctx context.Context, key render.Key, rendered string) error
	Invalidate(ctx context.Context, personID domain.PersonID) error
}

// AuditPublisher records who changed which name.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates person registry operations.
type Service struct {
	store          PersonStore
	cache          RenderCache
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithRenderCache(cache RenderCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(store PersonStore, opts ...Option) *Service {
	s := &Service{
		store:  store,
		tracer: otel.Tracer("name-combo/person"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) logAudit(ctx context.Context, action audit.Action, personID domain.PersonID) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(action),
			"person_id", personID.String(),
			"log_type", "audit",
		)
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{Action: action, PersonID: personID}); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "emitting audit event",
			"action", string(action),
			"person_id", personID.String(),
			"error", err,
		)
	}
}

func (s *Service) invalidateRenderings(ctx context.Context, personID domain.PersonID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, personID); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "invalidating cached renderings",
			"person_id", personID.String(),
			"error", err,
		)
	}
}
