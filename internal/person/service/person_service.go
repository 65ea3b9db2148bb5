package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Kamduis/name-combo/internal/audit"
	"github.com/Kamduis/name-combo/internal/person/models"
	"github.com/Kamduis/name-combo/internal/render"
	"github.com/Kamduis/name-combo/pkg/domain"
	dErrors "github.com/Kamduis/name-combo/pkg/domain-errors"
	"github.com/Kamduis/name-combo/pkg/person"
	"github.com/Kamduis/name-combo/pkg/platform/sentinel"
	"github.com/Kamduis/name-combo/pkg/requestcontext"
)

// RegisterPerson stores a new person under a fresh ID.
func (s *Service) RegisterPerson(ctx context.Context, name person.Name, gender person.Gender) (*models.Person, error) {
	ctx, span := s.tracer.Start(ctx, "person.Register")
	defer span.End()

	id := domain.NewPersonID()
	now := requestcontext.Now(ctx)

	p, err := models.NewPerson(id, name, gender, now)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.store.Create(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "person already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store person")
	}
	span.SetAttributes(attribute.String("person.id", id.String()))

	s.logAudit(ctx, audit.ActionPersonRegistered, id)
	if s.metrics != nil {
		s.metrics.IncrementPersonsRegistered()
	}
	return p, nil
}

// GetPerson fetches one person by ID.
func (s *Service) GetPerson(ctx context.Context, id domain.PersonID) (*models.Person, error) {
	ctx, span := s.tracer.Start(ctx, "person.Get")
	defer span.End()
	if s.metrics != nil {
		defer s.metrics.ObserveGetPerson(time.Now())
	}

	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "person not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load person")
	}
	return p, nil
}

// RenamePerson replaces the stored name. Validation and mutation run under
// the store's lock so concurrent renames cannot interleave. Cached renderings
// of the old name are dropped afterwards.
func (s *Service) RenamePerson(ctx context.Context, id domain.PersonID, name person.Name) (*models.Person, error) {
	ctx, span := s.tracer.Start(ctx, "person.Rename")
	defer span.End()

	now := requestcontext.Now(ctx)
	p, err := s.store.Execute(ctx, id,
		func(p *models.Person) error {
			return p.CanRename(name)
		},
		func(p *models.Person) {
			p.ApplyRename(name, now)
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "person not found")
		case dErrors.HasCode(err, dErrors.CodeInvariantViolation):
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to rename person")
		}
	}

	s.invalidateRenderings(ctx, id)
	s.logAudit(ctx, audit.ActionPersonRenamed, id)
	if s.metrics != nil {
		s.metrics.IncrementPersonsRenamed()
	}
	return p, nil
}

// DeletePerson removes a person and every cached rendering of their name.
func (s *Service) DeletePerson(ctx context.Context, id domain.PersonID) error {
	ctx, span := s.tracer.Start(ctx, "person.Delete")
	defer span.End()

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "person not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete person")
	}

	s.invalidateRenderings(ctx, id)
	s.logAudit(ctx, audit.ActionPersonDeleted, id)
	return nil
}

// FormatPerson renders the stored name in the requested convention and
// grammatical case. Renderings are served from the cache when possible;
// the locale is part of the cache key so locale-dependent renderings never
// collide.
func (s *Service) FormatPerson(ctx context.Context, id domain.PersonID, c person.Convention, gc person.GrammaticalCase, locale person.Locale) (string, error) {
	ctx, span := s.tracer.Start(ctx, "person.Format")
	defer span.End()
	if s.metrics != nil {
		defer s.metrics.ObserveFormat(time.Now())
	}

	key := render.Key{PersonID: id, Convention: c, Case: gc, Locale: locale}
	if s.cache != nil {
		if rendered, err := s.cache.Get(ctx, key); err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return rendered, nil
		}
	}

	p, err := s.GetPerson(ctx, id)
	if err != nil {
		return "", err
	}

	rendered := p.Name.FormatCase(c, gc)
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, rendered); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "caching rendering",
				"person_id", id.String(),
				"error", err,
			)
		}
	}
	return rendered, nil
}

// PoliteAddress renders the formal address for a person ("Frau Dr. Müller")
// in the given locale, derived from the stored gender.
func (s *Service) PoliteAddress(ctx context.Context, id domain.PersonID, locale person.Locale) (string, error) {
	ctx, span := s.tracer.Start(ctx, "person.PoliteAddress")
	defer span.End()

	p, err := s.GetPerson(ctx, id)
	if err != nil {
		return "", err
	}

	polite, err := p.Name.Polite(p.Gender, locale)
	if err != nil {
		switch {
		case errors.Is(err, person.ErrUnsupportedLocale):
			return "", dErrors.New(dErrors.CodeValidation, "unsupported locale")
		case errors.Is(err, person.ErrNotExpressible):
			return "", dErrors.New(dErrors.CodeValidation, "gender has no polite address form")
		default:
			return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to render polite address")
		}
	}
	return polite, nil
}

// ListByFamilyName returns every person with the given family name,
// case-insensitively, ordered by registration time.
func (s *Service) ListByFamilyName(ctx context.Context, familyName string) ([]*models.Person, error) {
	ctx, span := s.tracer.Start(ctx, "person.ListByFamilyName")
	defer span.End()

	familyName = strings.TrimSpace(familyName)
	if familyName == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "family_name is required")
	}

	persons, err := s.store.FindByFamilyName(ctx, familyName)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to search persons")
	}
	return persons, nil
}

// CountPersons returns the total number of registered persons.
func (s *Service) CountPersons(ctx context.Context) (int, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count persons")
	}
	return count, nil
}
