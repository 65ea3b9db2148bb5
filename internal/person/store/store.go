// Package store persists Person aggregates. Two implementations exist: an
// in-memory store for development and tests, and a PostgreSQL store for
// production. Both return pkg/platform/sentinel errors for infrastructure
// facts; the service layer translates them into domain errors.
package store

import (
	"context"

	"github.com/Kamduis/name-combo/internal/person/models"
	"github.com/Kamduis/name-combo/pkg/domain"
)

// Store is the persistence contract for Person aggregates.
//
// Execute runs validate and apply on the stored aggregate while holding the
// store's lock (mutex or SELECT ... FOR UPDATE) so concurrent renames cannot
// interleave between validation and mutation.
type Store interface {
	Create(ctx context.Context, p *models.Person) error
	FindByID(ctx context.Context, id domain.PersonID) (*models.Person, error)
	FindByFamilyName(ctx context.Context, familyName string) ([]*models.Person, error)
	Execute(ctx context.Context, id domain.PersonID, validate func(*models.Person) error, apply func(*models.Person)) (*models.Person, error)
	Delete(ctx context.Context, id domain.PersonID) error
	Count(ctx context.Context) (int, error)
}
