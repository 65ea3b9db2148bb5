package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Kamduis/name-combo/internal/person/models"
	"github.com/Kamduis/name-combo/pkg/domain"
	dErrors "github.com/Kamduis/name-combo/pkg/domain-errors"
	"github.com/Kamduis/name-combo/pkg/person"
	"github.com/Kamduis/name-combo/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) newPerson(givens []string, family string) *models.Person {
	name := person.MustNew(givens, family)
	p, err := models.NewPerson(domain.NewPersonID(), name, person.GenderUndefined, time.Now())
	s.Require().NoError(err)
	return p
}

func (s *MemoryStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds person by ID", func() {
		p := s.newPerson([]string{"Anna"}, "Müller")
		s.Require().NoError(s.store.Create(s.ctx, p))

		found, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.True(p.Name.Equal(found.Name))
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, domain.NewPersonID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects duplicate ID", func() {
		p := s.newPerson([]string{"Hans"}, "Meier")
		s.Require().NoError(s.store.Create(s.ctx, p))
		s.Require().ErrorIs(s.store.Create(s.ctx, p), sentinel.ErrConflict)
	})
}

func (s *MemoryStoreSuite) TestFindByFamilyName() {
	s.Run("matches case-insensitively", func() {
		p := s.newPerson([]string{"Anna"}, "Müller")
		s.Require().NoError(s.store.Create(s.ctx, p))

		found, err := s.store.FindByFamilyName(s.ctx, "müller")
		s.Require().NoError(err)
		s.Require().Len(found, 1)
		s.Equal(p.ID, found[0].ID)
	})

	s.Run("returns results in creation order", func() {
		first := s.newPerson([]string{"Anna"}, "Schmidt")
		first.CreatedAt = time.Now().Add(-time.Hour)
		second := s.newPerson([]string{"Berta"}, "Schmidt")
		s.Require().NoError(s.store.Create(s.ctx, first))
		s.Require().NoError(s.store.Create(s.ctx, second))

		found, err := s.store.FindByFamilyName(s.ctx, "Schmidt")
		s.Require().NoError(err)
		s.Require().Len(found, 2)
		s.Equal(first.ID, found[0].ID)
	})

	s.Run("empty result for unknown family name", func() {
		found, err := s.store.FindByFamilyName(s.ctx, "Unbekannt")
		s.Require().NoError(err)
		s.Empty(found)
	})
}

func (s *MemoryStoreSuite) TestExecute() {
	s.Run("applies rename under lock", func() {
		p := s.newPerson([]string{"Anna"}, "Müller")
		s.Require().NoError(s.store.Create(s.ctx, p))

		newName := person.MustNew([]string{"Anna"}, "Schmidt")
		now := time.Now()
		updated, err := s.store.Execute(s.ctx, p.ID,
			func(cur *models.Person) error { return cur.CanRename(newName) },
			func(cur *models.Person) { cur.ApplyRename(newName, now) },
		)
		s.Require().NoError(err)
		s.Equal("Schmidt", updated.Name.FamilyName())

		found, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal("Schmidt", found.Name.FamilyName())
	})

	s.Run("validation failure leaves person untouched", func() {
		p := s.newPerson([]string{"Hans"}, "Meier")
		s.Require().NoError(s.store.Create(s.ctx, p))

		_, err := s.store.Execute(s.ctx, p.ID,
			func(*models.Person) error { return dErrors.New(dErrors.CodeInvariantViolation, "nope") },
			func(cur *models.Person) { cur.ApplyRename(person.MustNew([]string{"X"}, "Y"), time.Now()) },
		)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))

		found, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal("Meier", found.Name.FamilyName())
	})

	s.Run("unknown ID returns ErrNotFound", func() {
		_, err := s.store.Execute(s.ctx, domain.NewPersonID(),
			func(*models.Person) error { return nil },
			func(*models.Person) {},
		)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestDeleteAndCount() {
	p := s.newPerson([]string{"Anna"}, "Müller")
	s.Require().NoError(s.store.Create(s.ctx, p))

	n, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)

	s.Require().NoError(s.store.Delete(s.ctx, p.ID))
	s.Require().ErrorIs(s.store.Delete(s.ctx, p.ID), sentinel.ErrNotFound)

	n, err = s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, n)
}

func (s *MemoryStoreSuite) TestReturnedCopiesAreIsolated() {
	p := s.newPerson([]string{"Anna"}, "Müller")
	s.Require().NoError(s.store.Create(s.ctx, p))

	found, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	found.Gender = person.GenderFemale

	again, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(person.GenderUndefined, again.Gender, "store contents must not alias returned values")
}
