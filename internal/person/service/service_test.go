package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/Kamduis/name-combo/internal/audit"
	"github.com/Kamduis/name-combo/internal/person/models"
	"github.com/Kamduis/name-combo/internal/person/service/mocks"
	"github.com/Kamduis/name-combo/internal/render"
	"github.com/Kamduis/name-combo/pkg/domain"
	dErrors "github.com/Kamduis/name-combo/pkg/domain-errors"
	"github.com/Kamduis/name-combo/pkg/person"
	"github.com/Kamduis/name-combo/pkg/platform/sentinel"
	"github.com/Kamduis/name-combo/pkg/requestcontext"
)

type PersonServiceSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockStore          *mocks.MockPersonStore
	mockCache          *mocks.MockRenderCache
	mockAuditPublisher *mocks.MockAuditPublisher
	service            *Service
	now                time.Time
	ctx                context.Context
}

func TestPersonServiceSuite(t *testing.T) {
	suite.Run(t, new(PersonServiceSuite))
}

func (s *PersonServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = mocks.NewMockPersonStore(s.ctrl)
	s.mockCache = mocks.NewMockRenderCache(s.ctrl)
	s.mockAuditPublisher = mocks.NewMockAuditPublisher(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = New(
		s.mockStore,
		WithLogger(logger),
		WithRenderCache(s.mockCache),
		WithAuditPublisher(s.mockAuditPublisher),
	)
	s.now = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *PersonServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *PersonServiceSuite) anna() person.Name {
	return person.MustNew([]string{"Anna"}, "Müller", person.WithTitle("Dr."))
}

func (s *PersonServiceSuite) stored(id domain.PersonID) *models.Person {
	p, err := models.NewPerson(id, s.anna(), person.GenderFemale, s.now)
	s.Require().NoError(err)
	return p
}

func (s *PersonServiceSuite) TestRegisterPerson() {
	s.mockStore.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil)
	s.mockAuditPublisher.EXPECT().
		Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event audit.Event) error {
			s.Equal(audit.ActionPersonRegistered, event.Action)
			return nil
		})

	p, err := s.service.RegisterPerson(s.ctx, s.anna(), person.GenderFemale)
	s.Require().NoError(err)
	s.False(p.ID.IsNil())
	s.Equal(s.now, p.CreatedAt)
	s.Equal(s.now, p.UpdatedAt)
	s.Equal("Dr. Anna Müller", p.Name.Format(person.ConventionGerman))
}

func (s *PersonServiceSuite) TestRegisterPersonInvalidGender() {
	_, err := s.service.RegisterPerson(s.ctx, s.anna(), person.Gender("banana"))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *PersonServiceSuite) TestRegisterPersonConflict() {
	s.mockStore.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(sentinel.ErrConflict)

	_, err := s.service.RegisterPerson(s.ctx, s.anna(), person.GenderFemale)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *PersonServiceSuite) TestGetPersonNotFound() {
	id := domain.NewPersonID()
	s.mockStore.EXPECT().
		FindByID(gomock.Any(), id).
		Return(nil, sentinel.ErrNotFound)

	_, err := s.service.GetPerson(s.ctx, id)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *PersonServiceSuite) TestRenamePerson() {
	id := domain.NewPersonID()
	existing := s.stored(id)
	newName := person.MustNew([]string{"Anna"}, "Schmidt", person.WithTitle("Dr."))

	s.mockStore.EXPECT().
		Execute(gomock.Any(), id, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.PersonID, validate func(*models.Person) error, apply func(*models.Person)) (*models.Person, error) {
			if err := validate(existing); err != nil {
				return nil, err
			}
			apply(existing)
			return existing, nil
		})
	s.mockCache.EXPECT().
		Invalidate(gomock.Any(), id).
		Return(nil)
	s.mockAuditPublisher.EXPECT().
		Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event audit.Event) error {
			s.Equal(audit.ActionPersonRenamed, event.Action)
			s.Equal(id, event.PersonID)
			return nil
		})

	p, err := s.service.RenamePerson(s.ctx, id, newName)
	s.Require().NoError(err)
	s.Equal("Schmidt", p.Name.FamilyName())
	s.Equal(s.now, p.UpdatedAt)
}

func (s *PersonServiceSuite) TestRenamePersonNotFound() {
	id := domain.NewPersonID()
	s.mockStore.EXPECT().
		Execute(gomock.Any(), id, gomock.Any(), gomock.Any()).
		Return(nil, sentinel.ErrNotFound)

	_, err := s.service.RenamePerson(s.ctx, id, s.anna())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *PersonServiceSuite) TestRenamePersonRejectsZeroName() {
	id := domain.NewPersonID()
	existing := s.stored(id)

	s.mockStore.EXPECT().
		Execute(gomock.Any(), id, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.PersonID, validate func(*models.Person) error, apply func(*models.Person)) (*models.Person, error) {
			if err := validate(existing); err != nil {
				return nil, err
			}
			apply(existing)
			return existing, nil
		})

	_, err := s.service.RenamePerson(s.ctx, id, person.Name{})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Equal("Müller", existing.Name.FamilyName())
}

func (s *PersonServiceSuite) TestDeletePerson() {
	id := domain.NewPersonID()
	s.mockStore.EXPECT().Delete(gomock.Any(), id).Return(nil)
	s.mockCache.EXPECT().Invalidate(gomock.Any(), id).Return(nil)
	s.mockAuditPublisher.EXPECT().
		Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event audit.Event) error {
			s.Equal(audit.ActionPersonDeleted, event.Action)
			return nil
		})

	s.Require().NoError(s.service.DeletePerson(s.ctx, id))
}

func (s *PersonServiceSuite) TestFormatPersonCacheHit() {
	id := domain.NewPersonID()
	key := render.Key{
		PersonID:   id,
		Convention: person.ConventionGerman,
		Case:       person.CaseNominative,
		Locale:     person.LocaleGerman,
	}
	s.mockCache.EXPECT().
		Get(gomock.Any(), key).
		Return("Dr. Anna Müller", nil)

	got, err := s.service.FormatPerson(s.ctx, id, person.ConventionGerman, person.CaseNominative, person.LocaleGerman)
	s.Require().NoError(err)
	s.Equal("Dr. Anna Müller", got)
}

func (s *PersonServiceSuite) TestFormatPersonCacheMiss() {
	id := domain.NewPersonID()
	key := render.Key{
		PersonID:   id,
		Convention: person.ConventionFamilyFirst,
		Case:       person.CaseNominative,
		Locale:     person.LocaleGerman,
	}
	s.mockCache.EXPECT().
		Get(gomock.Any(), key).
		Return("", sentinel.ErrNotFound)
	s.mockStore.EXPECT().
		FindByID(gomock.Any(), id).
		Return(s.stored(id), nil)
	s.mockCache.EXPECT().
		Set(gomock.Any(), key, "Müller Anna").
		Return(nil)

	got, err := s.service.FormatPerson(s.ctx, id, person.ConventionFamilyFirst, person.CaseNominative, person.LocaleGerman)
	s.Require().NoError(err)
	s.Equal("Müller Anna", got)
}

func (s *PersonServiceSuite) TestFormatPersonGenitive() {
	id := domain.NewPersonID()
	key := render.Key{
		PersonID:   id,
		Convention: person.ConventionGerman,
		Case:       person.CaseGenitive,
		Locale:     person.LocaleGerman,
	}
	s.mockCache.EXPECT().
		Get(gomock.Any(), key).
		Return("", sentinel.ErrNotFound)
	s.mockStore.EXPECT().
		FindByID(gomock.Any(), id).
		Return(s.stored(id), nil)
	s.mockCache.EXPECT().
		Set(gomock.Any(), key, "Dr. Anna Müllers").
		Return(nil)

	got, err := s.service.FormatPerson(s.ctx, id, person.ConventionGerman, person.CaseGenitive, person.LocaleGerman)
	s.Require().NoError(err)
	s.Equal("Dr. Anna Müllers", got)
}

func (s *PersonServiceSuite) TestPoliteAddress() {
	id := domain.NewPersonID()
	s.mockStore.EXPECT().
		FindByID(gomock.Any(), id).
		Return(s.stored(id), nil)

	got, err := s.service.PoliteAddress(s.ctx, id, person.LocaleGerman)
	s.Require().NoError(err)
	s.Equal("Frau Dr. Müller", got)
}

func (s *PersonServiceSuite) TestPoliteAddressUndefinedGender() {
	id := domain.NewPersonID()
	p, err := models.NewPerson(id, s.anna(), person.GenderUndefined, s.now)
	s.Require().NoError(err)
	s.mockStore.EXPECT().
		FindByID(gomock.Any(), id).
		Return(p, nil)

	_, err = s.service.PoliteAddress(s.ctx, id, person.LocaleGerman)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *PersonServiceSuite) TestListByFamilyNameRequiresInput() {
	_, err := s.service.ListByFamilyName(s.ctx, "   ")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *PersonServiceSuite) TestListByFamilyName() {
	id := domain.NewPersonID()
	s.mockStore.EXPECT().
		FindByFamilyName(gomock.Any(), "müller").
		Return([]*models.Person{s.stored(id)}, nil)

	persons, err := s.service.ListByFamilyName(s.ctx, "müller")
	s.Require().NoError(err)
	s.Require().Len(persons, 1)
	s.Equal(id, persons[0].ID)
}
