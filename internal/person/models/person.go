package models

import (
	"time"

	"github.com/Kamduis/name-combo/pkg/domain"
	dErrors "github.com/Kamduis/name-combo/pkg/domain-errors"
	"github.com/Kamduis/name-combo/pkg/person"
)

// Person is the aggregate root for a registered person.
//
// Invariants:
//   - Name satisfies the pkg/person construction invariants (at least one
//     given name; validated at construction and on every rename)
//   - Gender is one of the supported gender values
//   - CreatedAt is immutable after construction; UpdatedAt moves forward on
//     every mutation
//
// The embedded Name is an immutable value; renames replace it wholesale via
// ApplyRename so a Person is never observed with a half-updated name.
type Person struct {
	ID        domain.PersonID `json:"id"`
	Name      person.Name     `json:"name"`
	Gender    person.Gender   `json:"gender"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewPerson constructs a Person aggregate from an already validated name.
func NewPerson(id domain.PersonID, name person.Name, gender person.Gender, now time.Time) (*Person, error) {
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "person id is required")
	}
	if name.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "person name is required")
	}
	if !gender.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unsupported gender")
	}
	return &Person{
		ID:        id,
		Name:      name,
		Gender:    gender,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanRename checks whether the replacement name is acceptable.
// Use with ApplyRename in Execute callbacks so validation and mutation happen
// under the same store lock.
func (p *Person) CanRename(name person.Name) error {
	if name.IsZero() {
		return dErrors.New(dErrors.CodeInvariantViolation, "replacement name is required")
	}
	return nil
}

// ApplyRename replaces the name and advances the update timestamp.
// Call CanRename first to validate the transition.
func (p *Person) ApplyRename(name person.Name, now time.Time) {
	p.Name = name
	p.UpdatedAt = now
}

// PersonRegistered is emitted after a person is stored.
type PersonRegistered struct {
	PersonID domain.PersonID
}

// PersonRenamed is emitted after a rename is persisted. Consumers must drop
// any cached renderings of the old name.
type PersonRenamed struct {
	PersonID domain.PersonID
}

// PersonDeleted is emitted after a person is removed.
type PersonDeleted struct {
	PersonID domain.PersonID
}
