// Package domain holds domain primitives shared across the module: typed
// identifiers that make misuse a compile error instead of a runtime bug.
package domain

import (
	"github.com/google/uuid"

	dErrors "github.com/Kamduis/name-combo/pkg/domain-errors"
)

// PersonID identifies a registered person. Distinct from raw uuid.UUID so a
// person ID cannot be confused with other identifiers at compile time.
type PersonID uuid.UUID

// ParsePersonID constructs a PersonID from external input.
//
// Invariant: IDs must be valid, non-empty, non-nil UUIDs. Construct via this
// function at trust boundaries; direct casting bypasses validation.
func ParsePersonID(s string) (PersonID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return PersonID{}, err
	}
	return PersonID(u), nil
}

// NewPersonID returns a random PersonID.
func NewPersonID() PersonID {
	return PersonID(uuid.New())
}

// String returns the canonical UUID string form.
func (id PersonID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the ID is the zero UUID.
func (id PersonID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

// MarshalText implements encoding.TextMarshaler. A defined type does not
// inherit uuid.UUID's marshaling, so without this the ID would encode as a
// byte array in JSON payloads instead of the canonical string form.
func (id PersonID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with the same validation
// as ParsePersonID.
func (id *PersonID) UnmarshalText(data []byte) error {
	parsed, err := ParsePersonID(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be the nil UUID")
	}
	return u, nil
}
