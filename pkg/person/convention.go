package person

import "fmt"

// Convention selects the sequence in which name components are concatenated
// for display.
//
// Usage: construct via ParseConvention at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type Convention string

// Recognized order conventions.
const (
	// ConventionGerman renders "Title GivenNames FamilyName Suffix" and is
	// the default.
	ConventionGerman Convention = "german"
	// ConventionWestern is an alias layout; it renders identically to the
	// German convention in this model.
	ConventionWestern Convention = "western"
	// ConventionFamilyFirst renders "FamilyName GivenNames" and drops title
	// and suffix, as used in directory listings.
	ConventionFamilyFirst Convention = "family_first"
)

// validConventions is the single source of truth for recognized conventions.
var validConventions = map[Convention]bool{
	ConventionGerman:      true,
	ConventionWestern:     true,
	ConventionFamilyFirst: true,
}

// DefaultConvention returns the convention used when none is requested.
func DefaultConvention() Convention {
	return ConventionGerman
}

// ParseConvention constructs a Convention from external input. An empty
// string selects the default. Unknown values fail with ErrInvalidName.
func ParseConvention(s string) (Convention, error) {
	if s == "" {
		return DefaultConvention(), nil
	}
	c := Convention(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: unknown order convention %q", ErrInvalidName, s)
	}
	return c, nil
}

// IsValid checks if the convention is one of the recognized values.
func (c Convention) IsValid() bool {
	return validConventions[c]
}

// String returns the string representation of the convention.
func (c Convention) String() string {
	return string(c)
}
