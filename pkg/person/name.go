package person

import (
	"fmt"
	"strings"
)

// Name is the structured representation of a personal name.
//
// Invariants:
//   - GivenNames holds at least one entry and no entry is blank
//   - FamilyName is non-blank unless AllowEmptyFamilyName was passed at
//     construction (mononyms)
//   - values are immutable after construction; New copies its slice input
//
// Construct via New; the zero value is not a valid Name.
type Name struct {
	title      string
	givenNames []string
	familyName string
	suffix     string
}

// Option configures name construction.
type Option func(*options)

type options struct {
	title            string
	suffix           string
	allowEmptyFamily bool
}

// WithTitle sets an academic or professional title ("Dr.", "Prof.").
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = strings.TrimSpace(title)
	}
}

// WithSuffix sets a name suffix ("jr.", "III").
func WithSuffix(suffix string) Option {
	return func(o *options) {
		o.suffix = strings.TrimSpace(suffix)
	}
}

// AllowEmptyFamilyName permits construction without a family name, for
// mononymous persons.
func AllowEmptyFamilyName() Option {
	return func(o *options) {
		o.allowEmptyFamily = true
	}
}

// New validates the component parts and returns an immutable Name. At least
// one non-blank given name is required; a blank family name is rejected
// unless AllowEmptyFamilyName is passed. Violations fail with ErrInvalidName.
func New(givenNames []string, familyName string, opts ...Option) (Name, error) {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if len(givenNames) == 0 {
		return Name{}, fmt.Errorf("%w: at least one given name is required", ErrInvalidName)
	}
	cleaned := make([]string, 0, len(givenNames))
	for _, g := range givenNames {
		g = strings.TrimSpace(g)
		if g == "" {
			return Name{}, fmt.Errorf("%w: given names must not be blank", ErrInvalidName)
		}
		cleaned = append(cleaned, g)
	}

	familyName = strings.TrimSpace(familyName)
	if familyName == "" && !o.allowEmptyFamily {
		return Name{}, fmt.Errorf("%w: family name is required", ErrInvalidName)
	}

	return Name{
		title:      o.title,
		givenNames: cleaned,
		familyName: familyName,
		suffix:     o.suffix,
	}, nil
}

// MustNew is New for static inputs known to be valid; it panics on error.
func MustNew(givenNames []string, familyName string, opts ...Option) Name {
	n, err := New(givenNames, familyName, opts...)
	if err != nil {
		panic(err)
	}
	return n
}

// Title returns the title, or "" when none was provided.
func (n Name) Title() string { return n.title }

// GivenNames returns a copy of the given names in order.
func (n Name) GivenNames() []string {
	out := make([]string, len(n.givenNames))
	copy(out, n.givenNames)
	return out
}

// FamilyName returns the family name, or "" for mononyms.
func (n Name) FamilyName() string { return n.familyName }

// Suffix returns the suffix, or "" when none was provided.
func (n Name) Suffix() string { return n.suffix }

// IsZero reports whether n is the invalid zero value.
func (n Name) IsZero() bool {
	return len(n.givenNames) == 0
}

// Equal reports whether two names hold identical components.
func (n Name) Equal(other Name) bool {
	if n.title != other.title || n.familyName != other.familyName || n.suffix != other.suffix {
		return false
	}
	if len(n.givenNames) != len(other.givenNames) {
		return false
	}
	for i, g := range n.givenNames {
		if other.givenNames[i] != g {
			return false
		}
	}
	return true
}

// Format renders the name following the given order convention. Multiple
// given names are space-delimited. The result always contains every provided
// component for the German and Western conventions; the family-first
// convention renders only family and given names.
func (n Name) Format(c Convention) string {
	var parts []string
	switch c {
	case ConventionFamilyFirst:
		if n.familyName != "" {
			parts = append(parts, n.familyName)
		}
		parts = append(parts, n.givenNames...)
	default:
		if n.title != "" {
			parts = append(parts, n.title)
		}
		parts = append(parts, n.givenNames...)
		if n.familyName != "" {
			parts = append(parts, n.familyName)
		}
		if n.suffix != "" {
			parts = append(parts, n.suffix)
		}
	}
	return strings.Join(parts, " ")
}

// FormatCase renders the name in the given convention and declines it into
// the given grammatical case.
func (n Name) FormatCase(c Convention, gc GrammaticalCase) string {
	return gc.decline(n.Format(c))
}

// Polite renders the formal address for the name: the gender's polite word
// followed by the family name ("Herr Müller"), with the title in between
// when present ("Frau Dr. Müller"). Mononyms fall back to the given names.
func (n Name) Polite(g Gender, locale Locale) (string, error) {
	word, err := g.Polite(locale)
	if err != nil {
		return "", err
	}
	parts := []string{word}
	if n.title != "" {
		parts = append(parts, n.title)
	}
	if n.familyName != "" {
		parts = append(parts, n.familyName)
	} else {
		parts = append(parts, n.givenNames...)
	}
	return strings.Join(parts, " "), nil
}

// String renders the name in the default convention.
func (n Name) String() string {
	return n.Format(DefaultConvention())
}
