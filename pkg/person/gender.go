package person

import "fmt"

// Gender provides gender differentiation of a name. It drives the polite
// address forms used when formally addressing a person.
type Gender string

// The supported subset of genders.
const (
	GenderUndefined Gender = "undefined"
	GenderMale      Gender = "male"
	GenderFemale    Gender = "female"
	GenderNeutral   Gender = "neutral"
	GenderOther     Gender = "other"
)

// validGenders is the single source of truth for supported genders.
var validGenders = map[Gender]bool{
	GenderUndefined: true,
	GenderMale:      true,
	GenderFemale:    true,
	GenderNeutral:   true,
	GenderOther:     true,
}

// AllGenders returns all supported genders in stable order.
func AllGenders() []Gender {
	return []Gender{GenderUndefined, GenderMale, GenderFemale, GenderNeutral, GenderOther}
}

// ParseGender constructs a Gender from external input. An empty string
// selects GenderUndefined. Unknown values fail with ErrInvalidName.
func ParseGender(s string) (Gender, error) {
	if s == "" {
		return GenderUndefined, nil
	}
	g := Gender(s)
	if !g.IsValid() {
		return "", fmt.Errorf("%w: unknown gender %q", ErrInvalidName, s)
	}
	return g, nil
}

// IsValid checks if the gender is one of the supported values.
func (g Gender) IsValid() bool {
	return validGenders[g]
}

// String returns the lowercase English word for the gender.
func (g Gender) String() string {
	return string(g)
}

// politeForms maps language -> gender -> address word. Genders without an
// entry have no polite address.
var politeForms = map[string]map[Gender]string{
	"en": {
		GenderMale:   "Mister",
		GenderFemale: "Miss",
	},
	"de": {
		GenderMale:   "Herr",
		GenderFemale: "Frau",
	},
}

// Polite returns the polite address word for the gender in the given locale
// ("Herr" for male in German). Genders without an address form fail with
// ErrNotExpressible; locales without localization data fail with
// ErrUnsupportedLocale.
func (g Gender) Polite(locale Locale) (string, error) {
	forms, ok := politeForms[locale.Language()]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
	}
	form, ok := forms[g]
	if !ok {
		return "", fmt.Errorf("%w: gender %s has no polite address", ErrNotExpressible, g)
	}
	return form, nil
}

// Symbol returns the symbol representing the gender.
func (g Gender) Symbol() string {
	switch g {
	case GenderMale:
		return "♂"
	case GenderFemale:
		return "♀"
	case GenderOther:
		return "⚧"
	default:
		return "⚪"
	}
}
