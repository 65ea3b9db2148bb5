package person

import (
	"fmt"
	"strings"
)

// GrammaticalCase selects the German grammatical case a rendered name is
// declined into. Only the genitive changes the surface form; dative and
// accusative of proper names are identical to the nominative.
type GrammaticalCase string

// Supported grammatical cases.
const (
	CaseNominative GrammaticalCase = "nominative"
	CaseGenitive   GrammaticalCase = "genitive"
)

var validCases = map[GrammaticalCase]bool{
	CaseNominative: true,
	CaseGenitive:   true,
}

// ParseGrammaticalCase constructs a GrammaticalCase from external input. An
// empty string selects the nominative. Unknown values fail with
// ErrInvalidName.
func ParseGrammaticalCase(s string) (GrammaticalCase, error) {
	if s == "" {
		return CaseNominative, nil
	}
	c := GrammaticalCase(s)
	if !validCases[c] {
		return "", fmt.Errorf("%w: unknown grammatical case %q", ErrInvalidName, s)
	}
	return c, nil
}

// IsValid checks if the case is one of the supported values.
func (c GrammaticalCase) IsValid() bool {
	return validCases[c]
}

// String returns the string representation of the case.
func (c GrammaticalCase) String() string {
	return string(c)
}

// decline applies the case to an already formatted name. The German genitive
// appends "s" to the final word, or an apostrophe when that word already ends
// in an s sound (s, ß, x, z): "Anna Müller" -> "Anna Müllers",
// "Klaus" -> "Klaus'".
func (c GrammaticalCase) decline(formatted string) string {
	if c != CaseGenitive || formatted == "" {
		return formatted
	}
	lower := strings.ToLower(formatted)
	switch {
	case strings.HasSuffix(lower, "s"),
		strings.HasSuffix(lower, "ß"),
		strings.HasSuffix(lower, "x"),
		strings.HasSuffix(lower, "z"):
		return formatted + "'"
	default:
		return formatted + "s"
	}
}
