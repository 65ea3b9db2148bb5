// Package render caches formatted name renderings so hot read paths skip
// formatting and person lookups. Entries are keyed by person, convention,
// grammatical case and locale, and are invalidated wholesale per person on
// rename or delete.
package render

import (
	"context"
	"fmt"

	"github.com/Kamduis/name-combo/pkg/domain"
	"github.com/Kamduis/name-combo/pkg/person"
)

// Key identifies one cached rendering.
type Key struct {
	PersonID   domain.PersonID
	Convention person.Convention
	Case       person.GrammaticalCase
	Locale     person.Locale
}

// String returns the flat cache key form.
func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%s:%s", k.PersonID, k.Convention, k.Case, k.Locale)
}

// Cache stores formatted renderings with a bounded lifetime.
//
// Get returns sentinel.ErrNotFound (wrapped) on miss. Invalidate drops every
// rendering for the person, regardless of convention, case or locale.
type Cache interface {
	Get(ctx context.Context, key Key) (string, error)
	Set(ctx context.Context, key Key, rendered string) error
	Invalidate(ctx context.Context, personID domain.PersonID) error
}
