// Package person models the structural parts of a personal name and renders
// them into display strings following a configurable ordering convention.
//
// The central type is Name, an immutable-by-convention value constructed via
// New. Formatting defaults to the German convention ("Title GivenNames
// FamilyName"); family-name-first ordering is available for directory-style
// listings. Gender carries the polite address forms ("Herr"/"Frau",
// "Mister"/"Miss") used when addressing a person, and GrammaticalCase covers
// German genitive declension of a rendered name.
//
// Values are safe for concurrent reads without synchronization: nothing in
// this package mutates a Name after construction.
package person
