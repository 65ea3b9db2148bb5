package person

import "errors"

// Sentinel errors for name construction and rendering. Callers match with
// errors.Is; service layers translate them into coded domain errors at the
// boundary.
//
//   - ErrInvalidName: construction input violates a name invariant
//   - ErrDeserialization: serialized payload is malformed or violates the schema
//   - ErrUnsupportedLocale: the requested locale has no localization data
//   - ErrNotExpressible: the value has no rendering in the requested form
//     (e.g. a polite address for an undefined gender)
var (
	ErrInvalidName       = errors.New("invalid name")
	ErrDeserialization   = errors.New("malformed name payload")
	ErrUnsupportedLocale = errors.New("locale not supported")
	ErrNotExpressible    = errors.New("not expressible")
)
