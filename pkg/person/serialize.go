package person

import (
	"encoding/json"
	"errors"
	"fmt"
)

// wireName is the stable serialized schema: a field-for-field mapping of the
// name components. It is the only shape this package reads or writes.
type wireName struct {
	Title      string   `json:"title,omitempty"`
	GivenNames []string `json:"given_names"`
	FamilyName string   `json:"family_name,omitempty"`
	Suffix     string   `json:"suffix,omitempty"`
}

// Serialize encodes the name into its JSON wire representation.
func Serialize(n Name) ([]byte, error) {
	return json.Marshal(n)
}

// Deserialize decodes a JSON wire representation produced by Serialize.
// Malformed input and input violating the name invariants fail with
// ErrDeserialization. Deserialize(Serialize(n)) yields a name equal to n.
func Deserialize(data []byte) (Name, error) {
	var n Name
	if err := json.Unmarshal(data, &n); err != nil {
		if errors.Is(err, ErrDeserialization) {
			return Name{}, err
		}
		return Name{}, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	return n, nil
}

// MarshalJSON implements json.Marshaler using the wire schema.
func (n Name) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireName{
		Title:      n.title,
		GivenNames: n.givenNames,
		FamilyName: n.familyName,
		Suffix:     n.suffix,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Payloads that do not satisfy the
// name invariants fail with ErrDeserialization; a missing family name is
// accepted as a mononym since the payload carries no construction flags.
func (n *Name) UnmarshalJSON(data []byte) error {
	var w wireName
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	parsed, err := New(w.GivenNames, w.FamilyName,
		WithTitle(w.Title), WithSuffix(w.Suffix), AllowEmptyFamilyName())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	*n = parsed
	return nil
}
