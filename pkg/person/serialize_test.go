package person

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_RoundTrip(t *testing.T) {
	names := []Name{
		MustNew([]string{"Anna"}, "Müller", WithTitle("Dr.")),
		MustNew([]string{"Anna", "Maria"}, "Müller"),
		MustNew([]string{"Hans"}, "Meier", WithSuffix("jr.")),
		MustNew([]string{"Madonna"}, "", AllowEmptyFamilyName()),
	}

	for _, n := range names {
		t.Run(n.String(), func(t *testing.T) {
			data, err := Serialize(n)
			require.NoError(t, err)

			got, err := Deserialize(data)
			require.NoError(t, err)
			assert.True(t, n.Equal(got), "round trip must preserve every component")
		})
	}
}

func TestSerialize_WireSchema(t *testing.T) {
	n := MustNew([]string{"Anna"}, "Müller", WithTitle("Dr."))

	data, err := Serialize(n)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "Dr.", fields["title"])
	assert.Equal(t, []any{"Anna"}, fields["given_names"])
	assert.Equal(t, "Müller", fields["family_name"])
	assert.NotContains(t, fields, "suffix", "empty optional fields are omitted")
}

func TestDeserialize_Errors(t *testing.T) {
	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, err := Deserialize([]byte(`{"given_names": [`))
		assert.ErrorIs(t, err, ErrDeserialization)
	})

	t.Run("rejects payload without given names", func(t *testing.T) {
		_, err := Deserialize([]byte(`{"family_name":"Müller"}`))
		assert.ErrorIs(t, err, ErrDeserialization)
	})

	t.Run("rejects blank given name entry", func(t *testing.T) {
		_, err := Deserialize([]byte(`{"given_names":[""],"family_name":"Müller"}`))
		assert.ErrorIs(t, err, ErrDeserialization)
	})

	t.Run("accepts mononym payload", func(t *testing.T) {
		n, err := Deserialize([]byte(`{"given_names":["Madonna"]}`))
		require.NoError(t, err)
		assert.Equal(t, "Madonna", n.String())
	})
}

func TestName_UnmarshalInStruct(t *testing.T) {
	// Name embeds in larger JSON documents via its Marshaler/Unmarshaler.
	type record struct {
		Name Name `json:"name"`
	}

	in := record{Name: MustNew([]string{"Anna"}, "Müller")}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out record
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, in.Name.Equal(out.Name))
}
