package person

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllGenders(t *testing.T) {
	all := AllGenders()
	require.NotEmpty(t, all)
	for _, g := range all {
		assert.True(t, g.IsValid())
	}
}

func TestGender_Polite(t *testing.T) {
	tests := []struct {
		gender Gender
		locale Locale
		want   string
	}{
		{GenderMale, Locale("en-US"), "Mister"},
		{GenderFemale, Locale("en-US"), "Miss"},
		{GenderMale, Locale("de-DE"), "Herr"},
		{GenderFemale, Locale("de-DE"), "Frau"},
	}
	for _, tt := range tests {
		got, err := tt.gender.Polite(tt.locale)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := GenderNeutral.Polite(LocaleGerman)
	assert.ErrorIs(t, err, ErrNotExpressible)
	_, err = GenderOther.Polite(LocaleGerman)
	assert.ErrorIs(t, err, ErrNotExpressible)
	_, err = GenderUndefined.Polite(LocaleEnglish)
	assert.ErrorIs(t, err, ErrNotExpressible)

	_, err = GenderMale.Polite(Locale("es"))
	assert.ErrorIs(t, err, ErrUnsupportedLocale)
}

func TestGender_Symbol(t *testing.T) {
	assert.Equal(t, "♂", GenderMale.Symbol())
	assert.Equal(t, "♀", GenderFemale.Symbol())
	assert.Equal(t, "⚪", GenderNeutral.Symbol())
	assert.Equal(t, "⚪", GenderUndefined.Symbol())
	assert.Equal(t, "⚧", GenderOther.Symbol())
}

func TestParseGender(t *testing.T) {
	t.Run("empty selects undefined", func(t *testing.T) {
		g, err := ParseGender("")
		require.NoError(t, err)
		assert.Equal(t, GenderUndefined, g)
	})

	t.Run("parses lowercase words", func(t *testing.T) {
		g, err := ParseGender("female")
		require.NoError(t, err)
		assert.Equal(t, GenderFemale, g)
	})

	t.Run("rejects unknown value", func(t *testing.T) {
		_, err := ParseGender("unknown")
		assert.ErrorIs(t, err, ErrInvalidName)
	})
}

func TestParseLocale(t *testing.T) {
	t.Run("empty falls back to english", func(t *testing.T) {
		l, err := ParseLocale("")
		require.NoError(t, err)
		assert.Equal(t, LocaleEnglish, l)
	})

	t.Run("tolerates region subtag", func(t *testing.T) {
		l, err := ParseLocale("de-DE")
		require.NoError(t, err)
		assert.Equal(t, "de", l.Language())
	})

	t.Run("rejects unsupported language", func(t *testing.T) {
		_, err := ParseLocale("fr")
		assert.ErrorIs(t, err, ErrUnsupportedLocale)
	})
}
