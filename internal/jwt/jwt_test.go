package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/Kamduis/name-combo/pkg/domain-errors"
)

func newTestService() *Service {
	return NewService("test-signing-key", "name-combo", "name-combo-api")
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateAccessToken("editor@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "editor@example.com", claims.Subject)
	assert.Equal(t, "name-combo", claims.Issuer)
}

func TestValidateToken_Errors(t *testing.T) {
	svc := newTestService()

	t.Run("rejects expired token", func(t *testing.T) {
		token, err := svc.GenerateAccessToken("editor@example.com", -time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("rejects token signed with different key", func(t *testing.T) {
		other := NewService("other-key", "name-combo", "name-combo-api")
		token, err := other.GenerateAccessToken("editor@example.com", time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func TestMiddlewareAdapter(t *testing.T) {
	svc := newTestService()
	adapter := NewMiddlewareAdapter(svc)

	token, err := svc.GenerateAccessToken("editor@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := adapter.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "editor@example.com", claims.Subject)
}
