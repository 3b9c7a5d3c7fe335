package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/inkwell/internal/shared"
)

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec("topsecret", time.Hour)

	token, err := codec.Issue(42, "Ada", shared.RoleAdmin)
	require.NoError(t, err)

	claims, failure := codec.Verify(token)
	require.Nil(t, failure)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, shared.RoleAdmin, claims.Role)
	assert.NotNil(t, claims.IssuedAt)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestTokenDefaultTTL(t *testing.T) {
	codec := NewTokenCodec("topsecret", 0)
	issued := time.Now()

	token, err := codec.Issue(1, "Ada", shared.RoleUser)
	require.NoError(t, err)

	claims, failure := codec.Verify(token)
	require.Nil(t, failure)
	expected := issued.Add(DefaultTokenTTL)
	assert.WithinDuration(t, expected, claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenExpired(t *testing.T) {
	codec := NewTokenCodec("topsecret", time.Hour)
	token, err := codec.Issue(1, "Ada", shared.RoleUser)
	require.NoError(t, err)

	codec.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	claims, failure := codec.Verify(token)
	assert.Nil(t, claims)
	require.NotNil(t, failure)
	assert.Equal(t, ReasonExpired, failure.Reason)
}

func TestTokenSignatureInvalid(t *testing.T) {
	issuer := NewTokenCodec("secret-a", time.Hour)
	verifier := NewTokenCodec("secret-b", time.Hour)

	token, err := issuer.Issue(1, "Ada", shared.RoleUser)
	require.NoError(t, err)

	claims, failure := verifier.Verify(token)
	assert.Nil(t, claims)
	require.NotNil(t, failure)
	assert.Equal(t, ReasonSignatureInvalid, failure.Reason)
}

func TestTokenMalformed(t *testing.T) {
	codec := NewTokenCodec("topsecret", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		claims, failure := codec.Verify(raw)
		assert.Nil(t, claims)
		require.NotNil(t, failure, "input %q", raw)
		assert.Equal(t, ReasonMalformed, failure.Reason, "input %q", raw)
	}
}
