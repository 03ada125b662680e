package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParseRoundTrip(t *testing.T) {
	token, err := Sign("sid-1", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
}

func TestParseRejectsExpiredAndForeignTokens(t *testing.T) {
	expired, err := Sign("sid-1", -time.Minute)
	require.NoError(t, err)
	_, err = Parse(expired)
	assert.Error(t, err)

	foreign := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{SessionID: "sid-2"})
	signed, err := foreign.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = Parse(signed)
	assert.Error(t, err)

	_, err = Parse("not-a-token")
	assert.Error(t, err)
}
