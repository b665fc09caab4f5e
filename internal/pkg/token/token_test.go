package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateValidate(t *testing.T) {
	signed, err := GenerateToken("alice", "s3cret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(signed, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice", claims.Subject)
}

func TestValidate_WrongSecret(t *testing.T) {
	signed, err := GenerateToken("alice", "s3cret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(signed, "other")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Expired(t *testing.T) {
	signed, err := GenerateToken("alice", "s3cret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(signed, "s3cret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsNoneAlg(t *testing.T) {
	claims := &Claims{Username: "mallory", RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateToken(signed, "s3cret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerate_RequiresUsername(t *testing.T) {
	_, err := GenerateToken("", "s3cret", time.Hour)
	assert.Error(t, err)
}
