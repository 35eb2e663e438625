package utils

import (
	"testing"
	"time"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	identity := domain.Identity{UserID: "user-1", Role: domain.RoleSchoolAdmin, SchoolID: "school-1"}

	token, err := GenerateJWT(identity, "secret", time.Hour, "school-fee-app")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, identity, claims.Identity())
	assert.Equal(t, "school-fee-app", claims.Issuer)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	valid := domain.Identity{UserID: "user-1", Role: domain.RoleParent, SchoolID: "school-1"}

	wrongSecret, err := GenerateJWT(valid, "other", time.Hour, "iss")
	require.NoError(t, err)
	expired, err := GenerateJWT(valid, "secret", -time.Minute, "iss")
	require.NoError(t, err)
	badRole, err := GenerateJWT(domain.Identity{UserID: "user-1", Role: "janitor"}, "secret", time.Hour, "iss")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(wrongSecret, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = ParseAndValidateJWT(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = ParseAndValidateJWT(badRole, "secret")
	assert.Error(t, err)

	_, err = ParseAndValidateJWT("not-a-token", "secret")
	assert.Error(t, err)
}
