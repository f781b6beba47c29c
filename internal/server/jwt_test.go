package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/admissions-advisor/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(t *testing.T, expirationHours int) *JWTService {
	t.Helper()
	cfg, err := config.NewJWTConfig(testJWTSecret, expirationHours)
	require.NoError(t, err)
	return NewJWTService(cfg)
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := setupTestJWTService(t, 24)
	profileID := uuid.New()

	token, err := service.GenerateToken(profileID)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, profileID, claims.ProfileID)
	assert.Equal(t, profileID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_GenerateToken_UniquePerCall(t *testing.T) {
	service := setupTestJWTService(t, 24)
	profileID := uuid.New()

	token1, err := service.GenerateToken(profileID)
	require.NoError(t, err)
	token2, err := service.GenerateToken(profileID)
	require.NoError(t, err)

	assert.NotEqual(t, token1, token2)
}

func TestJWTService_ValidateToken_InvalidSignature(t *testing.T) {
	service := setupTestJWTService(t, 24)
	token, err := service.GenerateToken(uuid.New())
	require.NoError(t, err)

	otherCfg, err := config.NewJWTConfig("a-completely-different-secret", 24)
	require.NoError(t, err)
	_, err = NewJWTService(otherCfg).ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token signature")
}

func TestJWTService_ValidateToken_Malformed(t *testing.T) {
	service := setupTestJWTService(t, 24)

	for _, token := range []string{"", "not.a.jwt", "abc"} {
		_, err := service.ValidateToken(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestJWTService_TokenExpiration(t *testing.T) {
	service := setupTestJWTService(t, 1)
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issued }

	token, err := service.GenerateToken(uuid.New())
	require.NoError(t, err)

	service.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = service.ValidateToken(token)
	require.NoError(t, err)

	service.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = service.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	service := setupTestJWTService(t, 24)

	claims := &Claims{
		ProfileID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = service.ValidateToken(none)
	assert.Error(t, err)
}

func TestJWTService_RequiresProfileClaim(t *testing.T) {
	service := setupTestJWTService(t, 24)

	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile_id")
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, 24)
	profileID := uuid.New()
	token, err := service.GenerateToken(profileID)
	require.NoError(t, err)

	got, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, profileID, got.GetProfileID())

	_, err = service.AsTokenValidator().ValidateToken("garbage")
	assert.Error(t, err)
}
