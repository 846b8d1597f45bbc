package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alshuwaie/qat-ledger-api/internal/models"
)

var testJWTConfig = models.JWTConfig{
	SecretKey: "test-secret",
	Issuer:    "qat-ledger",
	Audience:  "qat-ledger-app",
	Algorithm: "HS256",
	Expiry:    time.Hour,
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPassword("s3cret", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	user := models.JWT{ID: 5, Name: "مدير", Username: "manager", Role: "manager"}

	token, err := GenerateJWT(user, testJWTConfig)
	require.NoError(t, err)

	parsed, err := ParseJWT(token, testJWTConfig)
	require.NoError(t, err)
	assert.Equal(t, int64(5), parsed.ID)
	assert.Equal(t, "manager", parsed.Username)
	assert.Equal(t, "qat-ledger", parsed.Issuer)
}

func TestParseJWTRejectsBadSecret(t *testing.T) {
	token, err := GenerateJWT(models.JWT{ID: 1, Username: "x"}, testJWTConfig)
	require.NoError(t, err)

	other := testJWTConfig
	other.SecretKey = "different"
	_, err = ParseJWT(token, other)
	assert.Error(t, err)
}

func TestGetBearerToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	_, err := GetBearerToken(r)
	assert.Error(t, err)

	r.Header.Set("Authorization", "Bearer abc.def.ghi")
	token, err := GetBearerToken(r)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	r.Header.Set("Authorization", "Basic abc")
	_, err = GetBearerToken(r)
	assert.Error(t, err)
}
