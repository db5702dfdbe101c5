package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lezzetli/recipe-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret        = "test-secret-key-for-jwt-testing"
	testWrongSecret   = "wrong-secret-key-for-jwt-testing"
	testTokenDuration = 1 * time.Hour
)

func newTokenUser(isAdmin bool) *models.User {
	return &models.User{
		ID:       uuid.New(),
		Username: "testuser",
		Email:    "test@example.com",
		IsAdmin:  isAdmin,
	}
}

func TestGenerateToken_Success(t *testing.T) {
	user := newTokenUser(false)

	token, err := GenerateToken(user, TokenTypeAccess, testSecret, testTokenDuration)

	require.NoError(t, err, "GenerateToken should not return error for valid input")
	assert.NotEmpty(t, token, "Token should not be empty")
	assert.Contains(t, token, ".", "JWT token should contain dots")
}

func TestValidateToken_Success(t *testing.T) {
	user := newTokenUser(true)
	token, err := GenerateToken(user, TokenTypeAccess, testSecret, testTokenDuration)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret, TokenTypeAccess)

	require.NoError(t, err, "ValidateToken should not return error for valid token")
	require.NotNil(t, claims)
	assert.Equal(t, user.ID, claims.UserID, "UserID should match")
	assert.Equal(t, user.Username, claims.Username, "Username should match")
	assert.True(t, claims.IsAdmin, "IsAdmin should match")
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.True(t, claims.ExpiresAt.Time.After(time.Now()), "Token should not be expired")
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	user := newTokenUser(false)
	token, err := GenerateToken(user, TokenTypeAccess, testSecret, -1*time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret, TokenTypeAccess)

	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims, "Claims should be nil for expired token")
}

func TestValidateToken_WrongSecret(t *testing.T) {
	user := newTokenUser(false)
	token, err := GenerateToken(user, TokenTypeAccess, testSecret, testTokenDuration)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testWrongSecret, TokenTypeAccess)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims, "Claims should be nil when secret is wrong")
}

// A refresh token must never pass access-token validation, and vice versa.
func TestValidateToken_TypeConfusion(t *testing.T) {
	user := newTokenUser(false)

	refreshToken, err := GenerateToken(user, TokenTypeRefresh, testSecret, testTokenDuration)
	require.NoError(t, err)
	accessToken, err := GenerateToken(user, TokenTypeAccess, testSecret, testTokenDuration)
	require.NoError(t, err)

	claims, err := ValidateToken(refreshToken, testSecret, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenUse, "Refresh token should not validate as access token")
	assert.Nil(t, claims)

	claims, err = ValidateToken(accessToken, testSecret, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenUse, "Access token should not validate as refresh token")
	assert.Nil(t, claims)
}

func TestValidateToken_InvalidToken(t *testing.T) {
	invalidTokens := []string{
		"",
		"invalid.token.here",
		"not-a-jwt-token",
		"a.b",
	}

	for _, invalidToken := range invalidTokens {
		t.Run(invalidToken, func(t *testing.T) {
			claims, err := ValidateToken(invalidToken, testSecret, TokenTypeAccess)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestValidateToken_TamperedToken(t *testing.T) {
	user := newTokenUser(false)
	token, err := GenerateToken(user, TokenTypeAccess, testSecret, testTokenDuration)
	require.NoError(t, err)

	tamperedToken := token[:len(token)-5] + "XXXXX"

	claims, err := ValidateToken(tamperedToken, testSecret, TokenTypeAccess)
	assert.Error(t, err, "ValidateToken should return error for tampered token")
	assert.Nil(t, claims)
}

func BenchmarkGenerateToken(b *testing.B) {
	user := newTokenUser(false)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = GenerateToken(user, TokenTypeAccess, testSecret, testTokenDuration)
	}
}

func BenchmarkValidateToken(b *testing.B) {
	user := newTokenUser(false)
	token, _ := GenerateToken(user, TokenTypeAccess, testSecret, testTokenDuration)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ValidateToken(token, testSecret, TokenTypeAccess)
	}
}
