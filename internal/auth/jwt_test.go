package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TioMeko/Property-Management/internal/domain"
	apperrors "github.com/TioMeko/Property-Management/pkg/errors"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "7b0d18f4-3aa9-4a05-9d6d-6c1b33a8b6d2",
		Email: "maria@example.com",
		Name:  "Maria Santos",
		Role:  domain.RoleTenant,
	}
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret-key-for-testing", 24*time.Hour)

	token, err := m.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "7b0d18f4-3aa9-4a05-9d6d-6c1b33a8b6d2", claims.UserID)
	assert.Equal(t, domain.RoleTenant, claims.Role)
	assert.Equal(t, "Maria Santos", claims.Name)
}

func TestVerify_ExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret-key-for-testing", 24*time.Hour)

	// Issue as if 25 hours ago with a 24 hour validity window.
	m.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }
	token, err := m.Issue(testUser())
	require.NoError(t, err)

	m.now = time.Now
	claims, err := m.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", 24*time.Hour)
	verifier := NewTokenManager("secret-two", 24*time.Hour)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerify_TamperedToken(t *testing.T) {
	m := NewTokenManager("test-secret-key-for-testing", 24*time.Hour)

	token, err := m.Issue(testUser())
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	claims, err := m.Verify(tampered)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	m := NewTokenManager("test-secret-key-for-testing", 24*time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		claims, err := m.Verify(token)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	}
}

func TestIssue_FreshTokenPerLogin(t *testing.T) {
	m := NewTokenManager("test-secret-key-for-testing", 24*time.Hour)

	first := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return first }
	tokenA, err := m.Issue(testUser())
	require.NoError(t, err)

	m.now = func() time.Time { return first.Add(time.Minute) }
	tokenB, err := m.Issue(testUser())
	require.NoError(t, err)

	assert.NotEqual(t, tokenA, tokenB)
}
