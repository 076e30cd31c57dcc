package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")

	userID := uuid.New()
	branchID := uuid.New()

	start := time.Now()

	token, err := tm.GenerateToken(userID, &branchID, "Maria Souza")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)

	assert.Equal(t, userID, claims.UserID)
	require.NotNil(t, claims.BranchID)
	assert.Equal(t, branchID, *claims.BranchID)
	assert.Equal(t, "Maria Souza", claims.Name)
	assert.WithinDuration(t, start.Add(time.Hour), claims.ExpiresAt.Time, 2*time.Second)
}

func TestTokenManager_HeadOfficeTokenHasNoBranch(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.GenerateToken(uuid.New(), nil, "Admin")
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Nil(t, claims.BranchID)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.GenerateToken(uuid.New(), nil, "Admin")
	require.NoError(t, err)

	other := NewTokenManager("another-secret")
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
