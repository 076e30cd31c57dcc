package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
)

func TestBranchRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewBranchRepository(testPool)

	created := createTestBranch(t, "Filial Campinas")

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Filial Campinas", fetched.Name)
	assert.Equal(t, "TST", fetched.Code)
	assert.True(t, fetched.Active)
}

func TestBranchRepository_GetByID_NotFound(t *testing.T) {
	repo := NewBranchRepository(testPool)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrBranchNotFound)
}

func TestBranchRepository_SetActive(t *testing.T) {
	ctx := context.Background()
	repo := NewBranchRepository(testPool)

	branch := createTestBranch(t, "Filial Sorocaba")

	require.NoError(t, repo.SetActive(ctx, branch.ID, false))

	fetched, err := repo.GetByID(ctx, branch.ID)
	require.NoError(t, err)
	assert.False(t, fetched.Active)

	// Deactivated branches drop out of the active-only listing.
	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	for _, b := range active {
		assert.NotEqual(t, branch.ID, b.ID)
	}

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	found := false
	for _, b := range all {
		if b.ID == branch.ID {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBranchRepository_SetActive_NotFound(t *testing.T) {
	repo := NewBranchRepository(testPool)

	err := repo.SetActive(context.Background(), uuid.New(), false)
	assert.ErrorIs(t, err, apperrors.ErrBranchNotFound)
}
