package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
)

func TestContractRepository_GetByIDAndItems(t *testing.T) {
	ctx := context.Background()
	repo := NewContractRepository(testPool)

	branch := createTestBranch(t, "Filial Piracicaba")
	client := createTestClient(t, branch.ID, "Construtora Theta")
	contract := createTestContract(t, branch.ID, client.ID, "Obra Theta")
	createTestContractItem(t, contract.ID, "Controle tecnológico de concreto", 25.50, 100)
	createTestContractItem(t, contract.ID, "Ensaio de compactação", 80, 10)

	fetched, err := repo.GetByID(ctx, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, "Obra Theta", fetched.Name)
	assert.Equal(t, client.ID, fetched.ClientID)

	items, err := repo.ListItems(ctx, contract.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Controle tecnológico de concreto", items[0].Description)
	assert.InDelta(t, 2550.0, items[0].MonthlyTotal(), 0.001)
}

func TestContractRepository_GetByID_NotFound(t *testing.T) {
	repo := NewContractRepository(testPool)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrContractNotFound)
}

func TestContractRepository_ListScopesByBranch(t *testing.T) {
	ctx := context.Background()
	repo := NewContractRepository(testPool)

	branch := createTestBranch(t, "Filial Araraquara")
	client := createTestClient(t, branch.ID, "Construtora Iota")
	contract := createTestContract(t, branch.ID, client.ID, "Obra Iota")

	scoped, err := repo.List(ctx, &branch.ID, true)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, contract.ID, scoped[0].ID)
}
