package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qualitec/erp-backend/internal/core/domain"
	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
	"github.com/qualitec/erp-backend/internal/core/ports"
)

func TestLoanRepository_CreateAndReturn(t *testing.T) {
	ctx := context.Background()
	repo := NewLoanRepository(testPool)

	branch := createTestBranch(t, "Filial Barretos")
	employee := createTestEmployee(t, branch.ID, "Gustavo Alves")

	loan, err := domain.NewEquipmentLoan(domain.LoanParams{
		BranchID:   branch.ID,
		EmployeeID: employee.ID,
		Equipment:  "Prensa hidráulica portátil",
		LoanedAt:   time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		DueOn:      time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	created, err := repo.Create(ctx, loan)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Nil(t, created.ReturnedAt)

	open, err := repo.List(ctx, ports.ListLoansParams{
		BranchID: &branch.ID,
		OnlyOpen: true,
		Limit:    10,
	})
	require.NoError(t, err)
	require.Len(t, open, 1)

	returnedAt := time.Date(2025, time.April, 10, 15, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SetReturned(ctx, created.ID, returnedAt))

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.ReturnedAt)
	assert.True(t, returnedAt.Equal(*fetched.ReturnedAt))

	open, err = repo.List(ctx, ports.ListLoansParams{
		BranchID: &branch.ID,
		OnlyOpen: true,
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Empty(t, open)

	// A second return hits zero rows.
	err = repo.SetReturned(ctx, created.ID, returnedAt.Add(time.Hour))
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReturned)
}

func TestLoanRepository_GetByID_NotFound(t *testing.T) {
	repo := NewLoanRepository(testPool)

	_, err := repo.GetByID(context.Background(), 424242)
	assert.ErrorIs(t, err, apperrors.ErrLoanNotFound)
}
