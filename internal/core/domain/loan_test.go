package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qualitec/erp-backend/internal/core/domain"
	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
)

func validLoanParams() domain.LoanParams {
	return domain.LoanParams{
		BranchID:   uuid.New(),
		EmployeeID: uuid.New(),
		Equipment:  "Esclerômetro Schmidt",
		LoanedAt:   time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		DueOn:      time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewEquipmentLoan(t *testing.T) {
	t.Run("valid loan", func(t *testing.T) {
		loan, err := domain.NewEquipmentLoan(validLoanParams())
		require.NoError(t, err)
		assert.Nil(t, loan.ReturnedAt)
	})

	t.Run("due date before loan date", func(t *testing.T) {
		params := validLoanParams()
		params.DueOn = params.LoanedAt.AddDate(0, 0, -1)

		_, err := domain.NewEquipmentLoan(params)
		assert.ErrorIs(t, err, apperrors.ErrDueBeforeLoan)
	})

	t.Run("missing equipment", func(t *testing.T) {
		params := validLoanParams()
		params.Equipment = "  "

		_, err := domain.NewEquipmentLoan(params)
		assert.ErrorIs(t, err, apperrors.ErrEquipmentRequired)
	})
}

func TestEquipmentLoan_Status(t *testing.T) {
	loan, err := domain.NewEquipmentLoan(validLoanParams())
	require.NoError(t, err)

	onTime := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, domain.LoanEmprestado, loan.Status(onTime))
	assert.Equal(t, domain.LoanAtrasado, loan.Status(late))

	require.NoError(t, loan.Return(onTime))
	assert.Equal(t, domain.LoanDevolvido, loan.Status(late))
}

func TestEquipmentLoan_Return(t *testing.T) {
	loan, err := domain.NewEquipmentLoan(validLoanParams())
	require.NoError(t, err)

	t.Run("return before loan date", func(t *testing.T) {
		err := loan.Return(loan.LoanedAt.AddDate(0, 0, -1))
		assert.ErrorIs(t, err, apperrors.ErrReturnBeforeLoan)
	})

	t.Run("successful return", func(t *testing.T) {
		at := loan.LoanedAt.AddDate(0, 0, 5)
		require.NoError(t, loan.Return(at))
		require.NotNil(t, loan.ReturnedAt)
		assert.Equal(t, at, *loan.ReturnedAt)
	})

	t.Run("double return", func(t *testing.T) {
		err := loan.Return(loan.LoanedAt.AddDate(0, 0, 6))
		assert.ErrorIs(t, err, apperrors.ErrAlreadyReturned)
	})
}
