package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/qualitec/erp-backend/internal/core/domain"
	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
	"github.com/qualitec/erp-backend/internal/core/mocks"
	"github.com/qualitec/erp-backend/internal/core/ports"
	"github.com/qualitec/erp-backend/internal/core/services"
)

func TestLoanService_Create(t *testing.T) {
	ctx := context.Background()
	branchID := uuid.New()
	employeeID := uuid.New()

	params := domain.LoanParams{
		BranchID:   branchID,
		EmployeeID: employeeID,
		Equipment:  "Betoneira de teste",
		LoanedAt:   time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		DueOn:      time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC),
	}

	t.Run("success", func(t *testing.T) {
		loanRepo := mocks.NewMockLoanRepository()
		employeeRepo := mocks.NewMockEmployeeRepository()
		svc := services.NewLoanService(loanRepo, employeeRepo)

		employeeRepo.On("GetByID", ctx, employeeID).
			Return(&domain.Employee{ID: employeeID, Active: true}, nil)
		loanRepo.On("Create", ctx, mock.AnythingOfType("*domain.EquipmentLoan")).
			Return(&domain.EquipmentLoan{ID: 1, EmployeeID: employeeID}, nil)

		loan, err := svc.Create(ctx, params)

		require.NoError(t, err)
		assert.Equal(t, int64(1), loan.ID)
		loanRepo.AssertExpectations(t)
	})

	t.Run("unknown employee", func(t *testing.T) {
		loanRepo := mocks.NewMockLoanRepository()
		employeeRepo := mocks.NewMockEmployeeRepository()
		svc := services.NewLoanService(loanRepo, employeeRepo)

		employeeRepo.On("GetByID", ctx, employeeID).
			Return(nil, apperrors.ErrEmployeeNotFound)

		_, err := svc.Create(ctx, params)

		assert.ErrorIs(t, err, apperrors.ErrEmployeeNotFound)
		loanRepo.AssertNotCalled(t, "Create")
	})
}

func TestLoanService_Return(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		loanRepo := mocks.NewMockLoanRepository()
		svc := services.NewLoanService(loanRepo, mocks.NewMockEmployeeRepository())

		loanedAt := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
		returnedAt := loanedAt.AddDate(0, 0, 10)
		stored := &domain.EquipmentLoan{
			ID:       5,
			LoanedAt: loanedAt,
			DueOn:    loanedAt.AddDate(0, 0, 20),
		}

		loanRepo.On("GetByID", ctx, int64(5)).Return(stored, nil)
		loanRepo.On("SetReturned", ctx, int64(5), returnedAt).Return(nil)

		loan, err := svc.Return(ctx, ports.ReturnLoanParams{ID: 5, ReturnedAt: returnedAt})

		require.NoError(t, err)
		require.NotNil(t, loan.ReturnedAt)
		assert.Equal(t, domain.LoanDevolvido, loan.Status(returnedAt))
		loanRepo.AssertExpectations(t)
	})

	t.Run("already returned", func(t *testing.T) {
		loanRepo := mocks.NewMockLoanRepository()
		svc := services.NewLoanService(loanRepo, mocks.NewMockEmployeeRepository())

		loanedAt := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
		already := loanedAt.AddDate(0, 0, 3)
		stored := &domain.EquipmentLoan{
			ID:         6,
			LoanedAt:   loanedAt,
			DueOn:      loanedAt.AddDate(0, 0, 20),
			ReturnedAt: &already,
		}

		loanRepo.On("GetByID", ctx, int64(6)).Return(stored, nil)

		_, err := svc.Return(ctx, ports.ReturnLoanParams{ID: 6, ReturnedAt: already.Add(time.Hour)})

		assert.ErrorIs(t, err, apperrors.ErrAlreadyReturned)
		loanRepo.AssertNotCalled(t, "SetReturned")
	})
}

func TestOvertimeService_Create(t *testing.T) {
	ctx := context.Background()
	branchID := uuid.New()
	employeeID := uuid.New()
	contractID := uuid.New()

	params := domain.OvertimeParams{
		EmployeeID: employeeID,
		BranchID:   branchID,
		ContractID: contractID,
		WorkedOn:   time.Date(2025, time.May, 6, 0, 0, 0, 0, time.UTC),
		Hours:      2,
		Multiplier: domain.Multiplier50,
		HourlyRate: 30,
	}

	t.Run("success", func(t *testing.T) {
		overtimeRepo := mocks.NewMockOvertimeRepository()
		employeeRepo := mocks.NewMockEmployeeRepository()
		contractRepo := mocks.NewMockContractRepository()
		svc := services.NewOvertimeService(overtimeRepo, employeeRepo, contractRepo)

		employeeRepo.On("GetByID", ctx, employeeID).
			Return(&domain.Employee{ID: employeeID, Active: true}, nil)
		contractRepo.On("GetByID", ctx, contractID).
			Return(&domain.Contract{ID: contractID, Active: true}, nil)
		overtimeRepo.On("Create", ctx, mock.AnythingOfType("*domain.OvertimeRecord")).
			Return(&domain.OvertimeRecord{ID: 1, ContractID: contractID}, nil)

		record, err := svc.Create(ctx, params)

		require.NoError(t, err)
		assert.Equal(t, int64(1), record.ID)
		overtimeRepo.AssertExpectations(t)
	})

	t.Run("unknown contract", func(t *testing.T) {
		overtimeRepo := mocks.NewMockOvertimeRepository()
		employeeRepo := mocks.NewMockEmployeeRepository()
		contractRepo := mocks.NewMockContractRepository()
		svc := services.NewOvertimeService(overtimeRepo, employeeRepo, contractRepo)

		employeeRepo.On("GetByID", ctx, employeeID).
			Return(&domain.Employee{ID: employeeID, Active: true}, nil)
		contractRepo.On("GetByID", ctx, contractID).
			Return(nil, apperrors.ErrContractNotFound)

		_, err := svc.Create(ctx, params)

		assert.ErrorIs(t, err, apperrors.ErrContractNotFound)
		overtimeRepo.AssertNotCalled(t, "Create")
	})

	t.Run("invalid multiplier", func(t *testing.T) {
		overtimeRepo := mocks.NewMockOvertimeRepository()
		employeeRepo := mocks.NewMockEmployeeRepository()
		contractRepo := mocks.NewMockContractRepository()
		svc := services.NewOvertimeService(overtimeRepo, employeeRepo, contractRepo)

		employeeRepo.On("GetByID", ctx, employeeID).
			Return(&domain.Employee{ID: employeeID, Active: true}, nil)
		contractRepo.On("GetByID", ctx, contractID).
			Return(&domain.Contract{ID: contractID, Active: true}, nil)

		bad := params
		bad.Multiplier = domain.OvertimeMultiplier(75)

		_, err := svc.Create(ctx, bad)

		assert.ErrorIs(t, err, apperrors.ErrInvalidMultiplier)
		overtimeRepo.AssertNotCalled(t, "Create")
	})
}
