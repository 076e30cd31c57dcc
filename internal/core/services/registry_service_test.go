package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/qualitec/erp-backend/internal/core/domain"
	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
	"github.com/qualitec/erp-backend/internal/core/mocks"
	"github.com/qualitec/erp-backend/internal/core/services"
)

func TestBranchService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		branchRepo := mocks.NewMockBranchRepository()
		svc := services.NewBranchService(branchRepo)

		branchRepo.On("Create", ctx, mock.MatchedBy(func(b *domain.Branch) bool {
			return b.Name == "Filial Centro" && b.Code == "CTR" && b.Active
		})).Return(&domain.Branch{ID: uuid.New(), Name: "Filial Centro", Code: "CTR", Active: true}, nil)

		branch, err := svc.Create(ctx, "Filial Centro", "ctr")

		require.NoError(t, err)
		assert.True(t, branch.Active)
		branchRepo.AssertExpectations(t)
	})

	t.Run("empty name", func(t *testing.T) {
		branchRepo := mocks.NewMockBranchRepository()
		svc := services.NewBranchService(branchRepo)

		_, err := svc.Create(ctx, "   ", "CTR")

		assert.ErrorIs(t, err, apperrors.ErrNameRequired)
		branchRepo.AssertNotCalled(t, "Create")
	})
}

func TestClientService_Create(t *testing.T) {
	ctx := context.Background()
	branchID := uuid.New()

	t.Run("branch must exist", func(t *testing.T) {
		clientRepo := mocks.NewMockClientRepository()
		branchRepo := mocks.NewMockBranchRepository()
		svc := services.NewClientService(clientRepo, branchRepo)

		branchRepo.On("GetByID", ctx, branchID).Return(nil, apperrors.ErrBranchNotFound)

		_, err := svc.Create(ctx, domain.ClientParams{
			BranchID: branchID,
			Name:     "Construtora Nova",
			Document: "12.345.678/0001-90",
		})

		assert.ErrorIs(t, err, apperrors.ErrBranchNotFound)
		clientRepo.AssertNotCalled(t, "Create")
	})

	t.Run("document is normalized to digits", func(t *testing.T) {
		clientRepo := mocks.NewMockClientRepository()
		branchRepo := mocks.NewMockBranchRepository()
		svc := services.NewClientService(clientRepo, branchRepo)

		branchRepo.On("GetByID", ctx, branchID).
			Return(&domain.Branch{ID: branchID, Active: true}, nil)
		clientRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Client) bool {
			return c.Document == "12345678000190"
		})).Return(&domain.Client{ID: uuid.New(), Document: "12345678000190"}, nil)

		_, err := svc.Create(ctx, domain.ClientParams{
			BranchID: branchID,
			Name:     "Construtora Nova",
			Document: "12.345.678/0001-90",
		})

		require.NoError(t, err)
		clientRepo.AssertExpectations(t)
	})
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	branchID := uuid.New()

	t.Run("success", func(t *testing.T) {
		employeeRepo := mocks.NewMockEmployeeRepository()
		branchRepo := mocks.NewMockBranchRepository()
		svc := services.NewEmployeeService(employeeRepo, branchRepo)

		branchRepo.On("GetByID", ctx, branchID).
			Return(&domain.Branch{ID: branchID, Active: true}, nil)
		employeeRepo.On("Create", ctx, mock.AnythingOfType("*domain.Employee")).
			Return(&domain.Employee{ID: uuid.New(), FullName: "Maria Silva", Active: true}, nil)

		employee, err := svc.Create(ctx, domain.EmployeeParams{
			BranchID:     branchID,
			FullName:     "Maria Silva",
			Registration: "QT-0042",
		})

		require.NoError(t, err)
		assert.True(t, employee.Active)
		employeeRepo.AssertExpectations(t)
	})

	t.Run("missing registration", func(t *testing.T) {
		employeeRepo := mocks.NewMockEmployeeRepository()
		branchRepo := mocks.NewMockBranchRepository()
		svc := services.NewEmployeeService(employeeRepo, branchRepo)

		branchRepo.On("GetByID", ctx, branchID).
			Return(&domain.Branch{ID: branchID, Active: true}, nil)

		_, err := svc.Create(ctx, domain.EmployeeParams{
			BranchID: branchID,
			FullName: "Maria Silva",
		})

		assert.ErrorIs(t, err, apperrors.ErrRegistrationRequired)
		employeeRepo.AssertNotCalled(t, "Create")
	})
}
