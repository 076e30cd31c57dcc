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

func TestNonConformanceService_Create(t *testing.T) {
	ctx := context.Background()
	branchID := uuid.New()
	employeeID := uuid.New()
	occurredOn := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	newService := func() (ports.NonConformanceService, *mocks.MockNonConformanceRepository, *mocks.MockEmployeeRepository, *mocks.MockClientRepository) {
		ncRepo := mocks.NewMockNonConformanceRepository()
		employeeRepo := mocks.NewMockEmployeeRepository()
		clientRepo := mocks.NewMockClientRepository()
		svc := services.NewNonConformanceService(ncRepo, employeeRepo, clientRepo, testLogger())
		return svc, ncRepo, employeeRepo, clientRepo
	}

	t.Run("success with employee attribution", func(t *testing.T) {
		svc, ncRepo, employeeRepo, _ := newService()

		employeeRepo.On("GetByID", ctx, employeeID).
			Return(&domain.Employee{ID: employeeID, Active: true}, nil)
		ncRepo.On("Create", ctx, mock.AnythingOfType("*domain.NonConformance")).
			Return(&domain.NonConformance{
				ID:         1,
				BranchID:   branchID,
				EmployeeID: &employeeID,
				Severity:   domain.SeverityGrave,
				Status:     domain.NCStatusAberta,
			}, nil)

		nc, err := svc.Create(ctx, ports.CreateNonConformanceParams{
			BranchID:    branchID,
			EmployeeID:  &employeeID,
			RawSeverity: "grave",
			OccurredOn:  occurredOn,
			Description: "ensaio executado fora do procedimento",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), nc.ID)
		assert.Equal(t, domain.NCStatusAberta, nc.Status)

		ncRepo.AssertExpectations(t)
		employeeRepo.AssertExpectations(t)
	})

	t.Run("legacy critica alias is normalized before storage", func(t *testing.T) {
		svc, ncRepo, employeeRepo, _ := newService()

		employeeRepo.On("GetByID", ctx, employeeID).
			Return(&domain.Employee{ID: employeeID, Active: true}, nil)
		ncRepo.On("Create", ctx, mock.MatchedBy(func(nc *domain.NonConformance) bool {
			return nc.Severity == domain.SeverityGravissima
		})).Return(&domain.NonConformance{ID: 2, Severity: domain.SeverityGravissima}, nil)

		_, err := svc.Create(ctx, ports.CreateNonConformanceParams{
			BranchID:    branchID,
			EmployeeID:  &employeeID,
			RawSeverity: "critica",
			OccurredOn:  occurredOn,
			Description: "laudo com resultado adulterado",
		})

		require.NoError(t, err)
		ncRepo.AssertExpectations(t)
	})

	t.Run("unknown severity is rejected before any lookup", func(t *testing.T) {
		svc, ncRepo, employeeRepo, _ := newService()

		_, err := svc.Create(ctx, ports.CreateNonConformanceParams{
			BranchID:    branchID,
			EmployeeID:  &employeeID,
			RawSeverity: "moderada",
			OccurredOn:  occurredOn,
			Description: "qualquer",
		})

		assert.ErrorIs(t, err, apperrors.ErrUnknownSeverity)
		employeeRepo.AssertNotCalled(t, "GetByID")
		ncRepo.AssertNotCalled(t, "Create")
	})

	t.Run("attributed employee must exist", func(t *testing.T) {
		svc, ncRepo, employeeRepo, _ := newService()

		employeeRepo.On("GetByID", ctx, employeeID).
			Return(nil, apperrors.ErrEmployeeNotFound)

		_, err := svc.Create(ctx, ports.CreateNonConformanceParams{
			BranchID:    branchID,
			EmployeeID:  &employeeID,
			RawSeverity: "leve",
			OccurredOn:  occurredOn,
			Description: "atraso na coleta",
		})

		assert.ErrorIs(t, err, apperrors.ErrEmployeeNotFound)
		ncRepo.AssertNotCalled(t, "Create")
	})

	t.Run("attributed client must exist", func(t *testing.T) {
		svc, ncRepo, _, clientRepo := newService()
		clientID := uuid.New()

		clientRepo.On("GetByID", ctx, clientID).
			Return(nil, apperrors.ErrClientNotFound)

		_, err := svc.Create(ctx, ports.CreateNonConformanceParams{
			BranchID:    branchID,
			ClientID:    &clientID,
			RawSeverity: "media",
			OccurredOn:  occurredOn,
			Description: "acesso à obra negado",
		})

		assert.ErrorIs(t, err, apperrors.ErrClientNotFound)
		ncRepo.AssertNotCalled(t, "Create")
	})
}

func TestNonConformanceService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	newService := func() (ports.NonConformanceService, *mocks.MockNonConformanceRepository) {
		ncRepo := mocks.NewMockNonConformanceRepository()
		svc := services.NewNonConformanceService(
			ncRepo, mocks.NewMockEmployeeRepository(), mocks.NewMockClientRepository(), testLogger())
		return svc, ncRepo
	}

	t.Run("resolves with corrective action", func(t *testing.T) {
		svc, ncRepo := newService()
		employeeID := uuid.New()

		stored := &domain.NonConformance{
			ID:         7,
			EmployeeID: &employeeID,
			Severity:   domain.SeverityMedia,
			Status:     domain.NCStatusEmTratativa,
		}
		ncRepo.On("GetByID", ctx, int64(7)).Return(stored, nil)
		ncRepo.On("Update", ctx, mock.MatchedBy(func(nc *domain.NonConformance) bool {
			return nc.Status == domain.NCStatusResolvida &&
				nc.CorrectiveAction == "procedimento revisado com a equipe" &&
				nc.ResolvedAt != nil
		})).Return(stored, nil)

		_, err := svc.UpdateStatus(ctx, ports.UpdateNCStatusParams{
			ID:               7,
			Status:           domain.NCStatusResolvida,
			CorrectiveAction: "procedimento revisado com a equipe",
		})

		require.NoError(t, err)
		ncRepo.AssertExpectations(t)
	})

	t.Run("invalid transition never persists", func(t *testing.T) {
		svc, ncRepo := newService()
		employeeID := uuid.New()

		stored := &domain.NonConformance{
			ID:         8,
			EmployeeID: &employeeID,
			Severity:   domain.SeverityLeve,
			Status:     domain.NCStatusResolvida,
		}
		ncRepo.On("GetByID", ctx, int64(8)).Return(stored, nil)

		_, err := svc.UpdateStatus(ctx, ports.UpdateNCStatusParams{
			ID:     8,
			Status: domain.NCStatusEmTratativa,
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidStatusTransition)
		ncRepo.AssertNotCalled(t, "Update")
	})

	t.Run("unknown incident", func(t *testing.T) {
		svc, ncRepo := newService()

		ncRepo.On("GetByID", ctx, int64(99)).Return(nil, apperrors.ErrNonConformanceNotFound)

		_, err := svc.UpdateStatus(ctx, ports.UpdateNCStatusParams{
			ID:     99,
			Status: domain.NCStatusEmTratativa,
		})

		assert.ErrorIs(t, err, apperrors.ErrNonConformanceNotFound)
	})
}
