package services_test

import (
	"context"
	"errors"
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

type measurementFixture struct {
	contractRepo *mocks.MockContractRepository
	overtimeRepo *mocks.MockOvertimeRepository
	extraRepo    *mocks.MockExtraServiceRepository
	txManager    *mocks.MockTransactionManager

	contract *domain.Contract
	period   domain.Period
	from, to time.Time
}

func newMeasurementFixture() *measurementFixture {
	period := domain.Period{Year: 2025, Month: time.January}
	from, to := period.Range()
	return &measurementFixture{
		contractRepo: mocks.NewMockContractRepository(),
		overtimeRepo: mocks.NewMockOvertimeRepository(),
		extraRepo:    mocks.NewMockExtraServiceRepository(),
		txManager:    mocks.NewMockTransactionManager(),
		contract: &domain.Contract{
			ID:   uuid.New(),
			Name: "Obra Residencial Alfa",
		},
		period: period,
		from:   from,
		to:     to,
	}
}

func (f *measurementFixture) service() ports.MeasurementService {
	return services.NewMeasurementService(
		f.contractRepo, f.overtimeRepo, f.extraRepo, f.txManager, nil, testLogger())
}

func (f *measurementFixture) expectDerive(overtime []*domain.OvertimeRecord, extras []*domain.ExtraService) {
	ctx := context.Background()
	f.contractRepo.On("GetByID", ctx, f.contract.ID).Return(f.contract, nil)
	f.contractRepo.On("ListItems", ctx, f.contract.ID).Return([]*domain.ContractItem{
		{
			ID:            1,
			ContractID:    f.contract.ID,
			Description:   "Controle tecnológico de concreto",
			Unit:          "un",
			UnitPrice:     25,
			ContractedQty: 10,
		},
	}, nil)
	f.overtimeRepo.On("ListUnbilledByContract", ctx, f.contract.ID, f.from, f.to).Return(overtime, nil)
	f.extraRepo.On("ListUnbilledByContract", ctx, f.contract.ID, f.from, f.to).Return(extras, nil)
}

func TestMeasurementService_GetMeasurement(t *testing.T) {
	ctx := context.Background()

	t.Run("merges contract items with unbilled records", func(t *testing.T) {
		f := newMeasurementFixture()
		overtime := []*domain.OvertimeRecord{
			{
				ID:         10,
				ContractID: f.contract.ID,
				WorkedOn:   time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC),
				Hours:      2,
				Multiplier: domain.Multiplier50,
				HourlyRate: 30,
			},
		}
		f.expectDerive(overtime, []*domain.ExtraService{})

		m, err := f.service().GetMeasurement(ctx, f.contract.ID, f.period)

		require.NoError(t, err)
		require.Len(t, m.Items, 2)
		assert.InDelta(t, 340.0, m.Total, 0.001) // 250 contract + 90 overtime

		// A plain read never marks anything billed.
		f.overtimeRepo.AssertNotCalled(t, "MarkBilled")
		f.txManager.AssertNotCalled(t, "WithTransaction")
	})

	t.Run("unknown contract", func(t *testing.T) {
		f := newMeasurementFixture()
		f.contractRepo.On("GetByID", ctx, f.contract.ID).Return(nil, apperrors.ErrContractNotFound)

		_, err := f.service().GetMeasurement(ctx, f.contract.ID, f.period)

		assert.ErrorIs(t, err, apperrors.ErrContractNotFound)
	})
}

func TestMeasurementService_CloseMeasurement(t *testing.T) {
	ctx := context.Background()

	t.Run("marks merged records billed in one transaction", func(t *testing.T) {
		f := newMeasurementFixture()
		overtime := []*domain.OvertimeRecord{
			{
				ID:         10,
				ContractID: f.contract.ID,
				WorkedOn:   time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC),
				Hours:      2,
				Multiplier: domain.Multiplier50,
				HourlyRate: 30,
			},
		}
		extras := []*domain.ExtraService{
			{
				ID:          20,
				ContractID:  f.contract.ID,
				ServiceDate: time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC),
				Description: "Ensaio adicional",
				Quantity:    1,
				UnitPrice:   150,
			},
		}
		f.expectDerive(overtime, extras)

		f.txManager.On("WithTransaction", ctx, mock.Anything).Return(nil)
		f.overtimeRepo.On("MarkBilled", ctx, []int64{10}).Return(nil)
		f.extraRepo.On("MarkBilled", ctx, []int64{20}).Return(nil)

		m, err := f.service().CloseMeasurement(ctx, f.contract.ID, f.period)

		require.NoError(t, err)
		assert.InDelta(t, 490.0, m.Total, 0.001)

		f.txManager.AssertExpectations(t)
		f.overtimeRepo.AssertExpectations(t)
		f.extraRepo.AssertExpectations(t)
	})

	t.Run("nothing to bill", func(t *testing.T) {
		f := newMeasurementFixture()
		f.expectDerive([]*domain.OvertimeRecord{}, []*domain.ExtraService{})

		_, err := f.service().CloseMeasurement(ctx, f.contract.ID, f.period)

		assert.ErrorIs(t, err, apperrors.ErrNothingToBill)
		f.txManager.AssertNotCalled(t, "WithTransaction")
	})

	t.Run("transaction failure surfaces and bills nothing", func(t *testing.T) {
		f := newMeasurementFixture()
		overtime := []*domain.OvertimeRecord{
			{
				ID:         10,
				ContractID: f.contract.ID,
				WorkedOn:   time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC),
				Hours:      2,
				Multiplier: domain.Multiplier50,
				HourlyRate: 30,
			},
		}
		f.expectDerive(overtime, []*domain.ExtraService{})

		txErr := errors.New("deadlock detected")
		f.txManager.On("WithTransaction", ctx, mock.Anything).Return(txErr)

		_, err := f.service().CloseMeasurement(ctx, f.contract.ID, f.period)

		assert.ErrorIs(t, err, txErr)
		f.overtimeRepo.AssertNotCalled(t, "MarkBilled")
	})
}
