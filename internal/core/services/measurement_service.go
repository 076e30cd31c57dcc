package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/qualitec/erp-backend/internal/core/domain"
	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
	"github.com/qualitec/erp-backend/internal/core/ports"
	"github.com/qualitec/erp-backend/internal/infrastructure/metrics"
)

// MeasurementService derives monthly billing statements and closes them.
type MeasurementService struct {
	contractRepo ports.ContractRepository
	overtimeRepo ports.OvertimeRepository
	extraRepo    ports.ExtraServiceRepository
	txManager    ports.TransactionManager
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

var _ ports.MeasurementService = (*MeasurementService)(nil)

func NewMeasurementService(
	contractRepo ports.ContractRepository,
	overtimeRepo ports.OvertimeRepository,
	extraRepo ports.ExtraServiceRepository,
	txManager ports.TransactionManager,
	m *metrics.Metrics,
	logger *slog.Logger,
) ports.MeasurementService {
	return &MeasurementService{
		contractRepo: contractRepo,
		overtimeRepo: overtimeRepo,
		extraRepo:    extraRepo,
		txManager:    txManager,
		metrics:      m,
		logger:       logger.With("service", "measurement"),
	}
}

// GetMeasurement derives the billing statement for one contract and period.
// The result is never persisted; repeated calls recompute it.
func (s *MeasurementService) GetMeasurement(ctx context.Context, contractID uuid.UUID, period domain.Period) (*domain.Measurement, error) {
	measurement, _, _, err := s.derive(ctx, contractID, period)
	return measurement, err
}

// CloseMeasurement derives the statement and marks the merged overtime and
// extra-service rows billed. The two updates happen in one transaction so a
// partial close can never double-bill the next measurement.
func (s *MeasurementService) CloseMeasurement(ctx context.Context, contractID uuid.UUID, period domain.Period) (*domain.Measurement, error) {
	measurement, overtime, extras, err := s.derive(ctx, contractID, period)
	if err != nil {
		return nil, err
	}

	if len(overtime) == 0 && len(extras) == 0 {
		return nil, apperrors.ErrNothingToBill
	}

	overtimeIDs := make([]int64, 0, len(overtime))
	for _, ot := range overtime {
		overtimeIDs = append(overtimeIDs, ot.ID)
	}
	extraIDs := make([]int64, 0, len(extras))
	for _, extra := range extras {
		extraIDs = append(extraIDs, extra.ID)
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if len(overtimeIDs) > 0 {
			if err := s.overtimeRepo.MarkBilled(txCtx, overtimeIDs); err != nil {
				return err
			}
		}
		if len(extraIDs) > 0 {
			if err := s.extraRepo.MarkBilled(txCtx, extraIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordMeasurementClosed()
	}

	s.logger.Info("measurement closed",
		"contract_id", contractID.String(),
		"period", period.String(),
		"overtime_rows", len(overtimeIDs),
		"extra_service_rows", len(extraIDs),
		"total", measurement.Total,
	)

	return measurement, nil
}

func (s *MeasurementService) derive(ctx context.Context, contractID uuid.UUID, period domain.Period) (*domain.Measurement, []*domain.OvertimeRecord, []*domain.ExtraService, error) {
	if err := period.Validate(); err != nil {
		return nil, nil, nil, err
	}

	contract, err := s.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, nil, nil, err
	}

	items, err := s.contractRepo.ListItems(ctx, contractID)
	if err != nil {
		return nil, nil, nil, err
	}

	from, to := period.Range()
	overtime, err := s.overtimeRepo.ListUnbilledByContract(ctx, contractID, from, to)
	if err != nil {
		return nil, nil, nil, err
	}

	extras, err := s.extraRepo.ListUnbilledByContract(ctx, contractID, from, to)
	if err != nil {
		return nil, nil, nil, err
	}

	measurement := domain.DeriveMeasurement(contract, items, overtime, extras, period)
	return measurement, overtime, extras, nil
}
