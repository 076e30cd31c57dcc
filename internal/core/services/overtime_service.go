package services

import (
	"context"

	"github.com/qualitec/erp-backend/internal/core/domain"
	"github.com/qualitec/erp-backend/internal/core/ports"
)

// OvertimeService implements the overtime tracking use cases.
type OvertimeService struct {
	overtimeRepo ports.OvertimeRepository
	employeeRepo ports.EmployeeRepository
	contractRepo ports.ContractRepository
}

var _ ports.OvertimeService = (*OvertimeService)(nil)

func NewOvertimeService(
	overtimeRepo ports.OvertimeRepository,
	employeeRepo ports.EmployeeRepository,
	contractRepo ports.ContractRepository,
) ports.OvertimeService {
	return &OvertimeService{
		overtimeRepo: overtimeRepo,
		employeeRepo: employeeRepo,
		contractRepo: contractRepo,
	}
}

// Create records an overtime entry against a contract.
func (s *OvertimeService) Create(ctx context.Context, params domain.OvertimeParams) (*domain.OvertimeRecord, error) {
	if _, err := s.employeeRepo.GetByID(ctx, params.EmployeeID); err != nil {
		return nil, err
	}
	if _, err := s.contractRepo.GetByID(ctx, params.ContractID); err != nil {
		return nil, err
	}

	record, err := domain.NewOvertimeRecord(params)
	if err != nil {
		return nil, err
	}
	return s.overtimeRepo.Create(ctx, record)
}

// List retrieves overtime records matching the filters.
func (s *OvertimeService) List(ctx context.Context, params ports.ListOvertimeParams) ([]*domain.OvertimeRecord, error) {
	return s.overtimeRepo.List(ctx, params)
}

// ExtraServiceManager implements the out-of-contract service use cases.
type ExtraServiceManager struct {
	extraRepo    ports.ExtraServiceRepository
	contractRepo ports.ContractRepository
}

var _ ports.ExtraServiceService = (*ExtraServiceManager)(nil)

func NewExtraServiceManager(
	extraRepo ports.ExtraServiceRepository,
	contractRepo ports.ContractRepository,
) ports.ExtraServiceService {
	return &ExtraServiceManager{
		extraRepo:    extraRepo,
		contractRepo: contractRepo,
	}
}

// Create records an extra service against a contract.
func (s *ExtraServiceManager) Create(ctx context.Context, params domain.ExtraServiceParams) (*domain.ExtraService, error) {
	if _, err := s.contractRepo.GetByID(ctx, params.ContractID); err != nil {
		return nil, err
	}

	extra, err := domain.NewExtraService(params)
	if err != nil {
		return nil, err
	}
	return s.extraRepo.Create(ctx, extra)
}

// List retrieves extra services matching the filters.
func (s *ExtraServiceManager) List(ctx context.Context, params ports.ListExtraServicesParams) ([]*domain.ExtraService, error) {
	return s.extraRepo.List(ctx, params)
}
