package services

import (
	"context"
	"log/slog"

	"github.com/qualitec/erp-backend/internal/core/domain"
	"github.com/qualitec/erp-backend/internal/core/ports"
)

// NonConformanceService implements the quality incident use cases.
type NonConformanceService struct {
	ncRepo       ports.NonConformanceRepository
	employeeRepo ports.EmployeeRepository
	clientRepo   ports.ClientRepository
	logger       *slog.Logger
}

var _ ports.NonConformanceService = (*NonConformanceService)(nil)

// NewNonConformanceService creates a new non-conformance service.
func NewNonConformanceService(
	ncRepo ports.NonConformanceRepository,
	employeeRepo ports.EmployeeRepository,
	clientRepo ports.ClientRepository,
	logger *slog.Logger,
) ports.NonConformanceService {
	return &NonConformanceService{
		ncRepo:       ncRepo,
		employeeRepo: employeeRepo,
		clientRepo:   clientRepo,
		logger:       logger.With("service", "nonconformance"),
	}
}

// Create registers a new incident. The raw severity is parsed at this
// boundary so nothing outside the closed set ever reaches storage; the
// attributed employee or client must exist.
func (s *NonConformanceService) Create(ctx context.Context, params ports.CreateNonConformanceParams) (*domain.NonConformance, error) {
	severity, err := domain.ParseSeverity(params.RawSeverity)
	if err != nil {
		return nil, err
	}

	if params.EmployeeID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *params.EmployeeID); err != nil {
			return nil, err
		}
	}
	if params.ClientID != nil {
		if _, err := s.clientRepo.GetByID(ctx, *params.ClientID); err != nil {
			return nil, err
		}
	}

	nc, err := domain.NewNonConformance(domain.NonConformanceParams{
		BranchID:    params.BranchID,
		EmployeeID:  params.EmployeeID,
		ClientID:    params.ClientID,
		Severity:    severity,
		OccurredOn:  params.OccurredOn,
		Description: params.Description,
	})
	if err != nil {
		return nil, err
	}

	return s.ncRepo.Create(ctx, nc)
}

// Get retrieves a single incident.
func (s *NonConformanceService) Get(ctx context.Context, id int64) (*domain.NonConformance, error) {
	return s.ncRepo.GetByID(ctx, id)
}

// List retrieves incidents matching the filters.
func (s *NonConformanceService) List(ctx context.Context, params ports.ListNonConformancesParams) ([]*domain.NonConformance, error) {
	return s.ncRepo.List(ctx, params)
}

// UpdateStatus moves an incident through its treatment flow, optionally
// recording the corrective action in the same call.
func (s *NonConformanceService) UpdateStatus(ctx context.Context, params ports.UpdateNCStatusParams) (*domain.NonConformance, error) {
	nc, err := s.ncRepo.GetByID(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	if params.CorrectiveAction != "" {
		if err := nc.SetCorrectiveAction(params.CorrectiveAction); err != nil {
			return nil, err
		}
	}

	if err := nc.UpdateStatus(params.Status); err != nil {
		return nil, err
	}

	updated, err := s.ncRepo.Update(ctx, nc)
	if err != nil {
		return nil, err
	}

	s.logger.Info("non-conformance status updated",
		"nc_id", nc.ID,
		"new_status", string(params.Status),
	)

	return updated, nil
}
