package services

import (
	"context"

	"github.com/qualitec/erp-backend/internal/core/domain"
	"github.com/qualitec/erp-backend/internal/core/ports"
)

// LoanService implements the equipment loan use cases.
type LoanService struct {
	loanRepo     ports.LoanRepository
	employeeRepo ports.EmployeeRepository
}

var _ ports.LoanService = (*LoanService)(nil)

func NewLoanService(loanRepo ports.LoanRepository, employeeRepo ports.EmployeeRepository) ports.LoanService {
	return &LoanService{
		loanRepo:     loanRepo,
		employeeRepo: employeeRepo,
	}
}

// Create registers an equipment loan to an employee.
func (s *LoanService) Create(ctx context.Context, params domain.LoanParams) (*domain.EquipmentLoan, error) {
	if _, err := s.employeeRepo.GetByID(ctx, params.EmployeeID); err != nil {
		return nil, err
	}

	loan, err := domain.NewEquipmentLoan(params)
	if err != nil {
		return nil, err
	}
	return s.loanRepo.Create(ctx, loan)
}

// List retrieves loans matching the filters.
func (s *LoanService) List(ctx context.Context, params ports.ListLoansParams) ([]*domain.EquipmentLoan, error) {
	return s.loanRepo.List(ctx, params)
}

// Return marks loaned equipment as returned.
func (s *LoanService) Return(ctx context.Context, params ports.ReturnLoanParams) (*domain.EquipmentLoan, error) {
	loan, err := s.loanRepo.GetByID(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	if err := loan.Return(params.ReturnedAt); err != nil {
		return nil, err
	}

	if err := s.loanRepo.SetReturned(ctx, loan.ID, *loan.ReturnedAt); err != nil {
		return nil, err
	}

	return loan, nil
}
