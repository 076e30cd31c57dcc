package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/qualitec/erp-backend/internal/core/domain"
	"github.com/qualitec/erp-backend/internal/core/ports"
)

// The registry services are thin orchestration over their repositories:
// validation lives in the domain factories, persistence in the adapters.

// BranchService implements the branch registry use cases.
type BranchService struct {
	branchRepo ports.BranchRepository
}

var _ ports.BranchService = (*BranchService)(nil)

func NewBranchService(branchRepo ports.BranchRepository) ports.BranchService {
	return &BranchService{branchRepo: branchRepo}
}

func (s *BranchService) Create(ctx context.Context, name, code string) (*domain.Branch, error) {
	branch, err := domain.NewBranch(name, code)
	if err != nil {
		return nil, err
	}
	return s.branchRepo.Create(ctx, branch)
}

func (s *BranchService) Get(ctx context.Context, id uuid.UUID) (*domain.Branch, error) {
	return s.branchRepo.GetByID(ctx, id)
}

func (s *BranchService) List(ctx context.Context, onlyActive bool) ([]*domain.Branch, error) {
	return s.branchRepo.List(ctx, onlyActive)
}

func (s *BranchService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if _, err := s.branchRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.branchRepo.SetActive(ctx, id, active)
}

// ClientService implements the client registry use cases.
type ClientService struct {
	clientRepo ports.ClientRepository
	branchRepo ports.BranchRepository
}

var _ ports.ClientService = (*ClientService)(nil)

func NewClientService(clientRepo ports.ClientRepository, branchRepo ports.BranchRepository) ports.ClientService {
	return &ClientService{clientRepo: clientRepo, branchRepo: branchRepo}
}

func (s *ClientService) Create(ctx context.Context, params domain.ClientParams) (*domain.Client, error) {
	if _, err := s.branchRepo.GetByID(ctx, params.BranchID); err != nil {
		return nil, err
	}

	client, err := domain.NewClient(params)
	if err != nil {
		return nil, err
	}
	return s.clientRepo.Create(ctx, client)
}

func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

func (s *ClientService) List(ctx context.Context, params ports.ListClientsParams) ([]*domain.Client, error) {
	return s.clientRepo.List(ctx, params)
}

func (s *ClientService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if _, err := s.clientRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.clientRepo.SetActive(ctx, id, active)
}

// EmployeeService implements the employee registry use cases.
type EmployeeService struct {
	employeeRepo ports.EmployeeRepository
	branchRepo   ports.BranchRepository
}

var _ ports.EmployeeService = (*EmployeeService)(nil)

func NewEmployeeService(employeeRepo ports.EmployeeRepository, branchRepo ports.BranchRepository) ports.EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo, branchRepo: branchRepo}
}

func (s *EmployeeService) Create(ctx context.Context, params domain.EmployeeParams) (*domain.Employee, error) {
	if _, err := s.branchRepo.GetByID(ctx, params.BranchID); err != nil {
		return nil, err
	}

	employee, err := domain.NewEmployee(params)
	if err != nil {
		return nil, err
	}
	return s.employeeRepo.Create(ctx, employee)
}

func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

func (s *EmployeeService) List(ctx context.Context, params ports.ListEmployeesParams) ([]*domain.Employee, error) {
	return s.employeeRepo.List(ctx, params)
}

// SetActive deactivates or reactivates an employee. Deactivation removes the
// employee from future rankings; past rankings are derived data and simply
// recompute without them.
func (s *EmployeeService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.employeeRepo.SetActive(ctx, id, active)
}

// ContractService reads the contract registry.
type ContractService struct {
	contractRepo ports.ContractRepository
}

var _ ports.ContractService = (*ContractService)(nil)

func NewContractService(contractRepo ports.ContractRepository) ports.ContractService {
	return &ContractService{contractRepo: contractRepo}
}

func (s *ContractService) Get(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	return s.contractRepo.GetByID(ctx, id)
}

func (s *ContractService) List(ctx context.Context, branchID *uuid.UUID, onlyActive bool) ([]*domain.Contract, error) {
	return s.contractRepo.List(ctx, branchID, onlyActive)
}
