package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/qualitec/erp-backend/internal/core/domain"
	"github.com/qualitec/erp-backend/internal/core/ports"
)

// MockBranchRepository is a mock implementation of ports.BranchRepository
type MockBranchRepository struct {
	mock.Mock
}

func NewMockBranchRepository() *MockBranchRepository {
	return &MockBranchRepository{}
}

func (m *MockBranchRepository) Create(ctx context.Context, branch *domain.Branch) (*domain.Branch, error) {
	args := m.Called(ctx, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) List(ctx context.Context, onlyActive bool) ([]*domain.Branch, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

// MockClientRepository is a mock implementation of ports.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{}
}

func (m *MockClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	args := m.Called(ctx, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) List(ctx context.Context, params ports.ListClientsParams) ([]*domain.Client, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Client), args.Error(1)
}

func (m *MockClientRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

// MockEmployeeRepository is a mock implementation of ports.EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func NewMockEmployeeRepository() *MockEmployeeRepository {
	return &MockEmployeeRepository{}
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	args := m.Called(ctx, employee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) List(ctx context.Context, params ports.ListEmployeesParams) ([]*domain.Employee, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListActive(ctx context.Context, branchID *uuid.UUID) ([]*domain.Employee, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

// MockNonConformanceRepository is a mock implementation of ports.NonConformanceRepository
type MockNonConformanceRepository struct {
	mock.Mock
}

func NewMockNonConformanceRepository() *MockNonConformanceRepository {
	return &MockNonConformanceRepository{}
}

func (m *MockNonConformanceRepository) Create(ctx context.Context, nc *domain.NonConformance) (*domain.NonConformance, error) {
	args := m.Called(ctx, nc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NonConformance), args.Error(1)
}

func (m *MockNonConformanceRepository) GetByID(ctx context.Context, id int64) (*domain.NonConformance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NonConformance), args.Error(1)
}

func (m *MockNonConformanceRepository) List(ctx context.Context, params ports.ListNonConformancesParams) ([]*domain.NonConformance, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.NonConformance), args.Error(1)
}

func (m *MockNonConformanceRepository) ListForRanking(ctx context.Context, branchID *uuid.UUID, from, to time.Time) ([]*domain.NonConformance, error) {
	args := m.Called(ctx, branchID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.NonConformance), args.Error(1)
}

func (m *MockNonConformanceRepository) Update(ctx context.Context, nc *domain.NonConformance) (*domain.NonConformance, error) {
	args := m.Called(ctx, nc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NonConformance), args.Error(1)
}

// MockOvertimeRepository is a mock implementation of ports.OvertimeRepository
type MockOvertimeRepository struct {
	mock.Mock
}

func NewMockOvertimeRepository() *MockOvertimeRepository {
	return &MockOvertimeRepository{}
}

func (m *MockOvertimeRepository) Create(ctx context.Context, record *domain.OvertimeRecord) (*domain.OvertimeRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OvertimeRecord), args.Error(1)
}

func (m *MockOvertimeRepository) List(ctx context.Context, params ports.ListOvertimeParams) ([]*domain.OvertimeRecord, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OvertimeRecord), args.Error(1)
}

func (m *MockOvertimeRepository) ListUnbilledByContract(ctx context.Context, contractID uuid.UUID, from, to time.Time) ([]*domain.OvertimeRecord, error) {
	args := m.Called(ctx, contractID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OvertimeRecord), args.Error(1)
}

func (m *MockOvertimeRepository) MarkBilled(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// MockExtraServiceRepository is a mock implementation of ports.ExtraServiceRepository
type MockExtraServiceRepository struct {
	mock.Mock
}

func NewMockExtraServiceRepository() *MockExtraServiceRepository {
	return &MockExtraServiceRepository{}
}

func (m *MockExtraServiceRepository) Create(ctx context.Context, extra *domain.ExtraService) (*domain.ExtraService, error) {
	args := m.Called(ctx, extra)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtraService), args.Error(1)
}

func (m *MockExtraServiceRepository) List(ctx context.Context, params ports.ListExtraServicesParams) ([]*domain.ExtraService, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ExtraService), args.Error(1)
}

func (m *MockExtraServiceRepository) ListUnbilledByContract(ctx context.Context, contractID uuid.UUID, from, to time.Time) ([]*domain.ExtraService, error) {
	args := m.Called(ctx, contractID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ExtraService), args.Error(1)
}

func (m *MockExtraServiceRepository) MarkBilled(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// MockContractRepository is a mock implementation of ports.ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func NewMockContractRepository() *MockContractRepository {
	return &MockContractRepository{}
}

func (m *MockContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractRepository) List(ctx context.Context, branchID *uuid.UUID, onlyActive bool) ([]*domain.Contract, error) {
	args := m.Called(ctx, branchID, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Contract), args.Error(1)
}

func (m *MockContractRepository) ListItems(ctx context.Context, contractID uuid.UUID) ([]*domain.ContractItem, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ContractItem), args.Error(1)
}

// MockLoanRepository is a mock implementation of ports.LoanRepository
type MockLoanRepository struct {
	mock.Mock
}

func NewMockLoanRepository() *MockLoanRepository {
	return &MockLoanRepository{}
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *domain.EquipmentLoan) (*domain.EquipmentLoan, error) {
	args := m.Called(ctx, loan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EquipmentLoan), args.Error(1)
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id int64) (*domain.EquipmentLoan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EquipmentLoan), args.Error(1)
}

func (m *MockLoanRepository) List(ctx context.Context, params ports.ListLoansParams) ([]*domain.EquipmentLoan, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.EquipmentLoan), args.Error(1)
}

func (m *MockLoanRepository) SetReturned(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockTransactionManager is a mock implementation of ports.TransactionManager.
// It executes the callback inline, so the caller's mark-billed expectations
// still fire.
type MockTransactionManager struct {
	mock.Mock
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// MockRankingService is a mock implementation of ports.RankingService
type MockRankingService struct {
	mock.Mock
}

func NewMockRankingService() *MockRankingService {
	return &MockRankingService{}
}

func (m *MockRankingService) GetRanking(ctx context.Context, period domain.Period, branchID *uuid.UUID) (*domain.Ranking, error) {
	args := m.Called(ctx, period, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ranking), args.Error(1)
}

// MockNonConformanceService is a mock implementation of ports.NonConformanceService
type MockNonConformanceService struct {
	mock.Mock
}

func NewMockNonConformanceService() *MockNonConformanceService {
	return &MockNonConformanceService{}
}

func (m *MockNonConformanceService) Create(ctx context.Context, params ports.CreateNonConformanceParams) (*domain.NonConformance, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NonConformance), args.Error(1)
}

func (m *MockNonConformanceService) Get(ctx context.Context, id int64) (*domain.NonConformance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NonConformance), args.Error(1)
}

func (m *MockNonConformanceService) List(ctx context.Context, params ports.ListNonConformancesParams) ([]*domain.NonConformance, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.NonConformance), args.Error(1)
}

func (m *MockNonConformanceService) UpdateStatus(ctx context.Context, params ports.UpdateNCStatusParams) (*domain.NonConformance, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NonConformance), args.Error(1)
}
