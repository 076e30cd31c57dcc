package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/qualitec/erp-backend/internal/core/domain"
)

// BranchRepository persists branches (filiais).
type BranchRepository interface {
	Create(ctx context.Context, branch *domain.Branch) (*domain.Branch, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Branch, error)
	List(ctx context.Context, onlyActive bool) ([]*domain.Branch, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// ListClientsParams filters client listings.
type ListClientsParams struct {
	BranchID   *uuid.UUID
	OnlyActive bool
	Limit      int
	Offset     int
}

// ClientRepository persists clients.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, params ListClientsParams) ([]*domain.Client, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// ListEmployeesParams filters employee listings.
type ListEmployeesParams struct {
	BranchID   *uuid.UUID
	OnlyActive bool
	Limit      int
	Offset     int
}

// EmployeeRepository persists employees. ListActive is the roster source for
// the ranking engine: every returned employee appears in the leaderboard.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	List(ctx context.Context, params ListEmployeesParams) ([]*domain.Employee, error)
	ListActive(ctx context.Context, branchID *uuid.UUID) ([]*domain.Employee, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// ListNonConformancesParams filters incident listings.
type ListNonConformancesParams struct {
	BranchID   *uuid.UUID
	EmployeeID *uuid.UUID
	ClientID   *uuid.UUID
	Severity   *domain.Severity
	Status     *domain.NonConformanceStatus
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// NonConformanceRepository persists quality incidents. ListForRanking returns
// only employee-linked records with occurrence dates in [from, to), already
// scoped to the branch filter.
type NonConformanceRepository interface {
	Create(ctx context.Context, nc *domain.NonConformance) (*domain.NonConformance, error)
	GetByID(ctx context.Context, id int64) (*domain.NonConformance, error)
	List(ctx context.Context, params ListNonConformancesParams) ([]*domain.NonConformance, error)
	ListForRanking(ctx context.Context, branchID *uuid.UUID, from, to time.Time) ([]*domain.NonConformance, error)
	Update(ctx context.Context, nc *domain.NonConformance) (*domain.NonConformance, error)
}

// ListOvertimeParams filters overtime listings.
type ListOvertimeParams struct {
	BranchID     *uuid.UUID
	EmployeeID   *uuid.UUID
	ContractID   *uuid.UUID
	From         *time.Time
	To           *time.Time
	OnlyUnbilled bool
	Limit        int
	Offset       int
}

// OvertimeRepository persists overtime records.
type OvertimeRepository interface {
	Create(ctx context.Context, record *domain.OvertimeRecord) (*domain.OvertimeRecord, error)
	List(ctx context.Context, params ListOvertimeParams) ([]*domain.OvertimeRecord, error)
	ListUnbilledByContract(ctx context.Context, contractID uuid.UUID, from, to time.Time) ([]*domain.OvertimeRecord, error)
	MarkBilled(ctx context.Context, ids []int64) error
}

// ListExtraServicesParams filters extra-service listings.
type ListExtraServicesParams struct {
	ContractID   *uuid.UUID
	BranchID     *uuid.UUID
	From         *time.Time
	To           *time.Time
	OnlyUnbilled bool
	Limit        int
	Offset       int
}

// ExtraServiceRepository persists out-of-contract services.
type ExtraServiceRepository interface {
	Create(ctx context.Context, extra *domain.ExtraService) (*domain.ExtraService, error)
	List(ctx context.Context, params ListExtraServicesParams) ([]*domain.ExtraService, error)
	ListUnbilledByContract(ctx context.Context, contractID uuid.UUID, from, to time.Time) ([]*domain.ExtraService, error)
	MarkBilled(ctx context.Context, ids []int64) error
}

// ContractRepository reads contracts and their recurring line items.
type ContractRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error)
	List(ctx context.Context, branchID *uuid.UUID, onlyActive bool) ([]*domain.Contract, error)
	ListItems(ctx context.Context, contractID uuid.UUID) ([]*domain.ContractItem, error)
}

// ListLoansParams filters equipment loan listings.
type ListLoansParams struct {
	BranchID   *uuid.UUID
	EmployeeID *uuid.UUID
	OnlyOpen   bool
	Limit      int
	Offset     int
}

// LoanRepository persists equipment loans.
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.EquipmentLoan) (*domain.EquipmentLoan, error)
	GetByID(ctx context.Context, id int64) (*domain.EquipmentLoan, error)
	List(ctx context.Context, params ListLoansParams) ([]*domain.EquipmentLoan, error)
	SetReturned(ctx context.Context, id int64, at time.Time) error
}

// TransactionManager runs a function atomically. Repositories participating
// in a transaction read the active transaction from the context.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
