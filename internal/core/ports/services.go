package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/qualitec/erp-backend/internal/core/domain"
)

// RankingService is the synchronous entry point to the scoring engine.
// It snapshots the roster and the period's incidents, then delegates to the
// pure domain computation; upstream fetch failures propagate untouched and
// the computation is never attempted on partial data.
type RankingService interface {
	GetRanking(ctx context.Context, period domain.Period, branchID *uuid.UUID) (*domain.Ranking, error)
}

// CreateNonConformanceParams is the input for registering an incident.
// RawSeverity is the wire value; it is parsed (and the legacy alias
// normalized) before the record is built.
type CreateNonConformanceParams struct {
	BranchID    uuid.UUID
	EmployeeID  *uuid.UUID
	ClientID    *uuid.UUID
	RawSeverity string
	OccurredOn  time.Time
	Description string
}

// UpdateNCStatusParams is the input for moving an incident through treatment.
type UpdateNCStatusParams struct {
	ID               int64
	Status           domain.NonConformanceStatus
	CorrectiveAction string
}

// NonConformanceService manages quality incidents.
type NonConformanceService interface {
	Create(ctx context.Context, params CreateNonConformanceParams) (*domain.NonConformance, error)
	Get(ctx context.Context, id int64) (*domain.NonConformance, error)
	List(ctx context.Context, params ListNonConformancesParams) ([]*domain.NonConformance, error)
	UpdateStatus(ctx context.Context, params UpdateNCStatusParams) (*domain.NonConformance, error)
}

// BranchService manages the branch registry.
type BranchService interface {
	Create(ctx context.Context, name, code string) (*domain.Branch, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Branch, error)
	List(ctx context.Context, onlyActive bool) ([]*domain.Branch, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// ClientService manages the client registry.
type ClientService interface {
	Create(ctx context.Context, params domain.ClientParams) (*domain.Client, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, params ListClientsParams) ([]*domain.Client, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// EmployeeService manages the employee registry.
type EmployeeService interface {
	Create(ctx context.Context, params domain.EmployeeParams) (*domain.Employee, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	List(ctx context.Context, params ListEmployeesParams) ([]*domain.Employee, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// OvertimeService records and lists overtime entries.
type OvertimeService interface {
	Create(ctx context.Context, params domain.OvertimeParams) (*domain.OvertimeRecord, error)
	List(ctx context.Context, params ListOvertimeParams) ([]*domain.OvertimeRecord, error)
}

// ExtraServiceService records and lists out-of-contract services.
type ExtraServiceService interface {
	Create(ctx context.Context, params domain.ExtraServiceParams) (*domain.ExtraService, error)
	List(ctx context.Context, params ListExtraServicesParams) ([]*domain.ExtraService, error)
}

// MeasurementService derives and closes monthly measurements.
type MeasurementService interface {
	// GetMeasurement derives the billing statement for a contract and period.
	GetMeasurement(ctx context.Context, contractID uuid.UUID, period domain.Period) (*domain.Measurement, error)
	// CloseMeasurement derives the statement and marks the underlying
	// overtime and extra-service rows billed in a single transaction.
	CloseMeasurement(ctx context.Context, contractID uuid.UUID, period domain.Period) (*domain.Measurement, error)
}

// ContractService reads the contract registry.
type ContractService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Contract, error)
	List(ctx context.Context, branchID *uuid.UUID, onlyActive bool) ([]*domain.Contract, error)
}

// ReturnLoanParams is the input for returning loaned equipment.
type ReturnLoanParams struct {
	ID         int64
	ReturnedAt time.Time
}

// LoanService manages equipment loans.
type LoanService interface {
	Create(ctx context.Context, params domain.LoanParams) (*domain.EquipmentLoan, error)
	List(ctx context.Context, params ListLoansParams) ([]*domain.EquipmentLoan, error)
	Return(ctx context.Context, params ReturnLoanParams) (*domain.EquipmentLoan, error)
}
