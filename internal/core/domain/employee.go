package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
)

const MaxNameLength = 255

// Employee is a ranked member of a branch's field/lab staff.
// BranchName is denormalized by the repository for listing and ranking output.
type Employee struct {
	ID           uuid.UUID
	BranchID     uuid.UUID
	BranchName   string
	FullName     string
	Registration string
	RoleTitle    string
	Active       bool
	AdmittedOn   time.Time
	CreatedAt    time.Time
}

// EmployeeParams holds the input for registering an employee.
type EmployeeParams struct {
	BranchID     uuid.UUID
	FullName     string
	Registration string
	RoleTitle    string
	AdmittedOn   time.Time
}

// NewEmployee creates a valid active employee.
func NewEmployee(params EmployeeParams) (*Employee, error) {
	if params.BranchID == uuid.Nil {
		return nil, apperrors.ErrBranchRequired
	}
	if strings.TrimSpace(params.FullName) == "" {
		return nil, apperrors.ErrNameRequired
	}
	if len(params.FullName) > MaxNameLength {
		return nil, apperrors.ErrNameTooLong
	}
	if strings.TrimSpace(params.Registration) == "" {
		return nil, apperrors.ErrRegistrationRequired
	}

	return &Employee{
		ID:           uuid.New(),
		BranchID:     params.BranchID,
		FullName:     params.FullName,
		Registration: params.Registration,
		RoleTitle:    params.RoleTitle,
		Active:       true,
		AdmittedOn:   params.AdmittedOn,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
