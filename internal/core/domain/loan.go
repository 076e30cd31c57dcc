package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
)

// LoanStatus is derived from the loan's dates, never stored.
type LoanStatus string

const (
	LoanEmprestado LoanStatus = "emprestado"
	LoanAtrasado   LoanStatus = "atrasado"
	LoanDevolvido  LoanStatus = "devolvido"
)

// EquipmentLoan tracks lab or field equipment lent to an employee.
type EquipmentLoan struct {
	ID         int64
	BranchID   uuid.UUID
	EmployeeID uuid.UUID
	Equipment  string
	LoanedAt   time.Time
	DueOn      time.Time
	ReturnedAt *time.Time
	CreatedAt  time.Time
}

// LoanParams holds the input for registering a loan.
type LoanParams struct {
	BranchID   uuid.UUID
	EmployeeID uuid.UUID
	Equipment  string
	LoanedAt   time.Time
	DueOn      time.Time
}

// NewEquipmentLoan creates a valid open loan.
func NewEquipmentLoan(params LoanParams) (*EquipmentLoan, error) {
	if params.BranchID == uuid.Nil {
		return nil, apperrors.ErrBranchRequired
	}
	if params.EmployeeID == uuid.Nil {
		return nil, apperrors.ErrEmployeeRequired
	}
	if strings.TrimSpace(params.Equipment) == "" {
		return nil, apperrors.ErrEquipmentRequired
	}
	if params.LoanedAt.IsZero() {
		return nil, apperrors.ErrOccurrenceDateRequired
	}
	if params.DueOn.Before(params.LoanedAt) {
		return nil, apperrors.ErrDueBeforeLoan
	}

	return &EquipmentLoan{
		BranchID:   params.BranchID,
		EmployeeID: params.EmployeeID,
		Equipment:  params.Equipment,
		LoanedAt:   params.LoanedAt,
		DueOn:      params.DueOn,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// Status derives the loan state as of now.
func (l *EquipmentLoan) Status(now time.Time) LoanStatus {
	if l.ReturnedAt != nil {
		return LoanDevolvido
	}
	if now.After(l.DueOn) {
		return LoanAtrasado
	}
	return LoanEmprestado
}

// Return marks the equipment as returned.
func (l *EquipmentLoan) Return(at time.Time) error {
	if l.ReturnedAt != nil {
		return apperrors.ErrAlreadyReturned
	}
	if at.Before(l.LoanedAt) {
		return apperrors.ErrReturnBeforeLoan
	}
	l.ReturnedAt = &at
	return nil
}
