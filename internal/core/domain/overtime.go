package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
)

// OvertimeMultiplier is the percentage surcharge applied to the base hourly
// rate (50% for weekdays, 100% for Sundays and holidays).
type OvertimeMultiplier int

const (
	Multiplier50  OvertimeMultiplier = 50
	Multiplier100 OvertimeMultiplier = 100
)

// Valid reports whether m is one of the contract-approved multipliers.
func (m OvertimeMultiplier) Valid() bool {
	return m == Multiplier50 || m == Multiplier100
}

// OvertimeRecord is an overtime entry awaiting billing through a measurement.
// HourlyRate is captured at entry time from the contract's labor rate so that
// later rate changes do not reprice already-recorded hours.
type OvertimeRecord struct {
	ID          int64
	EmployeeID  uuid.UUID
	BranchID    uuid.UUID
	ContractID  uuid.UUID
	WorkedOn    time.Time
	Hours       float64
	Multiplier  OvertimeMultiplier
	HourlyRate  float64
	Description string
	Billed      bool
	CreatedAt   time.Time
}

// OvertimeParams holds the input for recording overtime.
type OvertimeParams struct {
	EmployeeID  uuid.UUID
	BranchID    uuid.UUID
	ContractID  uuid.UUID
	WorkedOn    time.Time
	Hours       float64
	Multiplier  OvertimeMultiplier
	HourlyRate  float64
	Description string
}

// NewOvertimeRecord creates a valid unbilled overtime entry.
func NewOvertimeRecord(params OvertimeParams) (*OvertimeRecord, error) {
	if params.EmployeeID == uuid.Nil {
		return nil, apperrors.ErrEmployeeRequired
	}
	if params.BranchID == uuid.Nil {
		return nil, apperrors.ErrBranchRequired
	}
	if params.ContractID == uuid.Nil {
		return nil, apperrors.ErrContractRequired
	}
	if params.WorkedOn.IsZero() {
		return nil, apperrors.ErrOccurrenceDateRequired
	}
	if params.Hours <= 0 || params.Hours > 24 {
		return nil, apperrors.ErrInvalidHours
	}
	if !params.Multiplier.Valid() {
		return nil, apperrors.ErrInvalidMultiplier
	}
	if params.HourlyRate < 0 {
		return nil, apperrors.ErrInvalidRate
	}

	return &OvertimeRecord{
		EmployeeID:  params.EmployeeID,
		BranchID:    params.BranchID,
		ContractID:  params.ContractID,
		WorkedOn:    params.WorkedOn,
		Hours:       params.Hours,
		Multiplier:  params.Multiplier,
		HourlyRate:  params.HourlyRate,
		Description: strings.TrimSpace(params.Description),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// EffectiveRate is the hourly rate with the overtime surcharge applied.
func (o *OvertimeRecord) EffectiveRate() float64 {
	return o.HourlyRate * (1 + float64(o.Multiplier)/100)
}

// Amount is the billable value of the entry.
func (o *OvertimeRecord) Amount() float64 {
	return roundCents(o.Hours * o.EffectiveRate())
}
