package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
)

// ExtraService is an out-of-contract service performed for a client, billed
// through the next measurement of its contract.
type ExtraService struct {
	ID          int64
	ContractID  uuid.UUID
	BranchID    uuid.UUID
	ServiceDate time.Time
	Description string
	Quantity    float64
	Unit        string
	UnitPrice   float64
	Billed      bool
	CreatedAt   time.Time
}

// ExtraServiceParams holds the input for recording an extra service.
type ExtraServiceParams struct {
	ContractID  uuid.UUID
	BranchID    uuid.UUID
	ServiceDate time.Time
	Description string
	Quantity    float64
	Unit        string
	UnitPrice   float64
}

// NewExtraService creates a valid unbilled extra service entry.
func NewExtraService(params ExtraServiceParams) (*ExtraService, error) {
	if params.ContractID == uuid.Nil {
		return nil, apperrors.ErrContractRequired
	}
	if params.BranchID == uuid.Nil {
		return nil, apperrors.ErrBranchRequired
	}
	if params.ServiceDate.IsZero() {
		return nil, apperrors.ErrOccurrenceDateRequired
	}
	if strings.TrimSpace(params.Description) == "" {
		return nil, apperrors.ErrDescriptionRequired
	}
	if params.Quantity <= 0 {
		return nil, apperrors.ErrInvalidQuantity
	}
	if params.UnitPrice < 0 {
		return nil, apperrors.ErrInvalidRate
	}

	return &ExtraService{
		ContractID:  params.ContractID,
		BranchID:    params.BranchID,
		ServiceDate: params.ServiceDate,
		Description: params.Description,
		Quantity:    params.Quantity,
		Unit:        params.Unit,
		UnitPrice:   params.UnitPrice,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Amount is the billable value of the entry.
func (e *ExtraService) Amount() float64 {
	return roundCents(e.Quantity * e.UnitPrice)
}
