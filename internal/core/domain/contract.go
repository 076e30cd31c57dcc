package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contract (obra) is a service agreement with a client, billed monthly
// through measurements.
type Contract struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	BranchID  uuid.UUID
	Name      string
	Code      string
	Active    bool
	CreatedAt time.Time
}

// ContractItem is one recurring line of a contract: a testing service with a
// unit price and the quantity contracted per month.
type ContractItem struct {
	ID            int64
	ContractID    uuid.UUID
	Description   string
	Unit          string
	UnitPrice     float64
	ContractedQty float64
}

// MonthlyTotal is the value of the item at its contracted quantity.
func (i ContractItem) MonthlyTotal() float64 {
	return roundCents(i.ContractedQty * i.UnitPrice)
}
