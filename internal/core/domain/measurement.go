package domain

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// MeasurementSource tags where a measurement item came from.
type MeasurementSource string

const (
	SourceContract     MeasurementSource = "contrato"
	SourceOvertime     MeasurementSource = "hora_extra"
	SourceExtraService MeasurementSource = "servico_extra"
)

// MeasurementItem is one billable line of a monthly measurement.
type MeasurementItem struct {
	Source      MeasurementSource
	SourceID    int64
	Description string
	Unit        string
	Quantity    float64
	UnitPrice   float64
	Total       float64
}

// Measurement (medição) is the derived billing statement for one contract and
// one period. It is recomputed from scratch on every query and never stored;
// closing a measurement only flags the underlying records as billed.
type Measurement struct {
	ContractID   uuid.UUID
	ContractName string
	Period       Period
	Items        []MeasurementItem
	Total        float64
}

// DeriveMeasurement merges the contract's recurring line items with the
// unbilled overtime and extra-service records falling inside the period.
//
// Contract items are billed at their contracted monthly quantity. Overtime
// and extra-service inputs may arrive unfiltered; anything billed, outside
// the period, or belonging to another contract is ignored here.
func DeriveMeasurement(
	contract *Contract,
	items []*ContractItem,
	overtime []*OvertimeRecord,
	extras []*ExtraService,
	period Period,
) *Measurement {
	m := &Measurement{
		ContractID:   contract.ID,
		ContractName: contract.Name,
		Period:       period,
		Items:        make([]MeasurementItem, 0, len(items)+len(overtime)+len(extras)),
	}

	for _, item := range items {
		m.Items = append(m.Items, MeasurementItem{
			Source:      SourceContract,
			SourceID:    item.ID,
			Description: item.Description,
			Unit:        item.Unit,
			Quantity:    item.ContractedQty,
			UnitPrice:   item.UnitPrice,
			Total:       item.MonthlyTotal(),
		})
	}

	for _, ot := range overtime {
		if ot.Billed || ot.ContractID != contract.ID || !period.Contains(ot.WorkedOn) {
			continue
		}
		description := fmt.Sprintf("Horas extras %d%% - %s", ot.Multiplier, ot.WorkedOn.Format("02/01/2006"))
		if ot.Description != "" {
			description += " - " + ot.Description
		}
		m.Items = append(m.Items, MeasurementItem{
			Source:      SourceOvertime,
			SourceID:    ot.ID,
			Description: description,
			Unit:        "h",
			Quantity:    ot.Hours,
			UnitPrice:   ot.EffectiveRate(),
			Total:       ot.Amount(),
		})
	}

	for _, extra := range extras {
		if extra.Billed || extra.ContractID != contract.ID || !period.Contains(extra.ServiceDate) {
			continue
		}
		m.Items = append(m.Items, MeasurementItem{
			Source:      SourceExtraService,
			SourceID:    extra.ID,
			Description: extra.Description,
			Unit:        extra.Unit,
			Quantity:    extra.Quantity,
			UnitPrice:   extra.UnitPrice,
			Total:       extra.Amount(),
		})
	}

	var total float64
	for _, item := range m.Items {
		total += item.Total
	}
	m.Total = roundCents(total)

	return m
}

// roundCents rounds a monetary value to two decimal places.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
