package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
)

// Severity classifies how serious a non-conformance is. The set is closed:
// the scoring engine refuses to work with anything outside it.
type Severity string

const (
	SeverityLeve       Severity = "leve"
	SeverityMedia      Severity = "media"
	SeverityGrave      Severity = "grave"
	SeverityGravissima Severity = "gravissima"
)

// severityCriticaAlias is a deprecated value some legacy clients still send.
// It is normalized to SeverityGravissima at the boundary and never persisted.
const severityCriticaAlias = "critica"

// ParseSeverity validates and normalizes a raw severity value.
func ParseSeverity(value string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(SeverityLeve):
		return SeverityLeve, nil
	case string(SeverityMedia):
		return SeverityMedia, nil
	case string(SeverityGrave):
		return SeverityGrave, nil
	case string(SeverityGravissima), severityCriticaAlias:
		return SeverityGravissima, nil
	default:
		return "", apperrors.ErrUnknownSeverity
	}
}

// Valid reports whether s is one of the four canonical values.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLeve, SeverityMedia, SeverityGrave, SeverityGravissima:
		return true
	}
	return false
}

// Severities lists the canonical values in ascending order of seriousness.
func Severities() []Severity {
	return []Severity{SeverityLeve, SeverityMedia, SeverityGrave, SeverityGravissima}
}

// NonConformanceStatus represents the treatment state of a record.
type NonConformanceStatus string

const (
	NCStatusAberta      NonConformanceStatus = "aberta"
	NCStatusEmTratativa NonConformanceStatus = "em_tratativa"
	NCStatusResolvida   NonConformanceStatus = "resolvida"
)

// Valid reports whether st is a known status.
func (st NonConformanceStatus) Valid() bool {
	switch st {
	case NCStatusAberta, NCStatusEmTratativa, NCStatusResolvida:
		return true
	}
	return false
}

// NonConformance is a recorded quality incident attributed to either an
// employee or a client, never both. Resolution does not remove a record
// from the ranking window; severity and occurrence date alone drive scoring.
type NonConformance struct {
	ID               int64
	BranchID         uuid.UUID
	EmployeeID       *uuid.UUID
	ClientID         *uuid.UUID
	Severity         Severity
	OccurredOn       time.Time
	Description      string
	Status           NonConformanceStatus
	CorrectiveAction string
	CreatedAt        time.Time
	ResolvedAt       *time.Time
}

// NonConformanceParams holds the input for registering a new record.
type NonConformanceParams struct {
	BranchID    uuid.UUID
	EmployeeID  *uuid.UUID
	ClientID    *uuid.UUID
	Severity    Severity
	OccurredOn  time.Time
	Description string
}

// NewNonConformance creates a valid open record.
func NewNonConformance(params NonConformanceParams) (*NonConformance, error) {
	if params.BranchID == uuid.Nil {
		return nil, apperrors.ErrBranchRequired
	}
	if params.EmployeeID == nil && params.ClientID == nil {
		return nil, apperrors.ErrAttributionRequired
	}
	if params.EmployeeID != nil && params.ClientID != nil {
		return nil, apperrors.ErrAttributionConflict
	}
	if !params.Severity.Valid() {
		return nil, apperrors.ErrUnknownSeverity
	}
	if params.OccurredOn.IsZero() {
		return nil, apperrors.ErrOccurrenceDateRequired
	}
	if strings.TrimSpace(params.Description) == "" {
		return nil, apperrors.ErrDescriptionRequired
	}

	return &NonConformance{
		BranchID:    params.BranchID,
		EmployeeID:  params.EmployeeID,
		ClientID:    params.ClientID,
		Severity:    params.Severity,
		OccurredOn:  params.OccurredOn,
		Description: params.Description,
		Status:      NCStatusAberta,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// UpdateStatus moves the record through its treatment flow.
// Valid transitions: aberta -> em_tratativa | resolvida,
// em_tratativa -> resolvida. Resolvida is terminal.
func (nc *NonConformance) UpdateStatus(newStatus NonConformanceStatus) error {
	if !newStatus.Valid() {
		return apperrors.ErrInvalidStatus
	}

	validTransitions := map[NonConformanceStatus][]NonConformanceStatus{
		NCStatusAberta:      {NCStatusEmTratativa, NCStatusResolvida},
		NCStatusEmTratativa: {NCStatusResolvida},
		NCStatusResolvida:   {},
	}

	for _, allowed := range validTransitions[nc.Status] {
		if allowed == newStatus {
			nc.Status = newStatus
			if newStatus == NCStatusResolvida {
				now := time.Now().UTC()
				nc.ResolvedAt = &now
			}
			return nil
		}
	}

	return apperrors.ErrInvalidStatusTransition
}

// SetCorrectiveAction records the corrective action taken for the incident.
func (nc *NonConformance) SetCorrectiveAction(action string) error {
	if strings.TrimSpace(action) == "" {
		return apperrors.ErrCorrectiveActionRequired
	}
	nc.CorrectiveAction = action
	return nil
}

// IsEmployeeLinked reports whether the record participates in the ranking.
func (nc *NonConformance) IsEmployeeLinked() bool {
	return nc.EmployeeID != nil
}
