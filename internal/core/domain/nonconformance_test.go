package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qualitec/erp-backend/internal/core/domain"
	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.Severity
		wantErr error
	}{
		{"leve", "leve", domain.SeverityLeve, nil},
		{"media", "media", domain.SeverityMedia, nil},
		{"grave", "grave", domain.SeverityGrave, nil},
		{"gravissima", "gravissima", domain.SeverityGravissima, nil},
		{"legacy critica maps to gravissima", "critica", domain.SeverityGravissima, nil},
		{"uppercase is normalized", "GRAVE", domain.SeverityGrave, nil},
		{"surrounding spaces are trimmed", "  leve ", domain.SeverityLeve, nil},
		{"unknown value is rejected", "altissima", "", apperrors.ErrUnknownSeverity},
		{"empty is rejected", "", "", apperrors.ErrUnknownSeverity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseSeverity(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewNonConformance_Attribution(t *testing.T) {
	branchID := uuid.New()
	employeeID := uuid.New()
	clientID := uuid.New()
	occurredOn := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	base := domain.NonConformanceParams{
		BranchID:    branchID,
		Severity:    domain.SeverityLeve,
		OccurredOn:  occurredOn,
		Description: "relatório entregue fora do prazo",
	}

	t.Run("employee attribution", func(t *testing.T) {
		params := base
		params.EmployeeID = &employeeID

		nc, err := domain.NewNonConformance(params)
		require.NoError(t, err)
		assert.True(t, nc.IsEmployeeLinked())
		assert.Equal(t, domain.NCStatusAberta, nc.Status)
	})

	t.Run("client attribution", func(t *testing.T) {
		params := base
		params.ClientID = &clientID

		nc, err := domain.NewNonConformance(params)
		require.NoError(t, err)
		assert.False(t, nc.IsEmployeeLinked())
	})

	t.Run("no attribution is rejected", func(t *testing.T) {
		_, err := domain.NewNonConformance(base)
		assert.ErrorIs(t, err, apperrors.ErrAttributionRequired)
	})

	t.Run("double attribution is rejected", func(t *testing.T) {
		params := base
		params.EmployeeID = &employeeID
		params.ClientID = &clientID

		_, err := domain.NewNonConformance(params)
		assert.ErrorIs(t, err, apperrors.ErrAttributionConflict)
	})

	t.Run("invalid severity is rejected", func(t *testing.T) {
		params := base
		params.EmployeeID = &employeeID
		params.Severity = domain.Severity("critica") // alias is resolved before this point

		_, err := domain.NewNonConformance(params)
		assert.ErrorIs(t, err, apperrors.ErrUnknownSeverity)
	})
}

func TestNonConformance_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.NonConformanceStatus
		to      domain.NonConformanceStatus
		wantErr error
	}{
		{"aberta to em_tratativa", domain.NCStatusAberta, domain.NCStatusEmTratativa, nil},
		{"aberta straight to resolvida", domain.NCStatusAberta, domain.NCStatusResolvida, nil},
		{"em_tratativa to resolvida", domain.NCStatusEmTratativa, domain.NCStatusResolvida, nil},
		{"resolvida is terminal", domain.NCStatusResolvida, domain.NCStatusEmTratativa, apperrors.ErrInvalidStatusTransition},
		{"no going back to aberta", domain.NCStatusEmTratativa, domain.NCStatusAberta, apperrors.ErrInvalidStatusTransition},
		{"unknown status", domain.NCStatusAberta, domain.NonConformanceStatus("arquivada"), apperrors.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nc := &domain.NonConformance{Status: tt.from}

			err := nc.UpdateStatus(tt.to)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, nc.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, nc.Status)
		})
	}
}

func TestNonConformance_ResolutionTimestamp(t *testing.T) {
	nc := &domain.NonConformance{Status: domain.NCStatusAberta}

	require.NoError(t, nc.UpdateStatus(domain.NCStatusResolvida))
	require.NotNil(t, nc.ResolvedAt)
	assert.WithinDuration(t, time.Now().UTC(), *nc.ResolvedAt, 2*time.Second)
}
