package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qualitec/erp-backend/internal/core/domain"
	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
	"github.com/qualitec/erp-backend/internal/core/ports"
)

func createTestIncident(t *testing.T, branchID uuid.UUID, employeeID, clientID *uuid.UUID, severity domain.Severity, occurredOn time.Time) *domain.NonConformance {
	t.Helper()

	nc, err := domain.NewNonConformance(domain.NonConformanceParams{
		BranchID:    branchID,
		EmployeeID:  employeeID,
		ClientID:    clientID,
		Severity:    severity,
		OccurredOn:  occurredOn,
		Description: "incidente de teste",
	})
	require.NoError(t, err)

	created, err := NewNonConformanceRepository(testPool).Create(context.Background(), nc)
	require.NoError(t, err)
	return created
}

func TestNonConformanceRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewNonConformanceRepository(testPool)

	branch := createTestBranch(t, "Filial Osasco")
	employee := createTestEmployee(t, branch.ID, "Maria Silva")
	occurredOn := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	created := createTestIncident(t, branch.ID, &employee.ID, nil, domain.SeverityGrave, occurredOn)
	require.NotZero(t, created.ID)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SeverityGrave, fetched.Severity)
	assert.Equal(t, domain.NCStatusAberta, fetched.Status)
	require.NotNil(t, fetched.EmployeeID)
	assert.Equal(t, employee.ID, *fetched.EmployeeID)
	assert.Nil(t, fetched.ClientID)
	assert.True(t, occurredOn.Equal(fetched.OccurredOn))
}

func TestNonConformanceRepository_GetByID_NotFound(t *testing.T) {
	repo := NewNonConformanceRepository(testPool)

	_, err := repo.GetByID(context.Background(), 999999)
	assert.ErrorIs(t, err, apperrors.ErrNonConformanceNotFound)
}

func TestNonConformanceRepository_ListForRanking(t *testing.T) {
	ctx := context.Background()
	repo := NewNonConformanceRepository(testPool)

	branch := createTestBranch(t, "Filial Bauru")
	employee := createTestEmployee(t, branch.ID, "Ana Souza")
	client := createTestClient(t, branch.ID, "Construtora Delta")

	march := func(day int) time.Time {
		return time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC)
	}

	inWindow := createTestIncident(t, branch.ID, &employee.ID, nil, domain.SeverityLeve, march(5))
	createTestIncident(t, branch.ID, &employee.ID, nil, domain.SeverityMedia, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC))
	createTestIncident(t, branch.ID, &employee.ID, nil, domain.SeverityGrave, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))
	createTestIncident(t, branch.ID, nil, &client.ID, domain.SeverityGravissima, march(10))

	from := march(1)
	to := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	incidents, err := repo.ListForRanking(ctx, &branch.ID, from, to)
	require.NoError(t, err)

	// Only the employee-linked March record: the February and April entries
	// are outside [from, to) and the client complaint is not rankable.
	require.Len(t, incidents, 1)
	assert.Equal(t, inWindow.ID, incidents[0].ID)
}

func TestNonConformanceRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewNonConformanceRepository(testPool)

	branch := createTestBranch(t, "Filial Franca")
	employee := createTestEmployee(t, branch.ID, "Bruno Costa")
	occurredOn := time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC)

	createTestIncident(t, branch.ID, &employee.ID, nil, domain.SeverityLeve, occurredOn)
	createTestIncident(t, branch.ID, &employee.ID, nil, domain.SeverityGravissima, occurredOn)

	severity := domain.SeverityGravissima
	filtered, err := repo.List(ctx, ports.ListNonConformancesParams{
		BranchID: &branch.ID,
		Severity: &severity,
		Limit:    10,
	})
	require.NoError(t, err)

	require.Len(t, filtered, 1)
	assert.Equal(t, domain.SeverityGravissima, filtered[0].Severity)
}

func TestNonConformanceRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewNonConformanceRepository(testPool)

	branch := createTestBranch(t, "Filial Marília")
	employee := createTestEmployee(t, branch.ID, "Carla Nunes")

	nc := createTestIncident(t, branch.ID, &employee.ID, nil, domain.SeverityMedia,
		time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC))

	require.NoError(t, nc.SetCorrectiveAction("treinamento de procedimento"))
	require.NoError(t, nc.UpdateStatus(domain.NCStatusResolvida))

	updated, err := repo.Update(ctx, nc)
	require.NoError(t, err)

	assert.Equal(t, domain.NCStatusResolvida, updated.Status)
	assert.Equal(t, "treinamento de procedimento", updated.CorrectiveAction)
	assert.NotNil(t, updated.ResolvedAt)
}
