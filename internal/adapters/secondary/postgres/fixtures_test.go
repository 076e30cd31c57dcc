package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/qualitec/erp-backend/internal/core/domain"
)

func createTestBranch(t *testing.T, name string) *domain.Branch {
	t.Helper()

	branch, err := domain.NewBranch(name, "TST")
	require.NoError(t, err)

	created, err := NewBranchRepository(testPool).Create(context.Background(), branch)
	require.NoError(t, err)
	return created
}

func createTestEmployee(t *testing.T, branchID uuid.UUID, name string) *domain.Employee {
	t.Helper()

	employee, err := domain.NewEmployee(domain.EmployeeParams{
		BranchID:     branchID,
		FullName:     name,
		Registration: uuid.NewString()[:8],
		RoleTitle:    "Laboratorista",
	})
	require.NoError(t, err)

	created, err := NewEmployeeRepository(testPool).Create(context.Background(), employee)
	require.NoError(t, err)
	return created
}

func createTestClient(t *testing.T, branchID uuid.UUID, name string) *domain.Client {
	t.Helper()

	client, err := domain.NewClient(domain.ClientParams{
		BranchID: branchID,
		Name:     name,
		Document: "12345678000190",
	})
	require.NoError(t, err)

	created, err := NewClientRepository(testPool).Create(context.Background(), client)
	require.NoError(t, err)
	return created
}

// createTestContract inserts directly: contracts are provisioned outside this
// service, so the repository deliberately has no write path.
func createTestContract(t *testing.T, branchID, clientID uuid.UUID, name string) *domain.Contract {
	t.Helper()

	contract := &domain.Contract{
		ID:        uuid.New(),
		ClientID:  clientID,
		BranchID:  branchID,
		Name:      name,
		Code:      "CT-01",
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}

	_, err := testPool.Exec(context.Background(),
		`INSERT INTO contracts (id, client_id, branch_id, name, code, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		pgUUID(contract.ID), pgUUID(contract.ClientID), pgUUID(contract.BranchID),
		contract.Name, contract.Code, contract.Active, contract.CreatedAt)
	require.NoError(t, err)
	return contract
}

func createTestContractItem(t *testing.T, contractID uuid.UUID, description string, unitPrice, qty float64) {
	t.Helper()

	_, err := testPool.Exec(context.Background(),
		`INSERT INTO contract_items (contract_id, description, unit, unit_price, contracted_qty)
		 VALUES ($1, $2, 'un', $3, $4)`,
		pgUUID(contractID), description, unitPrice, qty)
	require.NoError(t, err)
}
