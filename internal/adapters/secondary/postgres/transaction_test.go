package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qualitec/erp-backend/internal/core/domain"
	"github.com/qualitec/erp-backend/internal/core/ports"
)

func TestTransactionManager_CommitMarksBothBilled(t *testing.T) {
	ctx := context.Background()

	branch := createTestBranch(t, "Filial Taubaté")
	employee := createTestEmployee(t, branch.ID, "Daniel Rocha")
	client := createTestClient(t, branch.ID, "Construtora Ômega")
	contract := createTestContract(t, branch.ID, client.ID, "Obra Ômega Fase 1")

	overtimeRepo := NewOvertimeRepository(testPool)
	extraRepo := NewExtraServiceRepository(testPool)
	tm := NewTransactionManager(testPool)

	workedOn := time.Date(2025, time.July, 7, 0, 0, 0, 0, time.UTC)
	overtime, err := domain.NewOvertimeRecord(domain.OvertimeParams{
		EmployeeID: employee.ID,
		BranchID:   branch.ID,
		ContractID: contract.ID,
		WorkedOn:   workedOn,
		Hours:      2,
		Multiplier: domain.Multiplier50,
		HourlyRate: 30,
	})
	require.NoError(t, err)
	overtime, err = overtimeRepo.Create(ctx, overtime)
	require.NoError(t, err)

	extra, err := domain.NewExtraService(domain.ExtraServiceParams{
		ContractID:  contract.ID,
		BranchID:    branch.ID,
		ServiceDate: workedOn,
		Description: "Sondagem extra",
		Quantity:    1,
		Unit:        "un",
		UnitPrice:   500,
	})
	require.NoError(t, err)
	extra, err = extraRepo.Create(ctx, extra)
	require.NoError(t, err)

	err = tm.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := overtimeRepo.MarkBilled(txCtx, []int64{overtime.ID}); err != nil {
			return err
		}
		return extraRepo.MarkBilled(txCtx, []int64{extra.ID})
	})
	require.NoError(t, err)

	from, to := domain.Period{Year: 2025, Month: time.July}.Range()
	unbilledOT, err := overtimeRepo.ListUnbilledByContract(ctx, contract.ID, from, to)
	require.NoError(t, err)
	assert.Empty(t, unbilledOT)

	unbilledExtra, err := extraRepo.ListUnbilledByContract(ctx, contract.ID, from, to)
	require.NoError(t, err)
	assert.Empty(t, unbilledExtra)
}

func TestTransactionManager_RollbackLeavesRecordsUnbilled(t *testing.T) {
	ctx := context.Background()

	branch := createTestBranch(t, "Filial Limeira")
	employee := createTestEmployee(t, branch.ID, "Elisa Prado")
	client := createTestClient(t, branch.ID, "Construtora Sigma")
	contract := createTestContract(t, branch.ID, client.ID, "Obra Sigma")

	overtimeRepo := NewOvertimeRepository(testPool)
	tm := NewTransactionManager(testPool)

	workedOn := time.Date(2025, time.August, 4, 0, 0, 0, 0, time.UTC)
	overtime, err := domain.NewOvertimeRecord(domain.OvertimeParams{
		EmployeeID: employee.ID,
		BranchID:   branch.ID,
		ContractID: contract.ID,
		WorkedOn:   workedOn,
		Hours:      3,
		Multiplier: domain.Multiplier100,
		HourlyRate: 25,
	})
	require.NoError(t, err)
	overtime, err = overtimeRepo.Create(ctx, overtime)
	require.NoError(t, err)

	boom := errors.New("downstream failure")
	err = tm.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := overtimeRepo.MarkBilled(txCtx, []int64{overtime.ID}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	from, to := domain.Period{Year: 2025, Month: time.August}.Range()
	unbilled, err := overtimeRepo.ListUnbilledByContract(ctx, contract.ID, from, to)
	require.NoError(t, err)
	require.Len(t, unbilled, 1)
	assert.False(t, unbilled[0].Billed)
}

func TestOvertimeRepository_ListOnlyUnbilledFilter(t *testing.T) {
	ctx := context.Background()

	branch := createTestBranch(t, "Filial Itu")
	employee := createTestEmployee(t, branch.ID, "Fábio Lima")
	client := createTestClient(t, branch.ID, "Construtora Kappa")
	contract := createTestContract(t, branch.ID, client.ID, "Obra Kappa")

	repo := NewOvertimeRepository(testPool)

	workedOn := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		record, err := domain.NewOvertimeRecord(domain.OvertimeParams{
			EmployeeID: employee.ID,
			BranchID:   branch.ID,
			ContractID: contract.ID,
			WorkedOn:   workedOn.AddDate(0, 0, i),
			Hours:      1,
			Multiplier: domain.Multiplier50,
			HourlyRate: 20,
		})
		require.NoError(t, err)
		record, err = repo.Create(ctx, record)
		require.NoError(t, err)

		if i == 0 {
			require.NoError(t, repo.MarkBilled(ctx, []int64{record.ID}))
		}
	}

	unbilled, err := repo.List(ctx, ports.ListOvertimeParams{
		ContractID:   &contract.ID,
		OnlyUnbilled: true,
		Limit:        10,
	})
	require.NoError(t, err)
	require.Len(t, unbilled, 1)
	assert.False(t, unbilled[0].Billed)

	all, err := repo.List(ctx, ports.ListOvertimeParams{
		ContractID: &contract.ID,
		Limit:      10,
	})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
