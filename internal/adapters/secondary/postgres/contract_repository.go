package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qualitec/erp-backend/internal/core/domain"
	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
	"github.com/qualitec/erp-backend/internal/core/ports"
)

// ContractRepository is the secondary adapter for contract reads. Contracts
// are provisioned by the commercial system, so there is no write path here.
type ContractRepository struct {
	pool *pgxpool.Pool
}

var _ ports.ContractRepository = (*ContractRepository)(nil)

// NewContractRepository creates a new contract repository.
func NewContractRepository(pool *pgxpool.Pool) ports.ContractRepository {
	return &ContractRepository{pool: pool}
}

func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	const query = `
		SELECT id, client_id, branch_id, name, code, active, created_at
		FROM contracts
		WHERE id = $1
	`

	db := GetDBTX(ctx, r.pool)
	contract, err := scanContract(db.QueryRow(ctx, query, pgUUID(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrContractNotFound
		}
		return nil, err
	}
	return contract, nil
}

func (r *ContractRepository) List(ctx context.Context, branchID *uuid.UUID, onlyActive bool) ([]*domain.Contract, error) {
	const query = `
		SELECT id, client_id, branch_id, name, code, active, created_at
		FROM contracts
		WHERE ($1::uuid IS NULL OR branch_id = $1)
		  AND ($2 = false OR active = true)
		ORDER BY name
	`

	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query, pgUUIDPtr(branchID), onlyActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []*domain.Contract
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, contract)
	}
	return contracts, rows.Err()
}

func (r *ContractRepository) ListItems(ctx context.Context, contractID uuid.UUID) ([]*domain.ContractItem, error) {
	const query = `
		SELECT id, contract_id, description, unit, unit_price, contracted_qty
		FROM contract_items
		WHERE contract_id = $1
		ORDER BY id
	`

	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query, pgUUID(contractID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.ContractItem
	for rows.Next() {
		var (
			item domain.ContractItem
			unit pgtype.Text
		)
		err := rows.Scan(&item.ID, &item.ContractID, &item.Description, &unit,
			&item.UnitPrice, &item.ContractedQty)
		if err != nil {
			return nil, err
		}
		item.Unit = textOrEmpty(unit)
		items = append(items, &item)
	}
	return items, rows.Err()
}

func scanContract(row pgx.Row) (*domain.Contract, error) {
	var contract domain.Contract
	err := row.Scan(&contract.ID, &contract.ClientID, &contract.BranchID,
		&contract.Name, &contract.Code, &contract.Active, &contract.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &contract, nil
}
