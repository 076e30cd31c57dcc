package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qualitec/erp-backend/internal/core/domain"
	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
	"github.com/qualitec/erp-backend/internal/core/ports"
)

// BranchRepository is the secondary adapter for branch persistence.
type BranchRepository struct {
	pool *pgxpool.Pool
}

var _ ports.BranchRepository = (*BranchRepository)(nil)

// NewBranchRepository creates a new branch repository.
func NewBranchRepository(pool *pgxpool.Pool) ports.BranchRepository {
	return &BranchRepository{pool: pool}
}

func (r *BranchRepository) Create(ctx context.Context, branch *domain.Branch) (*domain.Branch, error) {
	const query = `
		INSERT INTO branches (id, name, code, active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, code, active, created_at
	`

	db := GetDBTX(ctx, r.pool)
	row := db.QueryRow(ctx, query,
		pgUUID(branch.ID), branch.Name, branch.Code, branch.Active, branch.CreatedAt)

	return scanBranch(row)
}

func (r *BranchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Branch, error) {
	const query = `
		SELECT id, name, code, active, created_at
		FROM branches
		WHERE id = $1
	`

	db := GetDBTX(ctx, r.pool)
	branch, err := scanBranch(db.QueryRow(ctx, query, pgUUID(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBranchNotFound
		}
		return nil, err
	}
	return branch, nil
}

func (r *BranchRepository) List(ctx context.Context, onlyActive bool) ([]*domain.Branch, error) {
	const query = `
		SELECT id, name, code, active, created_at
		FROM branches
		WHERE ($1 = false OR active = true)
		ORDER BY name
	`

	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query, onlyActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []*domain.Branch
	for rows.Next() {
		branch, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}
	return branches, rows.Err()
}

func (r *BranchRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	const query = `UPDATE branches SET active = $2 WHERE id = $1`

	db := GetDBTX(ctx, r.pool)
	tag, err := db.Exec(ctx, query, pgUUID(id), active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrBranchNotFound
	}
	return nil
}

func scanBranch(row pgx.Row) (*domain.Branch, error) {
	var branch domain.Branch
	if err := row.Scan(&branch.ID, &branch.Name, &branch.Code, &branch.Active, &branch.CreatedAt); err != nil {
		return nil, err
	}
	return &branch, nil
}
