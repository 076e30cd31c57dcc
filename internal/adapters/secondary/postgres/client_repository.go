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

// ClientRepository is the secondary adapter for client persistence.
type ClientRepository struct {
	pool *pgxpool.Pool
}

var _ ports.ClientRepository = (*ClientRepository)(nil)

// NewClientRepository creates a new client repository.
func NewClientRepository(pool *pgxpool.Pool) ports.ClientRepository {
	return &ClientRepository{pool: pool}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	const query = `
		INSERT INTO clients (id, branch_id, name, document, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, branch_id, name, document, active, created_at
	`

	db := GetDBTX(ctx, r.pool)
	row := db.QueryRow(ctx, query,
		pgUUID(client.ID), pgUUID(client.BranchID), client.Name, client.Document,
		client.Active, client.CreatedAt)

	return scanClient(row)
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	const query = `
		SELECT id, branch_id, name, document, active, created_at
		FROM clients
		WHERE id = $1
	`

	db := GetDBTX(ctx, r.pool)
	client, err := scanClient(db.QueryRow(ctx, query, pgUUID(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

func (r *ClientRepository) List(ctx context.Context, params ports.ListClientsParams) ([]*domain.Client, error) {
	const query = `
		SELECT id, branch_id, name, document, active, created_at
		FROM clients
		WHERE ($1::uuid IS NULL OR branch_id = $1)
		  AND ($2 = false OR active = true)
		ORDER BY name
		LIMIT $3 OFFSET $4
	`

	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query,
		pgUUIDPtr(params.BranchID), params.OnlyActive, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	const query = `UPDATE clients SET active = $2 WHERE id = $1`

	db := GetDBTX(ctx, r.pool)
	tag, err := db.Exec(ctx, query, pgUUID(id), active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClientNotFound
	}
	return nil
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var client domain.Client
	err := row.Scan(&client.ID, &client.BranchID, &client.Name, &client.Document,
		&client.Active, &client.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &client, nil
}
