package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qualitec/erp-backend/internal/core/domain"
	"github.com/qualitec/erp-backend/internal/core/ports"
)

// ExtraServiceRepository is the secondary adapter for extra-service persistence.
type ExtraServiceRepository struct {
	pool *pgxpool.Pool
}

var _ ports.ExtraServiceRepository = (*ExtraServiceRepository)(nil)

// NewExtraServiceRepository creates a new extra-service repository.
func NewExtraServiceRepository(pool *pgxpool.Pool) ports.ExtraServiceRepository {
	return &ExtraServiceRepository{pool: pool}
}

const extraServiceColumns = `
	id, contract_id, branch_id, service_date, description, quantity, unit,
	unit_price, billed, created_at
`

func (r *ExtraServiceRepository) Create(ctx context.Context, extra *domain.ExtraService) (*domain.ExtraService, error) {
	const query = `
		INSERT INTO extra_services
			(contract_id, branch_id, service_date, description, quantity, unit, unit_price, billed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + extraServiceColumns

	db := GetDBTX(ctx, r.pool)
	row := db.QueryRow(ctx, query,
		pgUUID(extra.ContractID), pgUUID(extra.BranchID),
		pgtype.Date{Time: extra.ServiceDate, Valid: true}, extra.Description,
		extra.Quantity, extra.Unit, extra.UnitPrice, extra.Billed, extra.CreatedAt)

	return scanExtraService(row)
}

func (r *ExtraServiceRepository) List(ctx context.Context, params ports.ListExtraServicesParams) ([]*domain.ExtraService, error) {
	const query = `
		SELECT ` + extraServiceColumns + `
		FROM extra_services
		WHERE ($1::uuid IS NULL OR contract_id = $1)
		  AND ($2::uuid IS NULL OR branch_id = $2)
		  AND ($3::date IS NULL OR service_date >= $3)
		  AND ($4::date IS NULL OR service_date < $4)
		  AND ($5 = false OR billed = false)
		ORDER BY service_date DESC, id DESC
		LIMIT $6 OFFSET $7
	`

	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query,
		pgUUIDPtr(params.ContractID), pgUUIDPtr(params.BranchID),
		pgDatePtr(params.From), pgDatePtr(params.To), params.OnlyUnbilled,
		params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExtraServices(rows)
}

// ListUnbilledByContract returns unbilled entries performed in [from, to).
func (r *ExtraServiceRepository) ListUnbilledByContract(ctx context.Context, contractID uuid.UUID, from, to time.Time) ([]*domain.ExtraService, error) {
	const query = `
		SELECT ` + extraServiceColumns + `
		FROM extra_services
		WHERE contract_id = $1
		  AND billed = false
		  AND service_date >= $2
		  AND service_date < $3
		ORDER BY service_date, id
	`

	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query, pgUUID(contractID),
		pgtype.Date{Time: from, Valid: true}, pgtype.Date{Time: to, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExtraServices(rows)
}

func (r *ExtraServiceRepository) MarkBilled(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	const query = `UPDATE extra_services SET billed = true WHERE id = ANY($1)`

	db := GetDBTX(ctx, r.pool)
	_, err := db.Exec(ctx, query, ids)
	return err
}

func scanExtraService(row pgx.Row) (*domain.ExtraService, error) {
	var (
		extra       domain.ExtraService
		serviceDate pgtype.Date
		unit        pgtype.Text
	)
	err := row.Scan(&extra.ID, &extra.ContractID, &extra.BranchID, &serviceDate,
		&extra.Description, &extra.Quantity, &unit, &extra.UnitPrice,
		&extra.Billed, &extra.CreatedAt)
	if err != nil {
		return nil, err
	}

	extra.ServiceDate = serviceDate.Time
	extra.Unit = textOrEmpty(unit)
	return &extra, nil
}

func collectExtraServices(rows pgx.Rows) ([]*domain.ExtraService, error) {
	var records []*domain.ExtraService
	for rows.Next() {
		extra, err := scanExtraService(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, extra)
	}
	return records, rows.Err()
}
