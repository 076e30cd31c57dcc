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

// OvertimeRepository is the secondary adapter for overtime persistence.
type OvertimeRepository struct {
	pool *pgxpool.Pool
}

var _ ports.OvertimeRepository = (*OvertimeRepository)(nil)

// NewOvertimeRepository creates a new overtime repository.
func NewOvertimeRepository(pool *pgxpool.Pool) ports.OvertimeRepository {
	return &OvertimeRepository{pool: pool}
}

const overtimeColumns = `
	id, employee_id, branch_id, contract_id, worked_on, hours, multiplier,
	hourly_rate, description, billed, created_at
`

func (r *OvertimeRepository) Create(ctx context.Context, record *domain.OvertimeRecord) (*domain.OvertimeRecord, error) {
	const query = `
		INSERT INTO overtime_records
			(employee_id, branch_id, contract_id, worked_on, hours, multiplier, hourly_rate, description, billed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + overtimeColumns

	db := GetDBTX(ctx, r.pool)
	row := db.QueryRow(ctx, query,
		pgUUID(record.EmployeeID), pgUUID(record.BranchID), pgUUID(record.ContractID),
		pgtype.Date{Time: record.WorkedOn, Valid: true}, record.Hours,
		int(record.Multiplier), record.HourlyRate, record.Description,
		record.Billed, record.CreatedAt)

	return scanOvertime(row)
}

func (r *OvertimeRepository) List(ctx context.Context, params ports.ListOvertimeParams) ([]*domain.OvertimeRecord, error) {
	const query = `
		SELECT ` + overtimeColumns + `
		FROM overtime_records
		WHERE ($1::uuid IS NULL OR branch_id = $1)
		  AND ($2::uuid IS NULL OR employee_id = $2)
		  AND ($3::uuid IS NULL OR contract_id = $3)
		  AND ($4::date IS NULL OR worked_on >= $4)
		  AND ($5::date IS NULL OR worked_on < $5)
		  AND ($6 = false OR billed = false)
		ORDER BY worked_on DESC, id DESC
		LIMIT $7 OFFSET $8
	`

	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query,
		pgUUIDPtr(params.BranchID), pgUUIDPtr(params.EmployeeID), pgUUIDPtr(params.ContractID),
		pgDatePtr(params.From), pgDatePtr(params.To), params.OnlyUnbilled,
		params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOvertime(rows)
}

// ListUnbilledByContract returns unbilled entries worked in [from, to),
// ordered by date so measurement lines come out chronological.
func (r *OvertimeRepository) ListUnbilledByContract(ctx context.Context, contractID uuid.UUID, from, to time.Time) ([]*domain.OvertimeRecord, error) {
	const query = `
		SELECT ` + overtimeColumns + `
		FROM overtime_records
		WHERE contract_id = $1
		  AND billed = false
		  AND worked_on >= $2
		  AND worked_on < $3
		ORDER BY worked_on, id
	`

	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query, pgUUID(contractID),
		pgtype.Date{Time: from, Valid: true}, pgtype.Date{Time: to, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOvertime(rows)
}

func (r *OvertimeRepository) MarkBilled(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	const query = `UPDATE overtime_records SET billed = true WHERE id = ANY($1)`

	db := GetDBTX(ctx, r.pool)
	_, err := db.Exec(ctx, query, ids)
	return err
}

func scanOvertime(row pgx.Row) (*domain.OvertimeRecord, error) {
	var (
		record      domain.OvertimeRecord
		workedOn    pgtype.Date
		multiplier  int
		description pgtype.Text
	)
	err := row.Scan(&record.ID, &record.EmployeeID, &record.BranchID, &record.ContractID,
		&workedOn, &record.Hours, &multiplier, &record.HourlyRate,
		&description, &record.Billed, &record.CreatedAt)
	if err != nil {
		return nil, err
	}

	record.WorkedOn = workedOn.Time
	record.Multiplier = domain.OvertimeMultiplier(multiplier)
	record.Description = textOrEmpty(description)
	return &record, nil
}

func collectOvertime(rows pgx.Rows) ([]*domain.OvertimeRecord, error) {
	var records []*domain.OvertimeRecord
	for rows.Next() {
		record, err := scanOvertime(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
