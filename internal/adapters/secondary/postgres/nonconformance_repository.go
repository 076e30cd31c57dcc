package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qualitec/erp-backend/internal/core/domain"
	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
	"github.com/qualitec/erp-backend/internal/core/ports"
)

// NonConformanceRepository is the secondary adapter for incident persistence.
type NonConformanceRepository struct {
	pool *pgxpool.Pool
}

var _ ports.NonConformanceRepository = (*NonConformanceRepository)(nil)

// NewNonConformanceRepository creates a new non-conformance repository.
func NewNonConformanceRepository(pool *pgxpool.Pool) ports.NonConformanceRepository {
	return &NonConformanceRepository{pool: pool}
}

const ncColumns = `
	id, branch_id, employee_id, client_id, severity, occurred_on,
	description, status, corrective_action, created_at, resolved_at
`

func (r *NonConformanceRepository) Create(ctx context.Context, nc *domain.NonConformance) (*domain.NonConformance, error) {
	const query = `
		INSERT INTO non_conformances
			(branch_id, employee_id, client_id, severity, occurred_on, description, status, corrective_action, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + ncColumns

	db := GetDBTX(ctx, r.pool)
	row := db.QueryRow(ctx, query,
		pgUUID(nc.BranchID), pgUUIDPtr(nc.EmployeeID), pgUUIDPtr(nc.ClientID),
		string(nc.Severity), pgtype.Date{Time: nc.OccurredOn, Valid: true},
		nc.Description, string(nc.Status), nc.CorrectiveAction, nc.CreatedAt)

	return scanNonConformance(row)
}

func (r *NonConformanceRepository) GetByID(ctx context.Context, id int64) (*domain.NonConformance, error) {
	const query = `
		SELECT ` + ncColumns + `
		FROM non_conformances
		WHERE id = $1
	`

	db := GetDBTX(ctx, r.pool)
	nc, err := scanNonConformance(db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNonConformanceNotFound
		}
		return nil, err
	}
	return nc, nil
}

func (r *NonConformanceRepository) List(ctx context.Context, params ports.ListNonConformancesParams) ([]*domain.NonConformance, error) {
	const query = `
		SELECT ` + ncColumns + `
		FROM non_conformances
		WHERE ($1::uuid IS NULL OR branch_id = $1)
		  AND ($2::uuid IS NULL OR employee_id = $2)
		  AND ($3::uuid IS NULL OR client_id = $3)
		  AND ($4::text IS NULL OR severity = $4)
		  AND ($5::text IS NULL OR status = $5)
		  AND ($6::date IS NULL OR occurred_on >= $6)
		  AND ($7::date IS NULL OR occurred_on < $7)
		ORDER BY occurred_on DESC, id DESC
		LIMIT $8 OFFSET $9
	`

	var severity, status *string
	if params.Severity != nil {
		s := string(*params.Severity)
		severity = &s
	}
	if params.Status != nil {
		s := string(*params.Status)
		status = &s
	}

	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query,
		pgUUIDPtr(params.BranchID), pgUUIDPtr(params.EmployeeID), pgUUIDPtr(params.ClientID),
		severity, status, pgDatePtr(params.From), pgDatePtr(params.To),
		params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNonConformances(rows)
}

// ListForRanking returns employee-linked incidents with occurrence dates in
// [from, to). Client-attributed records never reach the scoring engine.
func (r *NonConformanceRepository) ListForRanking(ctx context.Context, branchID *uuid.UUID, from, to time.Time) ([]*domain.NonConformance, error) {
	const query = `
		SELECT ` + ncColumns + `
		FROM non_conformances
		WHERE employee_id IS NOT NULL
		  AND occurred_on >= $1
		  AND occurred_on < $2
		  AND ($3::uuid IS NULL OR branch_id = $3)
	`

	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query,
		pgtype.Date{Time: from, Valid: true}, pgtype.Date{Time: to, Valid: true},
		pgUUIDPtr(branchID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNonConformances(rows)
}

func (r *NonConformanceRepository) Update(ctx context.Context, nc *domain.NonConformance) (*domain.NonConformance, error) {
	const query = `
		UPDATE non_conformances
		SET status = $2, corrective_action = $3, resolved_at = $4
		WHERE id = $1
		RETURNING ` + ncColumns

	resolvedAt := pgtype.Timestamptz{}
	if nc.ResolvedAt != nil {
		resolvedAt = pgtype.Timestamptz{Time: *nc.ResolvedAt, Valid: true}
	}

	db := GetDBTX(ctx, r.pool)
	row := db.QueryRow(ctx, query, nc.ID, string(nc.Status), nc.CorrectiveAction, resolvedAt)

	updated, err := scanNonConformance(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNonConformanceNotFound
		}
		return nil, err
	}
	return updated, nil
}

func pgDatePtr(value *time.Time) pgtype.Date {
	if value == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: *value, Valid: true}
}

func scanNonConformance(row pgx.Row) (*domain.NonConformance, error) {
	var (
		nc               domain.NonConformance
		employeeID       pgtype.UUID
		clientID         pgtype.UUID
		severity         string
		occurredOn       pgtype.Date
		status           string
		correctiveAction pgtype.Text
		resolvedAt       pgtype.Timestamptz
	)
	err := row.Scan(&nc.ID, &nc.BranchID, &employeeID, &clientID, &severity,
		&occurredOn, &nc.Description, &status, &correctiveAction,
		&nc.CreatedAt, &resolvedAt)
	if err != nil {
		return nil, err
	}

	nc.EmployeeID = uuidPtrFromPg(employeeID)
	nc.ClientID = uuidPtrFromPg(clientID)
	nc.Severity = domain.Severity(severity)
	nc.OccurredOn = occurredOn.Time
	nc.Status = domain.NonConformanceStatus(status)
	nc.CorrectiveAction = textOrEmpty(correctiveAction)
	nc.ResolvedAt = timePtrFromPg(resolvedAt)
	return &nc, nil
}

func collectNonConformances(rows pgx.Rows) ([]*domain.NonConformance, error) {
	var records []*domain.NonConformance
	for rows.Next() {
		nc, err := scanNonConformance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, nc)
	}
	return records, rows.Err()
}
