package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qualitec/erp-backend/internal/core/domain"
	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
	"github.com/qualitec/erp-backend/internal/core/ports"
)

// LoanRepository is the secondary adapter for equipment loan persistence.
type LoanRepository struct {
	pool *pgxpool.Pool
}

var _ ports.LoanRepository = (*LoanRepository)(nil)

// NewLoanRepository creates a new loan repository.
func NewLoanRepository(pool *pgxpool.Pool) ports.LoanRepository {
	return &LoanRepository{pool: pool}
}

const loanColumns = `
	id, branch_id, employee_id, equipment, loaned_at, due_on, returned_at, created_at
`

func (r *LoanRepository) Create(ctx context.Context, loan *domain.EquipmentLoan) (*domain.EquipmentLoan, error) {
	const query = `
		INSERT INTO equipment_loans
			(branch_id, employee_id, equipment, loaned_at, due_on, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + loanColumns

	db := GetDBTX(ctx, r.pool)
	row := db.QueryRow(ctx, query,
		pgUUID(loan.BranchID), pgUUID(loan.EmployeeID), loan.Equipment,
		pgtype.Date{Time: loan.LoanedAt, Valid: true},
		pgtype.Date{Time: loan.DueOn, Valid: true}, loan.CreatedAt)

	return scanLoan(row)
}

func (r *LoanRepository) GetByID(ctx context.Context, id int64) (*domain.EquipmentLoan, error) {
	const query = `
		SELECT ` + loanColumns + `
		FROM equipment_loans
		WHERE id = $1
	`

	db := GetDBTX(ctx, r.pool)
	loan, err := scanLoan(db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

func (r *LoanRepository) List(ctx context.Context, params ports.ListLoansParams) ([]*domain.EquipmentLoan, error) {
	const query = `
		SELECT ` + loanColumns + `
		FROM equipment_loans
		WHERE ($1::uuid IS NULL OR branch_id = $1)
		  AND ($2::uuid IS NULL OR employee_id = $2)
		  AND ($3 = false OR returned_at IS NULL)
		ORDER BY loaned_at DESC, id DESC
		LIMIT $4 OFFSET $5
	`

	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query,
		pgUUIDPtr(params.BranchID), pgUUIDPtr(params.EmployeeID), params.OnlyOpen,
		params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []*domain.EquipmentLoan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

func (r *LoanRepository) SetReturned(ctx context.Context, id int64, at time.Time) error {
	const query = `
		UPDATE equipment_loans
		SET returned_at = $2
		WHERE id = $1 AND returned_at IS NULL
	`

	db := GetDBTX(ctx, r.pool)
	tag, err := db.Exec(ctx, query, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// The caller checked the loan exists, so a miss means a concurrent return.
		return apperrors.ErrAlreadyReturned
	}
	return nil
}

func scanLoan(row pgx.Row) (*domain.EquipmentLoan, error) {
	var (
		loan       domain.EquipmentLoan
		loanedAt   pgtype.Date
		dueOn      pgtype.Date
		returnedAt pgtype.Timestamptz
	)
	err := row.Scan(&loan.ID, &loan.BranchID, &loan.EmployeeID, &loan.Equipment,
		&loanedAt, &dueOn, &returnedAt, &loan.CreatedAt)
	if err != nil {
		return nil, err
	}

	loan.LoanedAt = loanedAt.Time
	loan.DueOn = dueOn.Time
	loan.ReturnedAt = timePtrFromPg(returnedAt)
	return &loan, nil
}
