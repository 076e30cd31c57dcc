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

// EmployeeRepository is the secondary adapter for employee persistence.
// All reads join the branch name so callers get display-ready rows.
type EmployeeRepository struct {
	pool *pgxpool.Pool
}

var _ ports.EmployeeRepository = (*EmployeeRepository)(nil)

// NewEmployeeRepository creates a new employee repository.
func NewEmployeeRepository(pool *pgxpool.Pool) ports.EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

const employeeColumns = `
	e.id, e.branch_id, b.name, e.full_name, e.registration, e.role_title,
	e.active, e.admitted_on, e.created_at
`

func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	const query = `
		INSERT INTO employees (id, branch_id, full_name, registration, role_title, active, admitted_on, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	admittedOn := pgtype.Date{Time: employee.AdmittedOn, Valid: !employee.AdmittedOn.IsZero()}

	db := GetDBTX(ctx, r.pool)
	_, err := db.Exec(ctx, query,
		pgUUID(employee.ID), pgUUID(employee.BranchID), employee.FullName,
		employee.Registration, employee.RoleTitle, employee.Active,
		admittedOn, employee.CreatedAt)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, employee.ID)
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	const query = `
		SELECT ` + employeeColumns + `
		FROM employees e
		JOIN branches b ON b.id = e.branch_id
		WHERE e.id = $1
	`

	db := GetDBTX(ctx, r.pool)
	employee, err := scanEmployee(db.QueryRow(ctx, query, pgUUID(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

func (r *EmployeeRepository) List(ctx context.Context, params ports.ListEmployeesParams) ([]*domain.Employee, error) {
	const query = `
		SELECT ` + employeeColumns + `
		FROM employees e
		JOIN branches b ON b.id = e.branch_id
		WHERE ($1::uuid IS NULL OR e.branch_id = $1)
		  AND ($2 = false OR e.active = true)
		ORDER BY e.full_name
		LIMIT $3 OFFSET $4
	`

	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query,
		pgUUIDPtr(params.BranchID), params.OnlyActive, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// ListActive returns the full active roster, unpaginated. The ranking engine
// needs every active employee, including those with zero incidents.
func (r *EmployeeRepository) ListActive(ctx context.Context, branchID *uuid.UUID) ([]*domain.Employee, error) {
	const query = `
		SELECT ` + employeeColumns + `
		FROM employees e
		JOIN branches b ON b.id = e.branch_id
		WHERE e.active = true
		  AND ($1::uuid IS NULL OR e.branch_id = $1)
		ORDER BY e.full_name
	`

	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query, pgUUIDPtr(branchID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func (r *EmployeeRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	const query = `UPDATE employees SET active = $2 WHERE id = $1`

	db := GetDBTX(ctx, r.pool)
	tag, err := db.Exec(ctx, query, pgUUID(id), active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEmployeeNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var (
		employee   domain.Employee
		roleTitle  pgtype.Text
		admittedOn pgtype.Date
	)
	err := row.Scan(&employee.ID, &employee.BranchID, &employee.BranchName,
		&employee.FullName, &employee.Registration, &roleTitle,
		&employee.Active, &admittedOn, &employee.CreatedAt)
	if err != nil {
		return nil, err
	}

	employee.RoleTitle = textOrEmpty(roleTitle)
	if admittedOn.Valid {
		employee.AdmittedOn = admittedOn.Time
	} else {
		employee.AdmittedOn = time.Time{}
	}
	return &employee, nil
}

func collectEmployees(rows pgx.Rows) ([]*domain.Employee, error) {
	var employees []*domain.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}
