package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ubs-monitoring/internal/domain/employees"
	"ubs-monitoring/internal/platform/sentinel"
)

type EmployeesRepo struct {
	db *sql.DB
}

func NewEmployeesRepo(db *sql.DB) *EmployeesRepo {
	return &EmployeesRepo{db: db}
}

func (r *EmployeesRepo) Create(ctx context.Context, e employees.Employee) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO employees (
			id, name, role, specialty, license, ubs_id,
			phone, email, active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		e.ID,
		e.Name,
		string(e.Role),
		e.Specialty,
		e.License,
		e.UBSID,
		e.Phone,
		e.Email,
		e.Active,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return mapError(err)
}

func (r *EmployeesRepo) GetByID(ctx context.Context, id string) (employees.Employee, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return employees.Employee{}, sentinel.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, role, specialty, license, ubs_id,
			phone, email, active,
			created_at, updated_at
		FROM employees
		WHERE id = $1
	`, id)

	e, err := scanEmployee(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employees.Employee{}, sentinel.ErrNotFound
		}
		return employees.Employee{}, err
	}
	return e, nil
}

func (r *EmployeesRepo) List(ctx context.Context, filter employees.ListFilter) ([]employees.Employee, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, name, role, specialty, license, ubs_id,
			phone, email, active,
			created_at, updated_at
		FROM employees
		WHERE 1=1
	`)

	args := []any{}
	argN := 1

	if filter.UBSID != "" {
		sb.WriteString(fmt.Sprintf(" AND ubs_id = $%d", argN))
		args = append(args, filter.UBSID)
		argN++
	}
	if filter.Role != "" {
		sb.WriteString(fmt.Sprintf(" AND role = $%d", argN))
		args = append(args, filter.Role)
		argN++
	}

	sb.WriteString(` ORDER BY name COLLATE "pt-BR-x-icu" ASC`)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]employees.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

func (r *EmployeesRepo) Update(ctx context.Context, e employees.Employee) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE employees
		SET
			name = $2,
			role = $3,
			specialty = $4,
			license = $5,
			ubs_id = $6,
			phone = $7,
			email = $8,
			active = $9,
			updated_at = $10
		WHERE id = $1
	`,
		e.ID,
		e.Name,
		string(e.Role),
		e.Specialty,
		e.License,
		e.UBSID,
		e.Phone,
		e.Email,
		e.Active,
		e.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (r *EmployeesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (r *EmployeesRepo) CountActiveDoctors(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*) FROM employees WHERE active AND role = 'doctor'
	`).Scan(&n)
	return n, err
}

func scanEmployee(scan func(...any) error) (employees.Employee, error) {
	var e employees.Employee
	var role string
	if err := scan(
		&e.ID,
		&e.Name,
		&role,
		&e.Specialty,
		&e.License,
		&e.UBSID,
		&e.Phone,
		&e.Email,
		&e.Active,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return employees.Employee{}, err
	}
	e.Role = employees.Role(role)
	return e, nil
}
