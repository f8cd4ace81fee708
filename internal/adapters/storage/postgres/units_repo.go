package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"ubs-monitoring/internal/domain/units"
	"ubs-monitoring/internal/platform/sentinel"
)

type UnitsRepo struct {
	db *sql.DB
}

func NewUnitsRepo(db *sql.DB) *UnitsRepo {
	return &UnitsRepo{db: db}
}

func (r *UnitsRepo) Create(ctx context.Context, u units.HealthUnit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ubs_units (
			id, name, address, city, state, zip,
			phone, email, district,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		u.ID,
		u.Name,
		u.Address,
		u.City,
		u.State,
		u.Zip,
		u.Phone,
		u.Email,
		u.District,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return mapError(err)
}

func (r *UnitsRepo) GetByID(ctx context.Context, id string) (units.HealthUnit, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return units.HealthUnit{}, sentinel.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, address, city, state, zip,
			phone, email, district,
			created_at, updated_at
		FROM ubs_units
		WHERE id = $1
	`, id)

	var u units.HealthUnit
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Address,
		&u.City,
		&u.State,
		&u.Zip,
		&u.Phone,
		&u.Email,
		&u.District,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return units.HealthUnit{}, sentinel.ErrNotFound
		}
		return units.HealthUnit{}, err
	}

	return u, nil
}

func (r *UnitsRepo) ListAll(ctx context.Context) ([]units.HealthUnit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name, address, city, state, zip,
			phone, email, district,
			created_at, updated_at
		FROM ubs_units
		ORDER BY name COLLATE "pt-BR-x-icu" ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]units.HealthUnit, 0)
	for rows.Next() {
		var u units.HealthUnit
		if err := rows.Scan(
			&u.ID,
			&u.Name,
			&u.Address,
			&u.City,
			&u.State,
			&u.Zip,
			&u.Phone,
			&u.Email,
			&u.District,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}

	return out, rows.Err()
}

func (r *UnitsRepo) Update(ctx context.Context, u units.HealthUnit) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE ubs_units
		SET
			name = $2,
			address = $3,
			city = $4,
			state = $5,
			zip = $6,
			phone = $7,
			email = $8,
			district = $9,
			updated_at = $10
		WHERE id = $1
	`,
		u.ID,
		u.Name,
		u.Address,
		u.City,
		u.State,
		u.Zip,
		u.Phone,
		u.Email,
		u.District,
		u.UpdatedAt,
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

// Delete remove a unidade; os funcionários vão junto via ON DELETE CASCADE.
func (r *UnitsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ubs_units WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (r *UnitsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM ubs_units`).Scan(&n)
	return n, err
}
