package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"ubs-monitoring/internal/domain/diseases"
	"ubs-monitoring/internal/platform/sentinel"
)

type DiseasesRepo struct {
	db *sql.DB
}

func NewDiseasesRepo(db *sql.DB) *DiseasesRepo {
	return &DiseasesRepo{db: db}
}

func (r *DiseasesRepo) Create(ctx context.Context, d diseases.Disease) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO diseases (
			id, name, icd10, description, symptoms, treatment, prevention,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		d.ID,
		d.Name,
		d.ICD10,
		d.Description,
		d.Symptoms,
		d.Treatment,
		d.Prevention,
		d.CreatedAt,
		d.UpdatedAt,
	)
	return mapError(err)
}

func (r *DiseasesRepo) GetByID(ctx context.Context, id string) (diseases.Disease, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return diseases.Disease{}, sentinel.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, icd10, description, symptoms, treatment, prevention,
			created_at, updated_at
		FROM diseases
		WHERE id = $1
	`, id)

	var d diseases.Disease
	if err := row.Scan(
		&d.ID,
		&d.Name,
		&d.ICD10,
		&d.Description,
		&d.Symptoms,
		&d.Treatment,
		&d.Prevention,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return diseases.Disease{}, sentinel.ErrNotFound
		}
		return diseases.Disease{}, err
	}

	return d, nil
}

func (r *DiseasesRepo) ListAll(ctx context.Context) ([]diseases.Disease, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name, icd10, description, symptoms, treatment, prevention,
			created_at, updated_at
		FROM diseases
		ORDER BY name COLLATE "pt-BR-x-icu" ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]diseases.Disease, 0)
	for rows.Next() {
		var d diseases.Disease
		if err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.ICD10,
			&d.Description,
			&d.Symptoms,
			&d.Treatment,
			&d.Prevention,
			&d.CreatedAt,
			&d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	return out, rows.Err()
}

func (r *DiseasesRepo) Update(ctx context.Context, d diseases.Disease) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE diseases
		SET
			name = $2,
			icd10 = $3,
			description = $4,
			symptoms = $5,
			treatment = $6,
			prevention = $7,
			updated_at = $8
		WHERE id = $1
	`,
		d.ID,
		d.Name,
		d.ICD10,
		d.Description,
		d.Symptoms,
		d.Treatment,
		d.Prevention,
		d.UpdatedAt,
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

func (r *DiseasesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM diseases WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
