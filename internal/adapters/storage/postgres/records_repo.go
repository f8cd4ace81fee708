package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ubs-monitoring/internal/domain/records"
	"ubs-monitoring/internal/platform/sentinel"
)

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

// checkRefs valida as referências do prontuário na escrita. As colunas não
// carregam FK de verdade: o delete de unidade/doença pode deixar referência
// pendurada sem bloquear, então a integridade só é garantida aqui.
func (r *RecordsRepo) checkRefs(ctx context.Context, rec records.MedicalRecord) error {
	check := func(table string, id *string) error {
		if id == nil {
			return nil
		}
		var exists bool
		q := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table)
		if err := r.db.QueryRowContext(ctx, q, *id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return sentinel.ErrInvalidRef
		}
		return nil
	}

	if err := check("ubs_units", rec.UBSID); err != nil {
		return err
	}
	if err := check("diseases", rec.DiseaseID); err != nil {
		return err
	}
	return check("employees", rec.EmployeeID)
}

func (r *RecordsRepo) Create(ctx context.Context, rec records.MedicalRecord) error {
	if err := r.checkRefs(ctx, rec); err != nil {
		return err
	}

	data, err := json.Marshal(rec.Data)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO medical_records (
			id, patient_name, patient_birth_date,
			disease_id, ubs_id, employee_id,
			status, data,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		rec.ID,
		rec.PatientName,
		rec.PatientBirthDate,
		toNullString(rec.DiseaseID),
		toNullString(rec.UBSID),
		toNullString(rec.EmployeeID),
		string(rec.Status),
		data,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return mapError(err)
}

func (r *RecordsRepo) GetByID(ctx context.Context, id string) (records.MedicalRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return records.MedicalRecord{}, sentinel.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, patient_name, patient_birth_date,
			disease_id, ubs_id, employee_id,
			status, data,
			created_at, updated_at
		FROM medical_records
		WHERE id = $1
	`, id)

	rec, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return records.MedicalRecord{}, sentinel.ErrNotFound
		}
		return records.MedicalRecord{}, err
	}
	return rec, nil
}

func (r *RecordsRepo) List(ctx context.Context, filter records.ListFilter) ([]records.MedicalRecord, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, patient_name, patient_birth_date,
			disease_id, ubs_id, employee_id,
			status, data,
			created_at, updated_at
		FROM medical_records
		WHERE 1=1
	`)

	args := []any{}
	argN := 1

	if filter.UBSID != "" {
		sb.WriteString(fmt.Sprintf(" AND ubs_id = $%d", argN))
		args = append(args, filter.UBSID)
		argN++
	}
	if filter.DiseaseID != "" {
		sb.WriteString(fmt.Sprintf(" AND disease_id = $%d", argN))
		args = append(args, filter.DiseaseID)
		argN++
	}

	sb.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.MedicalRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

func (r *RecordsRepo) Update(ctx context.Context, rec records.MedicalRecord) error {
	if err := r.checkRefs(ctx, rec); err != nil {
		return err
	}

	data, err := json.Marshal(rec.Data)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE medical_records
		SET
			patient_name = $2,
			patient_birth_date = $3,
			disease_id = $4,
			ubs_id = $5,
			employee_id = $6,
			status = $7,
			data = $8,
			updated_at = $9
		WHERE id = $1
	`,
		rec.ID,
		rec.PatientName,
		rec.PatientBirthDate,
		toNullString(rec.DiseaseID),
		toNullString(rec.UBSID),
		toNullString(rec.EmployeeID),
		string(rec.Status),
		data,
		rec.UpdatedAt,
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

func (r *RecordsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medical_records WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (r *RecordsRepo) Count(ctx context.Context) (total int, active int, err error) {
	err = r.db.QueryRowContext(ctx, `
		SELECT count(*), count(*) FILTER (WHERE status = 'active')
		FROM medical_records
	`).Scan(&total, &active)
	return total, active, err
}

func (r *RecordsRepo) CountByUnit(ctx context.Context, ubsID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*) FROM medical_records WHERE ubs_id = $1
	`, ubsID).Scan(&n)
	return n, err
}

func (r *RecordsRepo) CountByDisease(ctx context.Context, diseaseID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*) FROM medical_records WHERE disease_id = $1
	`, diseaseID).Scan(&n)
	return n, err
}

func scanRecord(scan func(...any) error) (records.MedicalRecord, error) {
	var rec records.MedicalRecord
	var diseaseID, ubsID, employeeID sql.NullString
	var status string
	var data []byte

	if err := scan(
		&rec.ID,
		&rec.PatientName,
		&rec.PatientBirthDate,
		&diseaseID,
		&ubsID,
		&employeeID,
		&status,
		&data,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return records.MedicalRecord{}, err
	}

	rec.DiseaseID = fromNullString(diseaseID)
	rec.UBSID = fromNullString(ubsID)
	rec.EmployeeID = fromNullString(employeeID)
	rec.Status = records.Status(status)

	if err := json.Unmarshal(data, &rec.Data); err != nil {
		return records.MedicalRecord{}, fmt.Errorf("decode payload: %w", err)
	}

	return rec, nil
}

func toNullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func fromNullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
