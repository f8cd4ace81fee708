package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"ubs-monitoring/internal/domain/records"
	"ubs-monitoring/internal/platform/sentinel"
)

// RefChecker responde se um id referenciado existe. Satisfeito pelos repos
// in-memory de unidades, doenças e funcionários.
type RefChecker interface {
	Exists(id string) bool
}

type RecordsRepo struct {
	mu   sync.RWMutex
	byID map[string]records.MedicalRecord

	units     RefChecker
	diseases  RefChecker
	employees RefChecker
}

// NewRecordsRepo recebe os checadores de FK para manter a mesma semântica
// das constraints do postgres. Referências penduradas após delete de
// unidade/doença são toleradas (ação referencial "no action"): a checagem
// só vale no momento da escrita.
func NewRecordsRepo(units, diseases, employees RefChecker) *RecordsRepo {
	return &RecordsRepo{
		byID:      make(map[string]records.MedicalRecord),
		units:     units,
		diseases:  diseases,
		employees: employees,
	}
}

func (r *RecordsRepo) checkRefs(rec records.MedicalRecord) error {
	if rec.UBSID != nil && r.units != nil && !r.units.Exists(*rec.UBSID) {
		return sentinel.ErrInvalidRef
	}
	if rec.DiseaseID != nil && r.diseases != nil && !r.diseases.Exists(*rec.DiseaseID) {
		return sentinel.ErrInvalidRef
	}
	if rec.EmployeeID != nil && r.employees != nil && !r.employees.Exists(*rec.EmployeeID) {
		return sentinel.ErrInvalidRef
	}
	return nil
}

func (r *RecordsRepo) Create(ctx context.Context, rec records.MedicalRecord) error {
	if err := r.checkRefs(rec); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return sentinel.ErrConflict
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *RecordsRepo) GetByID(ctx context.Context, id string) (records.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return records.MedicalRecord{}, sentinel.ErrNotFound
	}
	return rec, nil
}

func (r *RecordsRepo) List(ctx context.Context, filter records.ListFilter) ([]records.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.MedicalRecord, 0)
	for _, rec := range r.byID {
		if filter.UBSID != "" && (rec.UBSID == nil || *rec.UBSID != filter.UBSID) {
			continue
		}
		if filter.DiseaseID != "" && (rec.DiseaseID == nil || *rec.DiseaseID != filter.DiseaseID) {
			continue
		}
		out = append(out, rec)
	}

	// Mais recentes primeiro.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *RecordsRepo) Update(ctx context.Context, rec records.MedicalRecord) error {
	if err := r.checkRefs(rec); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rec.ID]; !exists {
		return sentinel.ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *RecordsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return sentinel.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *RecordsRepo) Count(ctx context.Context) (total int, active int, err error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.byID {
		total++
		if rec.Status == records.StatusActive {
			active++
		}
	}
	return total, active, nil
}

func (r *RecordsRepo) CountByUnit(ctx context.Context, ubsID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, rec := range r.byID {
		if rec.UBSID != nil && *rec.UBSID == ubsID {
			n++
		}
	}
	return n, nil
}

func (r *RecordsRepo) CountByDisease(ctx context.Context, diseaseID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, rec := range r.byID {
		if rec.DiseaseID != nil && *rec.DiseaseID == diseaseID {
			n++
		}
	}
	return n, nil
}
