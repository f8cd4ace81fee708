package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"ubs-monitoring/internal/domain/units"
	"ubs-monitoring/internal/platform/sentinel"
)

type UnitsRepo struct {
	mu   sync.RWMutex
	byID map[string]units.HealthUnit

	// Para a cascata unidade→funcionários (mesma semântica do
	// ON DELETE CASCADE do postgres).
	employees *EmployeesRepo
}

func NewUnitsRepo(employees *EmployeesRepo) *UnitsRepo {
	return &UnitsRepo{
		byID:      make(map[string]units.HealthUnit),
		employees: employees,
	}
}

func (r *UnitsRepo) Create(ctx context.Context, u units.HealthUnit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("unit id required")
	}
	if _, exists := r.byID[u.ID]; exists {
		return sentinel.ErrConflict
	}
	r.byID[u.ID] = u
	return nil
}

func (r *UnitsRepo) GetByID(ctx context.Context, id string) (units.HealthUnit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return units.HealthUnit{}, sentinel.ErrNotFound
	}
	return u, nil
}

func (r *UnitsRepo) ListAll(ctx context.Context) ([]units.HealthUnit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]units.HealthUnit, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}

	sort.Slice(out, func(i, j int) bool {
		return nameLess(out[i].Name, out[j].Name)
	})

	return out, nil
}

func (r *UnitsRepo) Update(ctx context.Context, u units.HealthUnit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[u.ID]; !exists {
		return sentinel.ErrNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *UnitsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	if _, exists := r.byID[id]; !exists {
		r.mu.Unlock()
		return sentinel.ErrNotFound
	}
	delete(r.byID, id)
	r.mu.Unlock()

	// Cascata fora do lock da unidade; o repo de funcionários tem o seu.
	if r.employees != nil {
		r.employees.deleteByUnit(id)
	}
	return nil
}

func (r *UnitsRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

// Exists é usado pelos outros repos in-memory para simular as constraints
// de chave estrangeira do postgres.
func (r *UnitsRepo) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}
