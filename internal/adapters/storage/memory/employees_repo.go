package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"ubs-monitoring/internal/domain/employees"
	"ubs-monitoring/internal/platform/sentinel"
)

type EmployeesRepo struct {
	mu   sync.RWMutex
	byID map[string]employees.Employee

	units *UnitsRepo // checagem de FK; setado por SetUnits na montagem
}

func NewEmployeesRepo() *EmployeesRepo {
	return &EmployeesRepo{
		byID: make(map[string]employees.Employee),
	}
}

// SetUnits liga a checagem de FK unidade↔funcionário. Os dois repos se
// referenciam (cascata de um lado, FK do outro), então a ligação é feita
// depois dos construtores.
func (r *EmployeesRepo) SetUnits(units *UnitsRepo) {
	r.units = units
}

func (r *EmployeesRepo) Create(ctx context.Context, e employees.Employee) error {
	if r.units != nil && !r.units.Exists(e.UBSID) {
		return sentinel.ErrInvalidRef
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("employee id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return sentinel.ErrConflict
	}
	r.byID[e.ID] = e
	return nil
}

func (r *EmployeesRepo) GetByID(ctx context.Context, id string) (employees.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return employees.Employee{}, sentinel.ErrNotFound
	}
	return e, nil
}

func (r *EmployeesRepo) List(ctx context.Context, filter employees.ListFilter) ([]employees.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]employees.Employee, 0)
	for _, e := range r.byID {
		if filter.UBSID != "" && e.UBSID != filter.UBSID {
			continue
		}
		if filter.Role != "" && string(e.Role) != filter.Role {
			continue
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		return nameLess(out[i].Name, out[j].Name)
	})

	return out, nil
}

func (r *EmployeesRepo) Update(ctx context.Context, e employees.Employee) error {
	if r.units != nil && !r.units.Exists(e.UBSID) {
		return sentinel.ErrInvalidRef
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[e.ID]; !exists {
		return sentinel.ErrNotFound
	}
	r.byID[e.ID] = e
	return nil
}

func (r *EmployeesRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return sentinel.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *EmployeesRepo) CountActiveDoctors(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, e := range r.byID {
		if e.Active && e.Role == employees.RoleDoctor {
			n++
		}
	}
	return n, nil
}

// Exists é usado pelo repo de prontuários para simular a FK de funcionário.
func (r *EmployeesRepo) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}

// deleteByUnit varre os funcionários da unidade (cascata do delete de UBS).
func (r *EmployeesRepo) deleteByUnit(ubsID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, e := range r.byID {
		if e.UBSID == ubsID {
			delete(r.byID, id)
		}
	}
}
