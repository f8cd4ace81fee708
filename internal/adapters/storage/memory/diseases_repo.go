package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"ubs-monitoring/internal/domain/diseases"
	"ubs-monitoring/internal/platform/sentinel"
)

type DiseasesRepo struct {
	mu   sync.RWMutex
	byID map[string]diseases.Disease
}

func NewDiseasesRepo() *DiseasesRepo {
	return &DiseasesRepo{
		byID: make(map[string]diseases.Disease),
	}
}

func (r *DiseasesRepo) Create(ctx context.Context, d diseases.Disease) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("disease id required")
	}
	if _, exists := r.byID[d.ID]; exists {
		return sentinel.ErrConflict
	}
	for _, other := range r.byID {
		if strings.EqualFold(other.Name, d.Name) {
			return sentinel.ErrConflict
		}
	}
	r.byID[d.ID] = d
	return nil
}

func (r *DiseasesRepo) GetByID(ctx context.Context, id string) (diseases.Disease, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return diseases.Disease{}, sentinel.ErrNotFound
	}
	return d, nil
}

func (r *DiseasesRepo) ListAll(ctx context.Context) ([]diseases.Disease, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]diseases.Disease, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool {
		return nameLess(out[i].Name, out[j].Name)
	})

	return out, nil
}

func (r *DiseasesRepo) Update(ctx context.Context, d diseases.Disease) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[d.ID]; !exists {
		return sentinel.ErrNotFound
	}
	for id, other := range r.byID {
		if id != d.ID && strings.EqualFold(other.Name, d.Name) {
			return sentinel.ErrConflict
		}
	}
	r.byID[d.ID] = d
	return nil
}

func (r *DiseasesRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return sentinel.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// Exists é usado pelo repo de prontuários para simular a FK de doença.
func (r *DiseasesRepo) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}
