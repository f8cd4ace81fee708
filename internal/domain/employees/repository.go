package employees

import "context"

// ListFilter restringe a listagem. Campos vazios não filtram.
type ListFilter struct {
	UBSID string
	Role  string
}

type Repository interface {
	Create(ctx context.Context, e Employee) error
	GetByID(ctx context.Context, id string) (Employee, error)

	// List devolve os funcionários por nome ascendente (colação pt-BR).
	List(ctx context.Context, filter ListFilter) ([]Employee, error)

	Update(ctx context.Context, e Employee) error
	Delete(ctx context.Context, id string) error

	// CountActiveDoctors para o painel de estatísticas.
	CountActiveDoctors(ctx context.Context) (int, error)
}
