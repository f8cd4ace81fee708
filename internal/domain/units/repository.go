package units

import "context"

type Repository interface {
	Create(ctx context.Context, u HealthUnit) error
	GetByID(ctx context.Context, id string) (HealthUnit, error)

	// ListAll devolve as unidades por nome ascendente (colação pt-BR).
	ListAll(ctx context.Context) ([]HealthUnit, error)

	Update(ctx context.Context, u HealthUnit) error

	// Delete remove a unidade e, em cascata, seus funcionários.
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context) (int, error)
}
