package diseases

import "context"

type Repository interface {
	// Create falha com sentinel.ErrConflict se já existir doença com o
	// mesmo nome.
	Create(ctx context.Context, d Disease) error

	GetByID(ctx context.Context, id string) (Disease, error)

	// ListAll devolve as doenças por nome ascendente (colação pt-BR).
	ListAll(ctx context.Context) ([]Disease, error)

	Update(ctx context.Context, d Disease) error
	Delete(ctx context.Context, id string) error
}
