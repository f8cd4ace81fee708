package records

import "context"

// ListFilter restringe a listagem de prontuários. Campos vazios não filtram.
type ListFilter struct {
	UBSID     string
	DiseaseID string
}

type Repository interface {
	Create(ctx context.Context, rec MedicalRecord) error
	GetByID(ctx context.Context, id string) (MedicalRecord, error)

	// List devolve os prontuários por created_at descendente (mais recentes
	// primeiro).
	List(ctx context.Context, filter ListFilter) ([]MedicalRecord, error)

	Update(ctx context.Context, rec MedicalRecord) error
	Delete(ctx context.Context, id string) error

	// Counts ao vivo para o painel de estatísticas e para sinalizar
	// referências penduradas em deletes de unidade/doença.
	Count(ctx context.Context) (total int, active int, err error)
	CountByUnit(ctx context.Context, ubsID string) (int, error)
	CountByDisease(ctx context.Context, diseaseID string) (int, error)
}
