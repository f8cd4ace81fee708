package diseases

import (
	"context"
	"errors"
	"strings"
	"time"

	"ubs-monitoring/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// RecordCounter informa quantos prontuários ainda apontam para uma doença.
// Satisfeito por records.Repository.
type RecordCounter interface {
	CountByDisease(ctx context.Context, diseaseID string) (int, error)
}

type Service struct {
	repo Repository
	recs RecordCounter
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, recs RecordCounter, log logger.Logger) *Service {
	return &Service{
		repo: repo,
		recs: recs,
		log:  log,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	ICD10       string
	Description string
	Symptoms    string
	Treatment   string
	Prevention  string
}

type UpdateInput struct {
	// Ponteiros para merge-patch: nil = não tocar.
	Name        *string
	ICD10       *string
	Description *string
	Symptoms    *string
	Treatment   *string
	Prevention  *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Disease, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Disease{}, ErrInvalidInput
	}

	now := s.now()
	d := Disease{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		ICD10:       strings.TrimSpace(in.ICD10),
		Description: strings.TrimSpace(in.Description),
		Symptoms:    strings.TrimSpace(in.Symptoms),
		Treatment:   strings.TrimSpace(in.Treatment),
		Prevention:  strings.TrimSpace(in.Prevention),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Disease{}, err
	}
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Disease, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Disease{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]Disease, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Disease, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Disease{}, ErrInvalidInput
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Disease{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Disease{}, ErrInvalidInput
		}
		d.Name = strings.TrimSpace(*in.Name)
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	apply(&d.ICD10, in.ICD10)
	apply(&d.Description, in.Description)
	apply(&d.Symptoms, in.Symptoms)
	apply(&d.Treatment, in.Treatment)
	apply(&d.Prevention, in.Prevention)

	d.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, d); err != nil {
		return Disease{}, err
	}
	return d, nil
}

// Delete remove a doença. Prontuários que ainda a referenciam ficam
// pendurados; sinalizamos no log e seguimos.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}

	if s.recs != nil {
		if n, err := s.recs.CountByDisease(ctx, id); err == nil && n > 0 {
			s.log.Warn("deleting disease still referenced by records", map[string]any{
				"disease_id":       id,
				"dangling_records": n,
			})
		}
	}

	return s.repo.Delete(ctx, id)
}
