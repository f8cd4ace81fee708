package units

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

// RecordCounter informa quantos prontuários ainda apontam para uma unidade.
// Satisfeito por records.Repository.
type RecordCounter interface {
	CountByUnit(ctx context.Context, ubsID string) (int, error)
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
	Name     string
	Address  string
	City     string
	State    string
	Zip      string
	Phone    string
	Email    string
	District string
}

type UpdateInput struct {
	// Ponteiros para merge-patch: nil = não tocar.
	Name     *string
	Address  *string
	City     *string
	State    *string
	Zip      *string
	Phone    *string
	Email    *string
	District *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (HealthUnit, error) {
	if strings.TrimSpace(in.Name) == "" {
		return HealthUnit{}, ErrInvalidInput
	}

	now := s.now()
	u := HealthUnit{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Address:   strings.TrimSpace(in.Address),
		City:      strings.TrimSpace(in.City),
		State:     strings.TrimSpace(in.State),
		Zip:       strings.TrimSpace(in.Zip),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		District:  strings.TrimSpace(in.District),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return HealthUnit{}, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (HealthUnit, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return HealthUnit{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]HealthUnit, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (HealthUnit, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return HealthUnit{}, ErrInvalidInput
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return HealthUnit{}, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	apply(&u.Name, in.Name)
	apply(&u.Address, in.Address)
	apply(&u.City, in.City)
	apply(&u.State, in.State)
	apply(&u.Zip, in.Zip)
	apply(&u.Phone, in.Phone)
	apply(&u.Email, in.Email)
	apply(&u.District, in.District)

	if strings.TrimSpace(u.Name) == "" {
		return HealthUnit{}, ErrInvalidInput
	}

	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return HealthUnit{}, err
	}
	return u, nil
}

// Delete remove a unidade. Funcionários vão junto (cascata no storage).
// Prontuários que ainda referenciam a unidade ficam pendurados; o caso é
// sinalizado no log, não bloqueado.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}

	if s.recs != nil {
		if n, err := s.recs.CountByUnit(ctx, id); err == nil && n > 0 {
			s.log.Warn("deleting unit still referenced by records", map[string]any{
				"ubs_id":           id,
				"dangling_records": n,
			})
		}
	}

	return s.repo.Delete(ctx, id)
}
