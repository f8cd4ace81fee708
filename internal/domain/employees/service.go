package employees

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name      string
	Role      string
	Specialty string
	License   string
	UBSID     string
	Phone     string
	Email     string
	Active    *bool // default true
}

type UpdateInput struct {
	// Ponteiros para merge-patch: nil = não tocar.
	Name      *string
	Role      *string
	Specialty *string
	License   *string
	UBSID     *string
	Phone     *string
	Email     *string
	Active    *bool
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Employee, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Employee{}, ErrInvalidInput
	}
	if !ValidRole(strings.TrimSpace(in.Role)) {
		return Employee{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.UBSID) == "" {
		return Employee{}, ErrInvalidInput
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	now := s.now()
	e := Employee{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Role:      Role(strings.TrimSpace(in.Role)),
		Specialty: strings.TrimSpace(in.Specialty),
		License:   strings.TrimSpace(in.License),
		UBSID:     strings.TrimSpace(in.UBSID),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Employee, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Employee{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Employee, error) {
	if filter.Role != "" && !ValidRole(filter.Role) {
		return nil, ErrInvalidInput
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Employee, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Employee{}, ErrInvalidInput
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Employee{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Employee{}, ErrInvalidInput
		}
		e.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		if !ValidRole(strings.TrimSpace(*in.Role)) {
			return Employee{}, ErrInvalidInput
		}
		e.Role = Role(strings.TrimSpace(*in.Role))
	}
	if in.Specialty != nil {
		e.Specialty = strings.TrimSpace(*in.Specialty)
	}
	if in.License != nil {
		e.License = strings.TrimSpace(*in.License)
	}
	if in.UBSID != nil {
		if strings.TrimSpace(*in.UBSID) == "" {
			return Employee{}, ErrInvalidInput
		}
		e.UBSID = strings.TrimSpace(*in.UBSID)
	}
	if in.Phone != nil {
		e.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		e.Email = strings.TrimSpace(*in.Email)
	}
	if in.Active != nil {
		e.Active = *in.Active
	}

	e.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, e); err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
