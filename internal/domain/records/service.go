package records

import (
	"context"
	"encoding/json"
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
	DiseaseID  *string
	UBSID      *string
	EmployeeID *string
	Status     string
	Data       json.RawMessage
}

// OptionalRef distingue "campo não enviado" (Present=false) de
// "campo enviado como null" (Present=true, Value=nil) no merge-patch.
type OptionalRef struct {
	Present bool
	Value   *string
}

type UpdateInput struct {
	Status     *string
	DiseaseID  OptionalRef
	UBSID      OptionalRef
	EmployeeID OptionalRef

	// Data substitui o payload inteiro quando presente; o documento nunca
	// é parcial.
	Data json.RawMessage
}

// Create valida o payload clínico, espelha nome/data de nascimento do
// paciente na raiz e persiste o prontuário completo.
func (s *Service) Create(ctx context.Context, in CreateInput) (MedicalRecord, error) {
	payload, err := ValidatePayload(in.Data)
	if err != nil {
		return MedicalRecord{}, err
	}

	status := Status(strings.TrimSpace(in.Status))
	if status == "" {
		status = StatusActive
	}
	if !ValidStatus(string(status)) {
		return MedicalRecord{}, ErrInvalidInput
	}

	now := s.now()
	rec := MedicalRecord{
		ID:               uuid.NewString(),
		PatientName:      payload.Monitoramento.Nome,
		PatientBirthDate: payload.Monitoramento.DataNascimento,
		DiseaseID:        normalizeRef(in.DiseaseID),
		UBSID:            normalizeRef(in.UBSID),
		EmployeeID:       normalizeRef(in.EmployeeID),
		Status:           status,
		Data:             payload,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return MedicalRecord{}, err
	}
	return rec, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (MedicalRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return MedicalRecord{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]MedicalRecord, error) {
	return s.repo.List(ctx, filter)
}

// Update aplica merge-patch: só os campos enviados sobrescrevem. Um novo
// payload re-espelha os campos desnormalizados da raiz. updatedAt é
// renovado em todo update bem-sucedido, mude o que mudar.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (MedicalRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return MedicalRecord{}, ErrInvalidInput
	}

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return MedicalRecord{}, err
	}

	if in.Status != nil {
		if !ValidStatus(strings.TrimSpace(*in.Status)) {
			return MedicalRecord{}, ErrInvalidInput
		}
		rec.Status = Status(strings.TrimSpace(*in.Status))
	}
	if in.DiseaseID.Present {
		rec.DiseaseID = normalizeRef(in.DiseaseID.Value)
	}
	if in.UBSID.Present {
		rec.UBSID = normalizeRef(in.UBSID.Value)
	}
	if in.EmployeeID.Present {
		rec.EmployeeID = normalizeRef(in.EmployeeID.Value)
	}
	if in.Data != nil {
		payload, err := ValidatePayload(in.Data)
		if err != nil {
			return MedicalRecord{}, err
		}
		rec.Data = payload
		rec.PatientName = payload.Monitoramento.Nome
		rec.PatientBirthDate = payload.Monitoramento.DataNascimento
	}

	rec.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, rec); err != nil {
		return MedicalRecord{}, err
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func normalizeRef(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
