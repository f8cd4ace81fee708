package records

import "time"

// Status define a situação do prontuário. Livre: qualquer valor pode
// mudar para qualquer outro, sem máquina de transições.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCritical  Status = "critical"
	StatusFollowUp  Status = "follow-up"
)

// ValidStatus reporta se s é um dos status conhecidos.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusActive, StatusCompleted, StatusCritical, StatusFollowUp:
		return true
	}
	return false
}

// MedicalRecord é o prontuário de monitoramento de um caso.
//
// PatientName e PatientBirthDate são cópias desnormalizadas de
// data.monitoramento.nome / data_nascimento, mantidas em sincronia para
// listagem e busca. A sincronia é unidirecional: a raiz nunca sobrescreve
// o payload.
type MedicalRecord struct {
	ID string

	PatientName      string
	PatientBirthDate string // YYYY-MM-DD

	// Referências opcionais a outros agregados.
	DiseaseID  *string
	UBSID      *string
	EmployeeID *string

	Status Status
	Data   Payload

	CreatedAt time.Time
	UpdatedAt time.Time
}
