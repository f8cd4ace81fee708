package employees

import "time"

// Role define o papel do funcionário na unidade.
type Role string

const (
	RoleDoctor         Role = "doctor"
	RoleNurse          Role = "nurse"
	RoleAdministrative Role = "administrative"
)

// ValidRole reporta se s é um papel conhecido.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleDoctor, RoleNurse, RoleAdministrative:
		return true
	}
	return false
}

// Employee representa um funcionário lotado em uma UBS.
type Employee struct {
	ID string

	Name      string
	Role      Role
	Specialty string
	License   string // CRM/COREN
	UBSID     string

	Phone  string
	Email  string
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
