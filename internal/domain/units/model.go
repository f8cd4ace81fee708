package units

import "time"

// HealthUnit representa uma UBS (Unidade Básica de Saúde).
type HealthUnit struct {
	ID string

	Name     string
	Address  string
	City     string
	State    string
	Zip      string
	Phone    string
	Email    string
	District string

	CreatedAt time.Time
	UpdatedAt time.Time
}
