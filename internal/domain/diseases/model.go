package diseases

import "time"

// Disease é uma entrada do registro de doenças monitoradas.
// Name é único (case-insensitive no storage).
type Disease struct {
	ID string

	Name        string
	ICD10       string // CID-10 como texto livre
	Description string
	Symptoms    string
	Treatment   string
	Prevention  string

	CreatedAt time.Time
	UpdatedAt time.Time
}
