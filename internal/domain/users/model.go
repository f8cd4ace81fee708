package users

import "time"

// Role define o papel do usuário para autorização.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDoctor Role = "doctor"
	RoleNurse  Role = "nurse"
)

// ValidRole reporta se s é um papel conhecido.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleDoctor, RoleNurse:
		return true
	}
	return false
}

// User é uma conta do sistema. Username é único.
type User struct {
	ID string

	Username     string
	PasswordHash string // bcrypt
	Name         string
	Role         Role

	CreatedAt time.Time
	UpdatedAt time.Time
}
