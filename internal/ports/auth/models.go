package auth

// Claims representa a identidade extraída do token.
type Claims struct {
	UserID   string
	Username string
	Role     string // admin, doctor, nurse
}
