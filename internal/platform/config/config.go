package config

import (
	"os"
	"time"
)

// Server reúne a configuração do processo para o main ficar enxuto.
type Server struct {
	Addr          string
	DBDSN         string // vazio => storage in-memory
	JWTSigningKey string // vazio => modo dev (sem verifier)
	JWTIssuer     string
	TokenTTL      time.Duration
}

// FromEnv monta a configuração a partir do ambiente.
func FromEnv() Server {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	ttl := 8 * time.Hour
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		}
	}

	return Server{
		Addr:          addr,
		DBDSN:         os.Getenv("DB_DSN"),
		JWTSigningKey: os.Getenv("JWT_SIGNING_KEY"),
		JWTIssuer:     "ubs-monitoring",
		TokenTTL:      ttl,
	}
}
