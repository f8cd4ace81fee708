package main

import (
	"net/http"
	"os"
	"time"

	jwtauth "ubs-monitoring/internal/adapters/auth/jwt"
	pg "ubs-monitoring/internal/adapters/storage/postgres"
	"ubs-monitoring/internal/domain/users"
	"ubs-monitoring/internal/platform/config"
	"ubs-monitoring/internal/platform/logger"
	"ubs-monitoring/internal/platform/metrics"
	"ubs-monitoring/internal/ports/auth"
	"ubs-monitoring/internal/router"
)

func main() {
	cfg := config.FromEnv()
	log := logger.NewFromEnv()

	var (
		verifier auth.AuthVerifier
		issuer   users.TokenIssuer
	)
	if cfg.JWTSigningKey != "" {
		v := jwtauth.NewVerifier(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL)
		verifier = v
		issuer = v
	} else {
		log.Warn("JWT_SIGNING_KEY not set, running in dev mode (X-Debug-* headers)", nil)
	}

	opts := router.Options{
		AuthVerifier: verifier,
		TokenIssuer:  issuer,
		Log:          log,
		Metrics:      metrics.New(),
	}

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres connection failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		opts.DB = db
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
