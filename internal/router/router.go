package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "ubs-monitoring/internal/adapters/storage/memory"
	pg "ubs-monitoring/internal/adapters/storage/postgres"
	"ubs-monitoring/internal/domain/diseases"
	"ubs-monitoring/internal/domain/employees"
	"ubs-monitoring/internal/domain/records"
	"ubs-monitoring/internal/domain/statistics"
	"ubs-monitoring/internal/domain/units"
	"ubs-monitoring/internal/domain/users"
	"ubs-monitoring/internal/middleware"
	"ubs-monitoring/internal/platform/logger"
	"ubs-monitoring/internal/platform/metrics"
	"ubs-monitoring/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // pode ser nil (modo dev, headers X-Debug-*)
	TokenIssuer  users.TokenIssuer // pode ser nil (login desabilitado)

	// Opcional: com DB usa Postgres; sem DB, in-memory.
	DB *sql.DB

	Log     logger.Logger    // nil => logger por env
	Metrics *metrics.Metrics // nil => sem métricas (testes)
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	var (
		unitsRepo     units.Repository
		employeesRepo employees.Repository
		diseasesRepo  diseases.Repository
		recordsRepo   records.Repository
		usersRepo     users.Repository
	)

	// Sem DB explícita, tenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		unitsRepo = pg.NewUnitsRepo(db)
		employeesRepo = pg.NewEmployeesRepo(db)
		diseasesRepo = pg.NewDiseasesRepo(db)
		recordsRepo = pg.NewRecordsRepo(db)
		usersRepo = pg.NewUsersRepo(db)
	} else {
		// Os repos in-memory se amarram entre si para reproduzir as
		// constraints do Postgres (FKs e cascata unidade→funcionários).
		memEmployees := mem.NewEmployeesRepo()
		memUnits := mem.NewUnitsRepo(memEmployees)
		memEmployees.SetUnits(memUnits)
		memDiseases := mem.NewDiseasesRepo()

		unitsRepo = memUnits
		employeesRepo = memEmployees
		diseasesRepo = memDiseases
		recordsRepo = mem.NewRecordsRepo(memUnits, memDiseases, memEmployees)
		usersRepo = mem.NewUsersRepo()
	}

	// Services por módulo
	recordsSvc := records.NewService(recordsRepo)
	unitsSvc := units.NewService(unitsRepo, recordsRepo, log)
	employeesSvc := employees.NewService(employeesRepo)
	diseasesSvc := diseases.NewService(diseasesRepo, recordsRepo, log)
	usersSvc := users.NewService(usersRepo)
	statsSvc := statistics.NewService(unitsRepo, employeesRepo, recordsRepo)

	r.Route("/api", func(api chi.Router) {
		records.RegisterRoutes(api, recordsSvc, opts.Metrics)
		units.RegisterRoutes(api, unitsSvc)
		employees.RegisterRoutes(api, employeesSvc)
		diseases.RegisterRoutes(api, diseasesSvc)
		users.RegisterRoutes(api, usersSvc, opts.TokenIssuer, opts.Metrics)
		statistics.RegisterRoutes(api, statsSvc)
	})

	return r
}
