package employees

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ubs-monitoring/internal/middleware"
	"ubs-monitoring/internal/platform/sentinel"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/employees", func(er chi.Router) {
		er.Get("/", listEmployeesHandler(svc))
		er.Get("/{employeeID}", getEmployeeHandler(svc))

		er.With(middleware.RequireRole("admin")).Post("/", createEmployeeHandler(svc))
		er.With(middleware.RequireRole("admin")).Put("/{employeeID}", updateEmployeeHandler(svc))
		er.With(middleware.RequireRole("admin")).Delete("/{employeeID}", deleteEmployeeHandler(svc))
	})
}

type createEmployeeRequest struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Specialty string `json:"specialty"`
	License   string `json:"license"`
	UBSID     string `json:"ubsId"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Active    *bool  `json:"active"`
}

type updateEmployeeRequest struct {
	// Ponteiros para merge-patch: nil = não tocar.
	Name      *string `json:"name"`
	Role      *string `json:"role"`
	Specialty *string `json:"specialty"`
	License   *string `json:"license"`
	UBSID     *string `json:"ubsId"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Active    *bool   `json:"active"`
}

type employeeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Specialty string    `json:"specialty"`
	License   string    `json:"license"`
	UBSID     string    `json:"ubsId"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func createEmployeeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEmployeeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), CreateInput(req))
		if err != nil {
			writeEmployeeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toEmployeeResponse(e))
	}
}

func getEmployeeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "employeeID"))
		if err != nil {
			writeEmployeeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEmployeeResponse(e))
	}
}

func listEmployeesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{
			UBSID: r.URL.Query().Get("ubsId"),
			Role:  r.URL.Query().Get("role"),
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			writeEmployeeError(w, err)
			return
		}

		out := make([]employeeResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEmployeeResponse(e))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func updateEmployeeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateEmployeeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.Update(r.Context(), chi.URLParam(r, "employeeID"), UpdateInput(req))
		if err != nil {
			writeEmployeeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toEmployeeResponse(e))
	}
}

func deleteEmployeeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
			writeEmployeeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeEmployeeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, sentinel.ErrNotFound):
		http.Error(w, "employee not found", http.StatusNotFound)
	case errors.Is(err, sentinel.ErrInvalidRef):
		http.Error(w, "ubs not found", http.StatusConflict)
	case errors.Is(err, sentinel.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toEmployeeResponse(e Employee) employeeResponse {
	return employeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Role:      string(e.Role),
		Specialty: e.Specialty,
		License:   e.License,
		UBSID:     e.UBSID,
		Phone:     e.Phone,
		Email:     e.Email,
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
