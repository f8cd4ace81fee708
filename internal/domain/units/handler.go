package units

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
	r.Route("/ubs", func(ur chi.Router) {
		ur.Get("/", listUnitsHandler(svc))
		ur.Get("/{unitID}", getUnitHandler(svc))

		// Mutações de UBS são privilégio de admin.
		ur.With(middleware.RequireRole("admin")).Post("/", createUnitHandler(svc))
		ur.With(middleware.RequireRole("admin")).Put("/{unitID}", updateUnitHandler(svc))
		ur.With(middleware.RequireRole("admin")).Delete("/{unitID}", deleteUnitHandler(svc))
	})
}

type createUnitRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	District string `json:"district"`
}

type updateUnitRequest struct {
	// Ponteiros para merge-patch: nil = não tocar.
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	Zip      *string `json:"zip"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	District *string `json:"district"`
}

type unitResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Zip       string    `json:"zip"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	District  string    `json:"district"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func createUnitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUnitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Create(r.Context(), CreateInput(req))
		if err != nil {
			writeUnitError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toUnitResponse(u))
	}
}

func getUnitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetByID(r.Context(), chi.URLParam(r, "unitID"))
		if err != nil {
			writeUnitError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toUnitResponse(u))
	}
}

func listUnitsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]unitResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUnitResponse(u))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func updateUnitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUnitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Update(r.Context(), chi.URLParam(r, "unitID"), UpdateInput(req))
		if err != nil {
			writeUnitError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toUnitResponse(u))
	}
}

func deleteUnitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "unitID")); err != nil {
			writeUnitError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeUnitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, sentinel.ErrNotFound):
		http.Error(w, "unit not found", http.StatusNotFound)
	case errors.Is(err, sentinel.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toUnitResponse(u HealthUnit) unitResponse {
	return unitResponse{
		ID:        u.ID,
		Name:      u.Name,
		Address:   u.Address,
		City:      u.City,
		State:     u.State,
		Zip:       u.Zip,
		Phone:     u.Phone,
		Email:     u.Email,
		District:  u.District,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
