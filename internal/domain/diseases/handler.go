package diseases

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
	r.Route("/diseases", func(dr chi.Router) {
		dr.Get("/", listDiseasesHandler(svc))
		dr.Get("/{diseaseID}", getDiseaseHandler(svc))

		// Médicos podem cadastrar/editar doenças; remover é só admin.
		dr.With(middleware.RequireRole("admin", "doctor")).Post("/", createDiseaseHandler(svc))
		dr.With(middleware.RequireRole("admin", "doctor")).Put("/{diseaseID}", updateDiseaseHandler(svc))
		dr.With(middleware.RequireRole("admin")).Delete("/{diseaseID}", deleteDiseaseHandler(svc))
	})
}

type createDiseaseRequest struct {
	Name        string `json:"name"`
	ICD10       string `json:"icd10"`
	Description string `json:"description"`
	Symptoms    string `json:"symptoms"`
	Treatment   string `json:"treatment"`
	Prevention  string `json:"prevention"`
}

type updateDiseaseRequest struct {
	// Ponteiros para merge-patch: nil = não tocar.
	Name        *string `json:"name"`
	ICD10       *string `json:"icd10"`
	Description *string `json:"description"`
	Symptoms    *string `json:"symptoms"`
	Treatment   *string `json:"treatment"`
	Prevention  *string `json:"prevention"`
}

type diseaseResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ICD10       string    `json:"icd10"`
	Description string    `json:"description"`
	Symptoms    string    `json:"symptoms"`
	Treatment   string    `json:"treatment"`
	Prevention  string    `json:"prevention"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func createDiseaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createDiseaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Create(r.Context(), CreateInput(req))
		if err != nil {
			writeDiseaseError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toDiseaseResponse(d))
	}
}

func getDiseaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "diseaseID"))
		if err != nil {
			writeDiseaseError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDiseaseResponse(d))
	}
}

func listDiseasesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]diseaseResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDiseaseResponse(d))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func updateDiseaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateDiseaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Update(r.Context(), chi.URLParam(r, "diseaseID"), UpdateInput(req))
		if err != nil {
			writeDiseaseError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toDiseaseResponse(d))
	}
}

func deleteDiseaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "diseaseID")); err != nil {
			writeDiseaseError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeDiseaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, sentinel.ErrNotFound):
		http.Error(w, "disease not found", http.StatusNotFound)
	case errors.Is(err, sentinel.ErrConflict):
		http.Error(w, "disease name already registered", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toDiseaseResponse(d Disease) diseaseResponse {
	return diseaseResponse{
		ID:          d.ID,
		Name:        d.Name,
		ICD10:       d.ICD10,
		Description: d.Description,
		Symptoms:    d.Symptoms,
		Treatment:   d.Treatment,
		Prevention:  d.Prevention,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
