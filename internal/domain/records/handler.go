package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ubs-monitoring/internal/middleware"
	"ubs-monitoring/internal/platform/metrics"
	"ubs-monitoring/internal/platform/sentinel"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, m *metrics.Metrics) {
	r.Route("/medical-records", func(rr chi.Router) {
		rr.Get("/", listRecordsHandler(svc))
		rr.Get("/{recordID}", getRecordHandler(svc))

		rr.With(middleware.RequireRole("admin", "doctor", "nurse")).
			Post("/", createRecordHandler(svc, m))
		rr.With(middleware.RequireRole("admin", "doctor", "nurse")).
			Put("/{recordID}", updateRecordHandler(svc, m))
		rr.With(middleware.RequireRole("admin")).
			Delete("/{recordID}", deleteRecordHandler(svc))
	})
}

type createRecordRequest struct {
	DiseaseID  *string         `json:"diseaseId"`
	UBSID      *string         `json:"ubsId"`
	EmployeeID *string         `json:"employeeId"`
	Status     string          `json:"status"`
	Data       json.RawMessage `json:"data"`
}

type recordResponse struct {
	ID               string    `json:"id"`
	PatientName      string    `json:"patientName"`
	PatientBirthDate string    `json:"patientBirthDate"`
	DiseaseID        *string   `json:"diseaseId"`
	UBSID            *string   `json:"ubsId"`
	EmployeeID       *string   `json:"employeeId"`
	Status           string    `json:"status"`
	Data             Payload   `json:"data"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type validationResponse struct {
	Error  string  `json:"error"`
	Issues []Issue `json:"issues"`
}

func createRecordHandler(svc *Service, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if len(req.Data) == 0 {
			http.Error(w, "data is required", http.StatusBadRequest)
			return
		}

		rec, err := svc.Create(r.Context(), CreateInput{
			DiseaseID:  req.DiseaseID,
			UBSID:      req.UBSID,
			EmployeeID: req.EmployeeID,
			Status:     req.Status,
			Data:       req.Data,
		})
		if err != nil {
			writeRecordError(w, err)
			return
		}

		m.IncRecordsCreated()
		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

func getRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.GetByID(r.Context(), chi.URLParam(r, "recordID"))
		if err != nil {
			writeRecordError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{
			UBSID:     r.URL.Query().Get("ubsId"),
			DiseaseID: r.URL.Query().Get("diseaseId"),
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// updateRecordHandler aplica merge-patch. Para diferenciar "não enviado" de
// "enviado como null" nas referências, decodifica primeiro num map e checa
// presença de cada chave.
func updateRecordHandler(svc *Service, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var in UpdateInput

		if v, ok := raw["status"]; ok {
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				http.Error(w, "status must be a string", http.StatusBadRequest)
				return
			}
			in.Status = &s
		}

		ref := func(key string) (OptionalRef, error) {
			v, ok := raw[key]
			if !ok {
				return OptionalRef{}, nil
			}
			if string(v) == "null" {
				return OptionalRef{Present: true}, nil
			}
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return OptionalRef{}, err
			}
			return OptionalRef{Present: true, Value: &s}, nil
		}

		var err error
		if in.DiseaseID, err = ref("diseaseId"); err != nil {
			http.Error(w, "diseaseId must be a string or null", http.StatusBadRequest)
			return
		}
		if in.UBSID, err = ref("ubsId"); err != nil {
			http.Error(w, "ubsId must be a string or null", http.StatusBadRequest)
			return
		}
		if in.EmployeeID, err = ref("employeeId"); err != nil {
			http.Error(w, "employeeId must be a string or null", http.StatusBadRequest)
			return
		}

		if v, ok := raw["data"]; ok {
			in.Data = v
		}

		rec, err := svc.Update(r.Context(), chi.URLParam(r, "recordID"), in)
		if err != nil {
			writeRecordError(w, err)
			return
		}

		m.IncRecordsUpdated()
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func deleteRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "recordID")); err != nil {
			writeRecordError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeRecordError(w http.ResponseWriter, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Error:  "validation failed",
			Issues: vErr.Issues,
		})
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, sentinel.ErrNotFound):
		http.Error(w, "record not found", http.StatusNotFound)
	case errors.Is(err, sentinel.ErrConflict), errors.Is(err, sentinel.ErrInvalidRef):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toRecordResponse(rec MedicalRecord) recordResponse {
	return recordResponse{
		ID:               rec.ID,
		PatientName:      rec.PatientName,
		PatientBirthDate: rec.PatientBirthDate,
		DiseaseID:        rec.DiseaseID,
		UBSID:            rec.UBSID,
		EmployeeID:       rec.EmployeeID,
		Status:           string(rec.Status),
		Data:             rec.Data,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
}

// writeJSON é duplicado de propósito nos handlers dos módulos para não
// criar helpers compartilhados antes da hora.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
