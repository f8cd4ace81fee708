package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"ubs-monitoring/internal/middleware"
	"ubs-monitoring/internal/platform/metrics"
	"ubs-monitoring/internal/platform/sentinel"

	"github.com/go-chi/chi/v5"
)

// TokenIssuer emite o token de acesso após o login. Satisfeito pelo
// verifier JWT.
type TokenIssuer interface {
	Issue(userID, username, role string) (string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, issuer TokenIssuer, m *metrics.Metrics) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", loginHandler(svc, issuer, m))

		// Contas novas só por admin.
		ar.With(middleware.RequireRole("admin")).Post("/register", registerHandler(svc))
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func loginHandler(svc *Service, issuer TokenIssuer, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		if issuer == nil {
			// Modo dev sem chave de assinatura: use os headers X-Debug-*.
			http.Error(w, "auth disabled", http.StatusServiceUnavailable)
			return
		}

		token, err := issuer.Issue(u.ID, u.Username, string(u.Role))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		m.IncLogins()
		writeJSON(w, http.StatusOK, loginResponse{
			Token: token,
			User:  toUserResponse(u),
		})
	}
}

func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput(req))
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, sentinel.ErrConflict):
				http.Error(w, "username already taken", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     string(u.Role),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
