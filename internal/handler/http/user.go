package handler

//go:generate mockgen -source=user.go -destination=mocks/user.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rookgm/cargolabel/internal/models"
)

type OperatorService interface {
	// Register creates operator and returns session token
	Register(ctx context.Context, creds models.Credentials) (string, error)
	// Login returns session token for valid credentials
	Login(ctx context.Context, creds models.Credentials) (string, error)
}

// UserHandler represents HTTP handler for operator accounts
type UserHandler struct {
	svc OperatorService
}

// NewUserHandler creates new UserHandler instance
func NewUserHandler(svc OperatorService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterUser registers operator and authenticates it
// 200: operator registered and authenticated;
// 400: bad request;
// 409: login already taken;
// 500: internal error.
func (uh *UserHandler) RegisterUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		token, err := uh.svc.Register(r.Context(), creds)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidRequest):
				http.Error(w, "bad request", http.StatusBadRequest)
			case errors.Is(err, models.ErrLoginTaken):
				http.Error(w, "login already taken", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		setAuthCookie(w, token)
		w.WriteHeader(http.StatusOK)
	}
}

// LoginUser authenticates operator
// 200: operator authenticated;
// 400: bad request;
// 401: invalid login or password;
// 500: internal error.
func (uh *UserHandler) LoginUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		token, err := uh.svc.Login(r.Context(), creds)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidRequest):
				http.Error(w, "bad request", http.StatusBadRequest)
			case errors.Is(err, models.ErrInvalidCredentials):
				http.Error(w, "invalid login or password", http.StatusUnauthorized)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		setAuthCookie(w, token)
		w.WriteHeader(http.StatusOK)
	}
}

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	w.Header().Set("Authorization", "Bearer "+token)
}
