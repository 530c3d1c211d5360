package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vbazhenov/user-accounts/internal/logger"
	"github.com/vbazhenov/user-accounts/internal/metrics"
	"github.com/vbazhenov/user-accounts/internal/models"
	"github.com/vbazhenov/user-accounts/internal/services"
)

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, username, password, email string) (*models.UserPublic, error)
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Success message
	// example: User created successfully
	Message string `json:"message"`

	// Created user (public fields only)
	User models.UserPublic `json:"user"`
}

// ErrorResponse represents an error payload
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Username already registered
	Error string `json:"error"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account from form data. Ensures unique username and email. Password is hashed before storing.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param email formData string true "Email"
// @Success 200 {object} handlers.RegisterResponse "User successfully registered"
// @Failure 400 {object} handlers.ErrorResponse "Missing field / username or email already exists"
// @Router /register [post]
func NewRegisterHandler(svc Registerer, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.FormValue("username")
		password := r.FormValue("password")
		email := r.FormValue("email")

		if username == "" || password == "" || email == "" {
			writeError(w, http.StatusBadRequest, "Username, password, and email are required")
			return
		}

		user, err := svc.Register(r.Context(), username, password, email)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUsernameExists):
				writeError(w, http.StatusBadRequest, "Username already registered")
			case errors.Is(err, services.ErrEmailExists):
				writeError(w, http.StatusBadRequest, "Email already registered")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		m.Registrations.Inc()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(RegisterResponse{
			Message: "User created successfully",
			User:    *user,
		})
	}
}

// writeError renders a JSON error payload with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
