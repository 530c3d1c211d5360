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

// identityCookie is the client-held marker of the logged-in username.
// It is not a session token; see logout.go for its removal.
const identityCookie = "username"

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, email, password string) (*models.UserPublic, error)
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// example: alice
	Username string `json:"username"`

	// example: alice@x.com
	Email string `json:"email"`

	// example: Login successful
	Message string `json:"message"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate by username or email plus password. Sets the identity cookie on success.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string false "Username"
// @Param email formData string false "Email"
// @Param password formData string true "Password"
// @Success 200 {object} handlers.LoginResponse "Login successful"
// @Failure 400 {object} handlers.ErrorResponse "Missing field"
// @Failure 401 {object} handlers.ErrorResponse "Invalid username or password"
// @Router /login [post]
func NewLoginHandler(svc Loginer, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.FormValue("username")
		email := r.FormValue("email")
		password := r.FormValue("password")

		// Either identifier may be blank, but not both.
		if password == "" || (username == "" && email == "") {
			writeError(w, http.StatusBadRequest, "Username or email and password are required")
			return
		}

		user, err := svc.Login(r.Context(), username, email, password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				// Deliberately generic: never reveal which part was wrong.
				writeError(w, http.StatusUnauthorized, "Invalid username or password")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		m.Logins.Inc()

		http.SetCookie(w, &http.Cookie{
			Name:  identityCookie,
			Value: user.Username,
			Path:  "/",
		})

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(LoginResponse{
			Username: user.Username,
			Email:    user.Email,
			Message:  "Login successful",
		})
	}
}
