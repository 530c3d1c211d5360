package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/vbazhenov/user-accounts/internal/logger"
	"github.com/vbazhenov/user-accounts/internal/services"
	"github.com/vbazhenov/user-accounts/internal/web"
)

// PasswordForgetter defines the interface for issuing reset links.
type PasswordForgetter interface {
	ForgotPassword(ctx context.Context, username string) (string, error)
}

// NewForgotPasswordHandler handles the forgot-password form submission and
// renders the page carrying the reset link.
// @Summary Request a password reset link
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce html
// @Param username formData string true "Username"
// @Success 200 "HTML page with the reset link"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /forgot-password [post]
func NewForgotPasswordHandler(svc PasswordForgetter, rnd *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.FormValue("username")
		if username == "" {
			writeError(w, http.StatusBadRequest, "Username is required")
			return
		}

		resetLink, err := svc.ForgotPassword(r.Context(), username)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		rnd.Render(w, "forgot_password_success.html", web.ForgotPasswordSuccessData{
			ResetLink: resetLink,
		})
	}
}
